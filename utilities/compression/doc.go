// Package compression implements the run-length encoding used by pzip.
//
// A run is a maximal sequence of identical consecutive bytes, represented as a
// [ByteRun]. Compressed output is a flat sequence of five-byte records, one per
// run, with no header or trailer:
//
//	+----------------------------+--------+
//	| run length (uint32, LE)    | byte   |
//	+----------------------------+--------+
//
// For example, the input `aaaaabbbccccccccd` is stored as four records:
//
//	05 00 00 00 61  03 00 00 00 62  08 00 00 00 63  01 00 00 00 64
//
// The length of a valid stream is always a multiple of five. A run longer than
// the largest 32-bit count is written as several consecutive records with the
// same byte; decoders must accept that, and they do not need to tell it apart
// from two adjacent runs because expanding either gives the same bytes.
//
// [Compress] is the per-chunk compressor used by the parallel pipeline. It has no
// state, so any number of goroutines may call it at once. [CompressStream] is the
// plain sequential compressor; the pipeline must always produce exactly what it
// would produce for the concatenated input.

package compression
