package pipeline

import (
	"io"

	"github.com/dargueta/pzip/mapping"
	"github.com/gocarina/gocsv"
)

// FileStats describes what happened to one input.
type FileStats struct {
	Path  string `csv:"path"`
	Bytes int    `csv:"bytes"`
	// Chunks is 0 for empty files.
	Chunks int `csv:"chunks"`
	// Runs counts the runs the file added to the output. A run that continues
	// from the previous file is counted there, not here.
	Runs int `csv:"runs"`
}

func collectStats(files []*mapping.File) []FileStats {
	stats := make([]FileStats, 0, len(files))
	for _, file := range files {
		stats = append(stats, FileStats{
			Path:   file.Name,
			Bytes:  file.Size(),
			Chunks: file.NumChunks,
			Runs:   file.RunsAppended,
		})
	}
	return stats
}

// WriteStatsCSV writes `stats` to `output` as CSV with a header row.
func WriteStatsCSV(output io.Writer, stats []FileStats) error {
	return gocsv.Marshal(stats, output)
}
