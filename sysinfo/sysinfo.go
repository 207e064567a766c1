// Package sysinfo reports the host properties that size the pipeline: how many
// processors are online and how big a memory page is.
package sysinfo

import (
	"runtime"

	"github.com/tklauser/numcpus"
)

// ProcessorCount returns the number of online processors, falling back to
// [runtime.NumCPU] if the platform can't say. It's always at least 1.
func ProcessorCount() int {
	online, err := numcpus.GetOnline()
	if err != nil || online < 1 {
		online = runtime.NumCPU()
	}
	if online < 1 {
		return 1
	}
	return online
}

// PageSize returns the size of a memory page, in bytes.
func PageSize() int {
	return pageSize()
}
