//go:build !unix

package sysinfo

import "os"

func pageSize() int {
	return os.Getpagesize()
}
