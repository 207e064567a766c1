//go:build unix

package sysinfo

import "golang.org/x/sys/unix"

func pageSize() int {
	return unix.Getpagesize()
}
