// This is a compatibility shim for POSIX-defined errno codes across platforms.
// The values are our own, not the host's, so diagnostics read the same on every
// system; FromError maps host errors onto them.

package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

type Errno int

var errorMessagesByCode map[Errno]string

const (
	EOK Errno = iota
	EPERM
	ENOENT
	EIO
	EBADF
	EAGAIN
	ENOMEM
	EACCES
	EEXIST
	ENODEV
	ENOTDIR
	EISDIR
	EINVAL
	ENFILE
	EMFILE
	EFBIG
	ENOSPC
	EOVERFLOW
	EPIPE
	EUNKNOWN
)

func init() {
	errorMessagesByCode = make(map[Errno]string, 20)
	errorMessagesByCode[EOK] = "Success"
	errorMessagesByCode[EPERM] = "Operation not permitted"
	errorMessagesByCode[ENOENT] = "No such file or directory"
	errorMessagesByCode[EIO] = "Input/output error"
	errorMessagesByCode[EBADF] = "Bad file descriptor"
	errorMessagesByCode[EAGAIN] = "Resource temporarily unavailable"
	errorMessagesByCode[ENOMEM] = "Cannot allocate memory"
	errorMessagesByCode[EACCES] = "Permission denied"
	errorMessagesByCode[EEXIST] = "File exists"
	errorMessagesByCode[ENODEV] = "No such device"
	errorMessagesByCode[ENOTDIR] = "Not a directory"
	errorMessagesByCode[EISDIR] = "Is a directory"
	errorMessagesByCode[EINVAL] = "Invalid argument"
	errorMessagesByCode[ENFILE] = "Too many open files in system"
	errorMessagesByCode[EMFILE] = "Too many open files"
	errorMessagesByCode[EFBIG] = "File too large"
	errorMessagesByCode[ENOSPC] = "No space left on device"
	errorMessagesByCode[EOVERFLOW] = "Value too large for defined data type"
	errorMessagesByCode[EPIPE] = "Broken pipe"
	errorMessagesByCode[EUNKNOWN] = "Unknown error"
}

func StrError(code Errno) string {
	message, ok := errorMessagesByCode[code]
	if ok {
		return message
	}
	return fmt.Sprintf("error %d not recognized.", int(code))
}

// FromError finds the errno code that best describes `err`. It looks for a
// [syscall.Errno] anywhere in the chain first, then falls back to the portable
// [fs] sentinels. A nil error is EOK; anything unrecognized is EUNKNOWN.
func FromError(err error) Errno {
	if err == nil {
		return EOK
	}

	var resErr ResourceError
	if errors.As(err, &resErr) {
		return resErr.Errno()
	}

	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.EPERM:
			return EPERM
		case syscall.ENOENT:
			return ENOENT
		case syscall.EIO:
			return EIO
		case syscall.EBADF:
			return EBADF
		case syscall.EAGAIN:
			return EAGAIN
		case syscall.ENOMEM:
			return ENOMEM
		case syscall.EACCES:
			return EACCES
		case syscall.EEXIST:
			return EEXIST
		case syscall.ENODEV:
			return ENODEV
		case syscall.ENOTDIR:
			return ENOTDIR
		case syscall.EISDIR:
			return EISDIR
		case syscall.EINVAL:
			return EINVAL
		case syscall.ENFILE:
			return ENFILE
		case syscall.EMFILE:
			return EMFILE
		case syscall.EFBIG:
			return EFBIG
		case syscall.ENOSPC:
			return ENOSPC
		case syscall.EPIPE:
			return EPIPE
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ENOENT
	case errors.Is(err, fs.ErrPermission):
		return EACCES
	case errors.Is(err, fs.ErrExist):
		return EEXIST
	case errors.Is(err, fs.ErrInvalid):
		return EINVAL
	}
	return EUNKNOWN
}
