//go:build !linux
// +build !linux

package splice

import "syscall"

// platformSplice stub for non-Linux platforms.
// Always returns ENOTSUP; no flag constants are declared here.
func platformSplice(rfd int, roff *int64, wfd int, woff *int64, len int, flags int) (int, error) {
	return 0, syscall.ENOTSUP
}

var platformFlags = map[string]int{}

// Copy is unavailable without splice(2).
func Copy(dstFD, srcFD, length, flags int) error {
	return &Error{Op: "splice", Err: syscall.ENOTSUP}
}
