//go:build linux
// +build linux

package splice

import (
	"golang.org/x/sys/unix"
)

// platformSplice wraps unix.Splice for Linux, narrowing the byte count to
// int to match the length argument.
func platformSplice(rfd int, roff *int64, wfd int, woff *int64, len int, flags int) (int, error) {
	n, err := unix.Splice(rfd, roff, wfd, woff, len, flags)
	return int(n), err
}

// Splice flags, taken from the kernel headers via x/sys/unix.
const (
	// SPLICE_F_MOVE asks the kernel to move pages instead of copying.
	// It is a hint only.
	SPLICE_F_MOVE = unix.SPLICE_F_MOVE

	// SPLICE_F_NONBLOCK makes the splice itself non-blocking, regardless
	// of the descriptors' own modes.
	SPLICE_F_NONBLOCK = unix.SPLICE_F_NONBLOCK

	// SPLICE_F_MORE signals that more data follows in a later call, which
	// lets socket destinations coalesce sends.
	SPLICE_F_MORE = unix.SPLICE_F_MORE

	// SPLICE_F_GIFT gifts the pages to the kernel. Only meaningful for
	// vmsplice(2); splice(2) accepts and ignores it.
	SPLICE_F_GIFT = unix.SPLICE_F_GIFT
)

var platformFlags = map[string]int{
	"move":     SPLICE_F_MOVE,
	"nonblock": SPLICE_F_NONBLOCK,
	"more":     SPLICE_F_MORE,
	"gift":     SPLICE_F_GIFT,
}
