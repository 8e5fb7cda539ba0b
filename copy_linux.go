//go:build linux
// +build linux

package splice

import (
	"io"

	"golang.org/x/sys/unix"
)

// defaultPipeSize is the pipe capacity since Linux 2.6.11, used when
// F_GETPIPE_SZ is unavailable.
const defaultPipeSize = 16 * 4096

// bridge is a private kernel pipe used to splice between two descriptors
// that are not pipes themselves.
type bridge struct {
	r, w int
	size int
}

// pipeFunc creates the bridge pipe. Tests swap it to force failures.
var pipeFunc = newBridge

func newBridge() (*bridge, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_CLOEXEC); err != nil {
		return nil, err
	}

	size, err := unix.FcntlInt(uintptr(p[0]), unix.F_GETPIPE_SZ, 0)
	if err != nil || size <= 0 {
		size = defaultPipeSize
	}
	return &bridge{r: p[0], w: p[1], size: size}, nil
}

func (b *bridge) Close() {
	unix.Close(b.r)
	unix.Close(b.w)
}

// Copy moves exactly length bytes from srcFD to dstFD when neither of them
// needs to be a pipe, e.g. file to socket or socket to socket. Each step
// makes one splice into a private pipe, then drains exactly the bytes that
// call moved into dstFD.
//
// A single fill call is required: pipe capacity is counted in page slots,
// so an unaligned file offset or a fragmented socket can fill the pipe
// with fewer bytes than its nominal size.
//
// As with Transfer, a failure aborts immediately and bytes moved before it
// are not reported. The bridge pipe is always closed before returning; the
// caller's descriptors are left open.
func Copy(dstFD, srcFD, length, flags int) error {
	if length < 0 {
		return &Error{Op: "splice", Err: unix.EINVAL}
	}
	if length == 0 {
		return nil
	}

	b, err := pipeFunc()
	if err != nil {
		return &Error{Op: "pipe", Err: err}
	}
	defer b.Close()

	for remaining := length; remaining > 0; {
		chunk := remaining
		if chunk > b.size {
			chunk = b.size
		}

		n, err := fill(srcFD, b.w, chunk, flags)
		if err != nil {
			return err
		}
		if err := Transfer(b.r, dstFD, n, flags); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// fill makes one splice of at most chunk bytes into the bridge, retrying
// only on EINTR.
func fill(srcFD, pipeW, chunk, flags int) (int, error) {
	for {
		n, err := spliceFunc(srcFD, nil, pipeW, nil, chunk, flags)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, &Error{Op: "splice", Err: err}
		}
		if n == 0 {
			return 0, &Error{Op: "splice", Err: io.ErrUnexpectedEOF}
		}
		return n, nil
	}
}
