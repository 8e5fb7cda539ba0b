// Package splice exposes the Linux splice(2) system call as a safe,
// drain-until-complete transfer primitive. Data moves between two file
// descriptors entirely inside the kernel, without passing through a
// userspace buffer.
//
// At least one of the two descriptors handed to Transfer must refer to a
// pipe. The kernel enforces this; violations surface as an *Error wrapping
// EINVAL. Copy lifts the restriction by bridging two arbitrary descriptors
// through a private kernel pipe.
//
// Ownership:
//
//	The primitive owns no descriptor and no buffer. Descriptors are never
//	closed, locked or validated; their implicit file positions advance by
//	the number of bytes actually moved.
//
// Blocking:
//
//	Each kernel call blocks the calling goroutine unless SPLICE_F_NONBLOCK
//	is passed (or the descriptors are non-blocking). The Go runtime hands
//	the scheduler slot to other goroutines for the duration of the call.
//	With SPLICE_F_NONBLOCK the call fails with EAGAIN instead of waiting;
//	retry policy belongs to the caller.
//
// Platform Support:
//   - Transfer, Copy: Linux 2.6.17+ (ENOTSUP elsewhere)
//   - Flag constants: declared only where the platform defines them
package splice

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"
)

// Error reports a failed transfer. Err is the errno the kernel returned
// (or io.ErrUnexpectedEOF when the source ran dry before the requested
// length was moved).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + " error: " + e.Err.Error()
}

// Unwrap returns the underlying errno so errors.Is(err, syscall.EAGAIN)
// and friends work.
func (e *Error) Unwrap() error { return e.Err }

// spliceFunc is the kernel entry point. Tests swap it to simulate short
// transfers and failures.
var spliceFunc = platformSplice

// Transfer moves exactly length bytes from srcFD to dstFD, looping over
// splice(2) until nothing is outstanding. Both descriptors are used at
// their current file position.
//
// Each iteration requests the whole remaining length. An interrupted call
// (EINTR) is reissued; any other failure aborts immediately. Bytes moved
// before a failing call are neither rolled back nor reported.
//
// Failures are *Error values wrapping the kernel's errno, with one
// exception: if the kernel reports zero bytes moved while bytes are still
// outstanding (source at EOF), Err is io.ErrUnexpectedEOF instead.
//
// A length of 0 succeeds without entering the kernel.
func Transfer(srcFD, dstFD, length, flags int) error {
	if length < 0 {
		return &Error{Op: "splice", Err: syscall.EINVAL}
	}

	for remaining := length; remaining > 0; {
		n, err := spliceFunc(srcFD, nil, dstFD, nil, remaining, flags)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			return &Error{Op: "splice", Err: err}
		}
		if n == 0 {
			// Source at EOF (or an empty, writer-less pipe).
			return &Error{Op: "splice", Err: io.ErrUnexpectedEOF}
		}
		remaining -= n
	}
	return nil
}

// FD returns the descriptor behind c, which is usually an *os.File,
// *net.TCPConn or *net.UnixConn. The caller keeps ownership; the
// descriptor is only valid while c is open.
func FD(c syscall.Conn) (int, error) {
	if c == nil {
		return -1, os.ErrInvalid
	}
	raw, err := c.SyscallConn()
	if err != nil {
		return -1, err
	}

	var fd int
	if err := raw.Control(func(sysfd uintptr) {
		fd = int(sysfd)
	}); err != nil {
		return -1, err
	}
	return fd, nil
}

// Flags returns the splice flags defined on this platform, keyed by their
// lowercase short name ("move", "nonblock", "more", "gift"). The map is
// empty on platforms without splice(2).
func Flags() map[string]int {
	out := make(map[string]int, len(platformFlags))
	for name, v := range platformFlags {
		out[name] = v
	}
	return out
}

// ErrUnknownFlag is returned by ParseFlags for names the platform does not
// define.
var ErrUnknownFlag = errors.New("splice: unknown flag")

// ParseFlags turns a comma-separated list of flag names into a bitmask.
// Names are case-insensitive and may carry the SPLICE_F_ prefix, so
// "move,more" and "SPLICE_F_MOVE,SPLICE_F_MORE" are equivalent. An empty
// string yields 0.
func ParseFlags(s string) (int, error) {
	var flags int
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		name = strings.TrimPrefix(name, "splice_f_")
		v, ok := platformFlags[name]
		if !ok {
			return 0, fmt.Errorf("%w %q (known: %s)", ErrUnknownFlag, part, knownFlags())
		}
		flags |= v
	}
	return flags, nil
}

func knownFlags() string {
	names := make([]string, 0, len(platformFlags))
	for name := range platformFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
