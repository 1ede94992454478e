// Package ioruntime implements the §4.F non-blocking async I/O primitives
// write_line and read_line, built on the strand/scheduler suspension points.
package ioruntime

import (
	"golang.org/x/sys/unix"

	"github.com/navicore/cem-sub000/go/cem"
	"github.com/navicore/cem-sub000/go/scheduler"
	"github.com/navicore/cem-sub000/go/strand"
)

var nonblockSet = map[int]bool{}

// ensureNonBlocking puts fd into non-blocking mode on first use (§4.F
// "Performed on file descriptors put into non-blocking mode lazily").
func ensureNonBlocking(fd int) {
	if nonblockSet[fd] {
		return
	}
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		cem.Abort("ioruntime", err)
		return
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		cem.Abort("ioruntime", err)
		return
	}
	nonblockSet[fd] = true
}

// WriteLine implements write_line (§6.1/§4.F): pops a String, writes its
// bytes followed by '\n' to STDOUT, looping through EAGAIN via
// BlockOnWrite. A cleanup handler is registered for the buffer until the
// write completes, then popped; the handler frees nothing, since the buffer
// is garbage-collected.
func WriteLine(s *cem.Cell) *cem.Cell {
	if s == nil || s.Tag != cem.TagString {
		cem.Abort("write_line", cem.ErrTagMismatch)
		return nil
	}
	str, _ := s.String()
	rest := s.Next

	buf := make([]byte, len(str)+1)
	copy(buf, str)
	buf[len(str)] = '\n'

	ensureNonBlocking(unix.Stdout)

	strand.Current.PushCleanup(func(any) { /* buf is GC-managed; nothing to free explicitly */ }, buf)

	offset := 0
	for offset < len(buf) {
		n, err := unix.Write(unix.Stdout, buf[offset:])
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				scheduler.BlockOnWrite(unix.Stdout)
				continue
			}
			cem.Abort("write_line", err)
			return nil
		}
		offset += n
	}

	strand.Current.PopCleanup()
	return rest
}

// ReadLine implements read_line (§6.1/§4.F): reads one byte at a time from
// STDIN into a growable buffer (doubling capacity when full), terminating
// on '\n' (consumed, not stored) or EOF. update_cleanup_arg repoints the
// cleanup handler at each reallocation before the old buffer is dropped, so
// the invariant holds under every intermediate size.
func ReadLine(s *cem.Cell) *cem.Cell {
	ensureNonBlocking(unix.Stdin)

	buf := make([]byte, 0, 64)
	strand.Current.PushCleanup(func(any) { /* nothing to free explicitly under GC */ }, buf)

	one := make([]byte, 1)
	for {
		n, err := unix.Read(unix.Stdin, one)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				scheduler.BlockOnRead(unix.Stdin)
				continue
			}
			cem.Abort("read_line", err)
			return nil
		}
		if n == 0 {
			break // EOF
		}
		if one[0] == '\n' {
			break
		}
		if len(buf) == cap(buf) {
			grown := make([]byte, len(buf), cap(buf)*2)
			copy(grown, buf)
			buf = grown
			strand.Current.UpdateCleanupArg(buf)
		}
		buf = append(buf, one[0])
	}

	strand.Current.PopCleanup()
	return cem.PushString(s, string(buf))
}
