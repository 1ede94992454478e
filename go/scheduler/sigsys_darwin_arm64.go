//go:build darwin && arm64

package scheduler

import (
	"syscall"
	"unsafe" // also required for go:linkname
)

// Darwin bindings for sigaction/sigaltstack, reached through libSystem's
// public wrappers rather than raw syscall numbers: the wrapper is what
// installs libc's _sigtramp as the in-kernel signal trampoline, which a
// raw sigaction(2) cannot replicate. The binding mechanism (a
// cgo_import_dynamic symbol plus an assembly trampoline dispatched via
// syscall.syscall) is exactly how x/sys binds its own darwin functions.

//go:cgo_import_dynamic libc_sigaction sigaction "/usr/lib/libSystem.B.dylib"
//go:cgo_import_dynamic libc_sigaltstack sigaltstack "/usr/lib/libSystem.B.dylib"

var libc_sigaction_trampoline_addr uintptr
var libc_sigaltstack_trampoline_addr uintptr

//go:linkname syscall_syscall syscall.syscall
func syscall_syscall(fn, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno)

// stackt mirrors darwin's stack_t: ss_sp, ss_size, ss_flags.
type stackt struct {
	ssSp    uintptr
	ssSize  uintptr
	ssFlags int32
	_       int32
}

// sigactiont mirrors the user-level struct sigaction libSystem's
// sigaction() consumes: handler, mask, flags.
type sigactiont struct {
	handler uintptr
	mask    uint32
	flags   int32
}

const (
	saOnstack = 0x0001
	saSiginfo = 0x0040
)

func sigaltstackInstall(altStack []byte) error {
	ss := stackt{
		ssSp:   uintptr(unsafe.Pointer(unsafe.SliceData(altStack))),
		ssSize: uintptr(len(altStack)),
	}
	if _, _, errno := syscall_syscall(libc_sigaltstack_trampoline_addr,
		uintptr(unsafe.Pointer(&ss)), 0, 0); errno != 0 {
		return errno
	}
	return nil
}

func sigactionInstall(handler uintptr, old *sigactiont) error {
	act := sigactiont{
		handler: handler,
		flags:   saSiginfo | saOnstack,
	}
	if _, _, errno := syscall_syscall(libc_sigaction_trampoline_addr,
		uintptr(syscall.SIGSEGV),
		uintptr(unsafe.Pointer(&act)),
		uintptr(unsafe.Pointer(old))); errno != 0 {
		return errno
	}
	return nil
}

func sigactionRestore(act *sigactiont) {
	_, _, _ = syscall_syscall(libc_sigaction_trampoline_addr,
		uintptr(syscall.SIGSEGV),
		uintptr(unsafe.Pointer(act)),
		0)
}
