//go:build linux && amd64

package scheduler

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Raw rt_sigaction/sigaltstack bindings. x/sys deliberately exposes neither
// (signal dispositions are normally the Go runtime's own business), so the
// kernel structs are hand-maintained here at the same level as the
// ucontext_t offsets in ucontext_linux_amd64.go. Layouts are from the
// kernel's <asm-generic/signal.h> for x86-64.

// stackt mirrors the kernel stack_t: ss_sp, ss_flags, ss_size.
type stackt struct {
	ssSp    uintptr
	ssFlags int32
	_       int32
	ssSize  uintptr
}

// sigactiont mirrors the kernel's struct sigaction as rt_sigaction(2)
// consumes it: handler, flags, restorer, mask.
type sigactiont struct {
	handler  uintptr
	flags    uint64
	restorer uintptr
	mask     uint64
}

const (
	saSiginfo  = 0x00000004
	saOnstack  = 0x08000000
	saRestorer = 0x04000000

	// sigsetsize argument to rt_sigaction: sizeof(kernel sigset_t).
	sigsetSize = 8
)

func sigaltstackInstall(altStack []byte) error {
	ss := stackt{
		ssSp:   uintptr(unsafe.Pointer(unsafe.SliceData(altStack))),
		ssSize: uintptr(len(altStack)),
	}
	if _, _, errno := unix.Syscall(unix.SYS_SIGALTSTACK, uintptr(unsafe.Pointer(&ss)), 0, 0); errno != 0 {
		return errno
	}
	return nil
}

// sigactionInstall installs handler for SIGSEGV with SA_SIGINFO|SA_ONSTACK,
// saving the previous disposition into old. The x86-64 kernel requires a
// restorer for rt-signal frames; sigreturnStub (sigtramp_linux_amd64.s) is
// the two-instruction rt_sigreturn trampoline libc would otherwise supply.
func sigactionInstall(handler uintptr, old *sigactiont) error {
	act := sigactiont{
		handler:  handler,
		flags:    saSiginfo | saOnstack | saRestorer,
		restorer: sigreturnStubAddr(),
	}
	_, _, errno := unix.Syscall6(unix.SYS_RT_SIGACTION,
		uintptr(unix.SIGSEGV),
		uintptr(unsafe.Pointer(&act)),
		uintptr(unsafe.Pointer(old)),
		sigsetSize, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func sigactionRestore(act *sigactiont) {
	_, _, _ = unix.Syscall6(unix.SYS_RT_SIGACTION,
		uintptr(unix.SIGSEGV),
		uintptr(unsafe.Pointer(act)),
		0,
		sigsetSize, 0, 0)
}

//go:noescape
func sigreturnStub()

func sigreturnStubAddr() uintptr {
	return reflect.ValueOf(sigreturnStub).Pointer()
}
