//go:build darwin && arm64

package scheduler

import (
	"reflect"
	"unsafe"
)

// siginfo and ucontext are zero-size views over the kernel-supplied
// siginfo_t / ucontext_t structures delivered to a SA_SIGINFO handler, the
// same zero-size-struct-as-pointer-reinterpretation technique used in
// ucontext_linux_amd64.go. Offsets are taken from XNU's
// <mach/arm/_structs.h> (mcontext64/arm_thread_state64_t layout) and
// <sys/signal.h> (__siginfo).
type siginfo struct{}
type ucontext struct{}

const (
	siAddrOffset = 24 // offsetof(struct __siginfo, si_addr) on Darwin arm64

	// uc_mcontext on Darwin is a pointer (not inline), at this offset in
	// ucontext_t: uc_onstack(4)+pad(4)+uc_sigmask(4)+pad(4)+uc_stack(24)+
	// uc_link(8)+uc_mcsize(8) = 56.
	ucMcontextPtrOffset = 56

	// Within mcontext64: arm_exception_state64_t (2 x uint64 = 16 bytes),
	// then arm_thread_state64_t begins. __sp is at offset 31*8=248 within
	// the thread state (x0-x28 = 29 regs, then fp, lr, sp), and __fp is at
	// offset 29*8=232.
	threadStateOffset = 16
	fpOffsetInState   = 29 * 8
	spOffsetInState   = 31 * 8
)

func (si *siginfo) addr() uintptr {
	return *(*uintptr)(unsafe.Add(unsafe.Pointer(si), siAddrOffset))
}

func (uc *ucontext) mcontext() unsafe.Pointer {
	p := *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(uc), ucMcontextPtrOffset))
	return p
}

func (uc *ucontext) sp() uintptr {
	return *(*uintptr)(unsafe.Add(uc.mcontext(), threadStateOffset+spOffsetInState))
}

func (uc *ucontext) fp() uintptr {
	return *(*uintptr)(unsafe.Add(uc.mcontext(), threadStateOffset+fpOffsetInState))
}

func (uc *ucontext) setSP(v uintptr) {
	*(*uintptr)(unsafe.Add(uc.mcontext(), threadStateOffset+spOffsetInState)) = v
}

func (uc *ucontext) setFP(v uintptr) {
	*(*uintptr)(unsafe.Add(uc.mcontext(), threadStateOffset+fpOffsetInState)) = v
}

//go:noescape
func sigsegvTrampoline()

func sigsegvTrampolineAddr() uintptr {
	return reflect.ValueOf(sigsegvTrampoline).Pointer()
}
