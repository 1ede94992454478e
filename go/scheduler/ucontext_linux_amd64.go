//go:build linux && amd64

package scheduler

import (
	"reflect"
	"unsafe"
)

// siginfo and ucontext are zero-size views over the kernel-supplied
// siginfo_t / ucontext_t structures delivered to a SA_SIGINFO handler: a
// *siginfo/*ucontext IS the kernel's pointer, reinterpreted, so field
// access goes through raw offsets from the pointer itself rather than
// through a populated Go field. Offsets are taken from glibc's
// <bits/sigcontext.h>/<sys/ucontext.h> for x86-64.
type siginfo struct{}
type ucontext struct{}

const (
	siAddrOffset = 16 // offsetof(siginfo_t, si_addr) on x86-64 glibc
	mcontextOff  = 40 // offsetof(ucontext_t, uc_mcontext) == sizeof(uc_flags+uc_link+uc_stack)
	regRBPIndex  = 10 // REG_RBP in <sys/ucontext.h>
	regRSPIndex  = 15 // REG_RSP
	gregSize     = 8
)

func (si *siginfo) addr() uintptr {
	return *(*uintptr)(unsafe.Add(unsafe.Pointer(si), siAddrOffset))
}

func (uc *ucontext) greg(index int) *uintptr {
	return (*uintptr)(unsafe.Add(unsafe.Pointer(uc), mcontextOff+index*gregSize))
}

func (uc *ucontext) sp() uintptr { return *uc.greg(regRSPIndex) }
func (uc *ucontext) fp() uintptr { return *uc.greg(regRBPIndex) }

func (uc *ucontext) setSP(v uintptr) { *uc.greg(regRSPIndex) = v }
func (uc *ucontext) setFP(v uintptr) { *uc.greg(regRBPIndex) = v }

//go:noescape
func sigsegvTrampoline()

func sigsegvTrampolineAddr() uintptr {
	return reflect.ValueOf(sigsegvTrampoline).Pointer()
}
