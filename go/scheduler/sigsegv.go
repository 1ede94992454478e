package scheduler

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/navicore/cem-sub000/go/nstack"
)

// altStackSize is the alternate signal stack size (§4.C "sized ≥ 8 KiB").
const altStackSize = 16 * 1024

// signalGuard owns the alternate signal stack and the installed SIGSEGV
// disposition, implementing §4.C's "Emergency growth" fallback. The
// handler runs on altStack, examines the faulting address, and -- if it
// lies within the current strand's guard page -- performs the grow
// procedure and rewrites the interrupted register set so the faulting
// instruction retries against the new stack. A fault outside any guard page
// restores the previous disposition and re-raises, producing the ordinary
// crash (§4.C).
type signalGuard struct {
	sched    *Scheduler
	altStack []byte
	prevAct  sigactiont
}

// installSignalGuard allocates the alternate signal stack, registers it
// with sigaltstack(2), and installs the SIGSEGV handler with SA_SIGINFO |
// SA_ONSTACK so it runs on altStack instead of the faulting strand's
// (possibly exhausted) native stack. The sigaltstack/sigaction bindings are
// per-platform (sigsys_linux_amd64.go / sigsys_darwin_arm64.go): x/sys
// exposes neither call, since signal dispositions are normally the Go
// runtime's own business -- see the DESIGN.md note on this boundary.
func installSignalGuard(sch *Scheduler) (*signalGuard, error) {
	sg := &signalGuard{sched: sch, altStack: make([]byte, altStackSize)}

	if err := sigaltstackInstall(sg.altStack); err != nil {
		return nil, err
	}

	currentGuard = sg

	if err := sigactionInstall(sigsegvTrampolineAddr(), &sg.prevAct); err != nil {
		currentGuard = nil
		return nil, err
	}
	return sg, nil
}

func (sg *signalGuard) uninstall() {
	sigactionRestore(&sg.prevAct)
	if currentGuard == sg {
		currentGuard = nil
	}
}

// currentGuard is read from signal context without locking: sound only
// under the single-OS-thread cooperative assumption of §5 (§4.C
// "Thread-safety contract").
var currentGuard *signalGuard

// handleSigsegv is called from the per-platform assembly trampoline with
// the raw (siginfo, ucontext) pair delivered by the kernel. It is
// restricted to async-signal-safe operations on the critical path apart
// from the new stack's metadata: no locks, and growth otherwise uses
// mmap/mprotect/munmap/memcpy (§4.C); nstack.Grow heap-allocates the new
// Stack record.
//
//go:nosplit
func handleSigsegv(info *siginfo, uc *ucontext) {
	sg := currentGuard
	if sg == nil || sg.sched == nil || sg.sched.current == nil {
		restoreDefaultAndReraise(sg)
		return
	}
	s := sg.sched.current
	faultAddr := uintptr(info.addr())

	guardLow := s.NativeStack.Base
	guardHigh := s.NativeStack.Base + s.NativeStack.GuardSize
	if faultAddr < guardLow || faultAddr >= guardHigh {
		restoreDefaultAndReraise(sg)
		return
	}

	s.NativeStack.GuardHitFlag = true
	faultingSP := uintptr(uc.sp())

	next, newSP, err := s.NativeStack.Grow(faultingSP)
	if err != nil {
		restoreDefaultAndReraise(sg)
		return
	}
	newFP := nstack.RelocateIfInRange(s.NativeStack, next, s.CPUContext.FP())
	old := s.NativeStack
	s.NativeStack = next
	s.CPUContext.SetSP(newSP)
	s.CPUContext.SetFP(newFP)

	uc.setSP(newSP)
	uc.setFP(newFP)

	old.Free()
}

// restoreDefaultAndReraise implements §4.C's non-guard-page fallback: the
// previous SIGSEGV disposition is restored and the signal re-raised,
// leaving the process to crash normally, preceded by a direct-write
// diagnostic (no buffered I/O is async-signal-safe).
func restoreDefaultAndReraise(sg *signalGuard) {
	const msg = "cem runtime: SIGSEGV outside guard page, crashing\n"
	_, _ = unix.Write(int(os.Stderr.Fd()), []byte(msg))
	if sg != nil {
		sigactionRestore(&sg.prevAct)
	}
	_ = unix.Kill(os.Getpid(), unix.SIGSEGV)
}
