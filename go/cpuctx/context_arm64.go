//go:build arm64 && darwin

package cpuctx

import "unsafe"

// archContext is the ARM64 callee-saved register set, matching §4.B's
// per-architecture saved set: x19-x28, frame pointer (x29), link register
// (x30), stack pointer, and d8-d15. Field order is fixed: context_arm64.s
// addresses these by offset.
type archContext struct {
	x19, x20, x21, x22, x23, x24, x25, x26, x27, x28 uint64
	fp                                               uint64 // x29
	lr                                               uint64 // x30, the resume address (§4.B return-address convention)
	sp                                               uint64
	d8, d9, d10, d11, d12, d13, d14, d15             uint64
}

// SP returns the saved stack pointer, used by the dynamic stack manager's
// checkpoint hook to decide whether growth is needed (§4.C) and by the
// emergency-growth signal handler to read/rewrite the interrupted register
// set.
func (c *Context) SP() uintptr {
	return uintptr(c.arch.sp)
}

func (c *Context) SetSP(sp uintptr) {
	c.arch.sp = uint64(sp)
}

// FP returns the saved frame pointer, the only in-register pointer into the
// native stack that the grow procedure must relocate on ARM64 (§4.C: "no
// in-stack pointer adjustment is needed beyond the frame pointer").
func (c *Context) FP() uintptr {
	return uintptr(c.arch.fp)
}

func (c *Context) SetFP(fp uintptr) {
	c.arch.fp = uint64(fp)
}

//go:noescape
func makeContext(ctx *archContext, stackLow, usableSize uintptr, entryFn uintptr)

//go:noescape
func swapContext(saveInto, restoreFrom *archContext)

// contextSize exists so tests can sanity-check the assembly's assumed
// struct size against what the Go compiler actually lays out.
func contextSize() uintptr {
	return unsafe.Sizeof(archContext{})
}
