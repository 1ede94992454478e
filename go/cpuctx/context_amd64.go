//go:build amd64 && linux

package cpuctx

import "unsafe"

// archContext is the x86-64 System V callee-saved register set, matching
// §4.B's per-architecture saved set: rbx, rbp, r12-r15, rsp, and an MXCSR
// field (optional to actually save/restore but required to exist in the
// layout). Field order is fixed: context_amd64.s addresses these by
// offset.
type archContext struct {
	rbx, rbp           uint64
	r12, r13, r14, r15 uint64
	rsp                uint64
	mxcsr              uint64 // low 32 bits hold the MXCSR value
}

func (c *Context) SP() uintptr {
	return uintptr(c.arch.rsp)
}

func (c *Context) SetSP(sp uintptr) {
	c.arch.rsp = uint64(sp)
}

// FP returns the saved frame pointer (rbp), the pointer the grow procedure
// must relocate per §4.C; it is the only register-resident pointer into the
// native stack this implementation adjusts, per the aggressive-checkpoint
// policy documented for the §4.B x86-64 return-address hazard (see
// SPEC_FULL.md §9).
func (c *Context) FP() uintptr {
	return uintptr(c.arch.rbp)
}

func (c *Context) SetFP(fp uintptr) {
	c.arch.rbp = uint64(fp)
}

//go:noescape
func makeContext(ctx *archContext, stackLow, usableSize uintptr, entryFn uintptr)

//go:noescape
func swapContext(saveInto, restoreFrom *archContext)

func contextSize() uintptr {
	return unsafe.Sizeof(archContext{})
}
