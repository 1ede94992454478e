// Package cpuctx implements the §4.B register-level context-switch
// primitive: make_context/swap_context, one hand-written assembly
// implementation per supported (architecture, OS) pair (§6.4: ARM64/macOS,
// x86-64/Linux). Build constraints keep each architecture's assembly and Go
// shim isolated; attempting to build for any other (arch, OS) combination
// fails per §6.4, because no file defines the per-arch pieces for it (see
// unsupported.go).
package cpuctx

// Context is the saved callee-saved register set and stack pointer for one
// side of a swap_context round trip. Field order and offsets are fixed per
// architecture and referred to by the assembly by offset (§9 "Context
// structure layout") — this Go struct and the .s files must be kept in
// lock-step; see context_arm64.go / context_amd64.go for the per-arch
// layouts.
type Context struct {
	arch archContext
}

// MakeContext initializes ctx so that a subsequent SwapContext into it
// begins executing entryFn on a stack starting at stackLow+usableSize (the
// high address), respecting the platform's pre-call alignment rule (§4.B).
func MakeContext(ctx *Context, stackLow, usableSize uintptr, entryFn uintptr) {
	makeContext(&ctx.arch, stackLow, usableSize, entryFn)
}

// SwapContext saves the current callee-saved register set and stack
// pointer into saveInto, loads them from restoreFrom, and returns --
// which, because the stack pointer was restored, causes execution to
// continue wherever restoreFrom was last saved (or at its entry function,
// on restoreFrom's first activation).
func SwapContext(saveInto, restoreFrom *Context) {
	swapContext(&saveInto.arch, &restoreFrom.arch)
}
