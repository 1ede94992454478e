// Package strand implements the Strand lifecycle and cleanup-handler
// discipline of §3.2/§4.D: the lightweight thread of execution that owns a
// value stack, a guarded native stack, and a saved CPU context, plus the
// LIFO cleanup-record stack that guarantees leak-free teardown.
package strand

import (
	"github.com/navicore/cem-sub000/go/cem"
	"github.com/navicore/cem-sub000/go/cpuctx"
	"github.com/navicore/cem-sub000/go/nstack"
)

// State is one position in the §4.D strand state machine.
type State int

const (
	Ready State = iota
	Running
	Yielded
	BlockedRead
	BlockedWrite
	Completed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Yielded:
		return "Yielded"
	case BlockedRead:
		return "Blocked(Read)"
	case BlockedWrite:
		return "Blocked(Write)"
	case Completed:
		return "Completed"
	default:
		return "unknown"
	}
}

// cleanupRecord is the §3.5 {func, arg} pair. Owned by exactly one strand's
// cleanup stack, invoked at most once.
type cleanupRecord struct {
	fn   func(arg any)
	arg  any
	next *cleanupRecord
}

// EntryFunc is the signature every generated word (and the trampoline's
// target) satisfies: value-stack in, value-stack out.
type EntryFunc func(*cem.Cell) *cem.Cell

// Strand is a single cooperative green thread (§3.2).
type Strand struct {
	ID             uint64
	State          State
	ValueStackHead *cem.Cell
	CPUContext     cpuctx.Context
	NativeStack    *nstack.Stack
	EntryFn        EntryFunc
	BlockedFD      int

	cleanupTop *cleanupRecord

	// SchedulerCtx is the scheduler's own context, restored by Yield and
	// the blocking calls. Populated by the scheduler at spawn time.
	SchedulerCtx *cpuctx.Context

	// result holds the final value stack once the strand completes, read
	// by the scheduler for the entry strand (id 1).
	result *cem.Cell
}

// PushCleanup prepends a cleanup record to the strand's LIFO cleanup stack
// (§4.D). A nil fn is a programmer error and is rejected at registration
// time rather than silently ignored.
func (s *Strand) PushCleanup(fn func(arg any), arg any) {
	if fn == nil {
		cem.Abort("push_cleanup", cem.ErrNullCleanupFunc)
		return
	}
	s.cleanupTop = &cleanupRecord{fn: fn, arg: arg, next: s.cleanupTop}
}

// PopCleanup removes the top cleanup record without invoking it, signaling
// that the caller released the resource itself.
func (s *Strand) PopCleanup() {
	if s.cleanupTop == nil {
		return
	}
	s.cleanupTop = s.cleanupTop.next
}

// UpdateCleanupArg replaces the top cleanup record's argument in place, used
// by read_line's realloc-style growth to keep the cleanup handler pointed at
// the live buffer even as it's reallocated (§4.F).
func (s *Strand) UpdateCleanupArg(newArg any) {
	if s.cleanupTop == nil {
		return
	}
	s.cleanupTop.arg = newArg
}

// RunCleanups invokes every remaining cleanup record in LIFO order, exactly
// once each, then discards them. Called on strand teardown, normal or
// abnormal (§4.D, §7).
func (s *Strand) RunCleanups() {
	for r := s.cleanupTop; r != nil; {
		next := r.next
		r.fn(r.arg)
		r = next
	}
	s.cleanupTop = nil
}

// Result returns the strand's final value stack; valid only once State is
// Completed.
func (s *Strand) Result() *cem.Cell {
	return s.result
}

// Current is the strand the CPU context primitive is about to resume.
// make_context has no argument-passing convention of its own (§4.B's
// entry_fn_addr takes no parameters); per §4.D, "the trampoline reads
// entry_fn and the initial value stack from the current strand", so the
// scheduler sets Current immediately before every switch-in and the
// zero-argument TrampolineEntry reads it back out.
var Current *Strand

// TrampolineEntry is the entry point every spawned strand's CPU context is
// initialized to resume at (§4.D). It reads EntryFn and the initial value
// stack from Current, invokes EntryFn, marks the strand Completed, and
// switches back to the scheduler context. Control must never return to
// TrampolineEntry itself -- SwapContext's return here would indicate a
// Completed strand was resumed again, which is a scheduler bug.
func TrampolineEntry() {
	s := Current
	s.result = s.EntryFn(s.ValueStackHead)
	s.RunCleanups()
	s.State = Completed
	cpuctx.SwapContext(&s.CPUContext, s.SchedulerCtx)
	panic("cem runtime: strand trampoline resumed after Completed")
}
