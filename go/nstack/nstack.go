// Package nstack implements the per-strand dynamic native stack described
// in §3.3/§4.C: a guarded anonymous mapping that grows on a proactive
// checkpoint policy or, failing that, from an emergency SIGSEGV handler
// (see the scheduler package). Growth doubles the usable region and
// relocates the live stack contents preserving their offset from the top.
package nstack

import (
	"fmt"
	"os"

	"github.com/dsnet/golib/unitconv"
	"golang.org/x/sys/unix"
)

const (
	// InitialUsableSize is the usable region size of a freshly allocated
	// stack, per §3.3.
	InitialUsableSize = 4 * 1024
	// MaxStack is the hard cap on usable_size; exceeding it while growing
	// is a fatal condition for the owning strand (§4.C).
	MaxStack = 1 << 20
	// MinFree is the proactive-growth threshold: growth triggers when free
	// space falls below this many bytes.
	MinFree = 8 * 1024
	// GrowthUsedFraction is the other proactive-growth trigger: growth
	// fires when used space exceeds this fraction of usable_size.
	GrowthUsedFraction = 0.75
)

// Stack is the metadata record described in §3.3.
type Stack struct {
	Base         uintptr
	UsableBase   uintptr
	TotalSize    uintptr
	UsableSize   uintptr
	GuardSize    uintptr
	GrowthCount  int
	GuardHitFlag bool

	mapping []byte // the mmap'd region, kept alive to allow munmap
}

var pageSize = uintptr(unix.Getpagesize())

func pageAlign(n uintptr) uintptr {
	ps := pageSize
	return (n + ps - 1) &^ (ps - 1)
}

// Alloc allocates a guarded native stack with at least initialUsableSize
// usable bytes, per §4.C's "Allocation" procedure: round up to a page
// multiple, map one anonymous private region of (usable+guard) bytes,
// protect the bottom guard-sized region as PROT_NONE.
func Alloc(initialUsableSize uintptr) (*Stack, error) {
	usable := pageAlign(initialUsableSize)
	guard := pageSize
	total := usable + guard

	mapping, err := unix.Mmap(-1, 0, int(total), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("nstack: mmap %s failed: %w", unitconv.FormatPrefix(float64(total), unitconv.SI, 0)+"B", err)
	}
	base := uintptr(unsafePointerOf(mapping))

	if err := unix.Mprotect(mapping[:guard], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, fmt.Errorf("nstack: mprotect guard page failed: %w", err)
	}

	return &Stack{
		Base:         base,
		UsableBase:   base + guard,
		TotalSize:    total,
		UsableSize:   usable,
		GuardSize:    guard,
		GrowthCount:  0,
		GuardHitFlag: false,
		mapping:      mapping,
	}, nil
}

// Top returns the high address of the usable region: the initial stack
// pointer value for a stack growing downward toward the guard page.
func (s *Stack) Top() uintptr {
	return s.UsableBase + s.UsableSize
}

// Free unmaps the full region. A failing unmap is logged but the metadata
// is released regardless (§4.C "Teardown").
func (s *Stack) Free() {
	if s.mapping == nil {
		return
	}
	if err := unix.Munmap(s.mapping); err != nil {
		fmt.Fprintf(os.Stderr, "cem runtime: nstack free: munmap failed: %v\n", err)
	}
	s.mapping = nil
}

// NeedsGrowth reports whether the checkpoint policy of §4.C fires for the
// given current stack pointer: free space below MinFree, or used space
// above GrowthUsedFraction of usable_size.
func (s *Stack) NeedsGrowth(sp uintptr) bool {
	if sp < s.UsableBase || sp > s.Top() {
		return false
	}
	free := sp - s.UsableBase
	used := s.Top() - sp
	if free < MinFree {
		return true
	}
	return float64(used) > GrowthUsedFraction*float64(s.UsableSize)
}

// Grow implements the §4.C grow procedure: allocate a new guarded stack of
// double the current usable_size (capped at MaxStack), memcpy the live
// region preserving offset-from-top, and return the new stack plus the
// relocated stack pointer. The caller is responsible for relocating the
// frame pointer in the CPU context per the same top-offset rule (§4.C) and
// for freeing the old stack once all pointers into it have been updated.
func (s *Stack) Grow(sp uintptr) (*Stack, uintptr, error) {
	newUsable := s.UsableSize * 2
	if newUsable > MaxStack {
		return nil, 0, fmt.Errorf("nstack: grow: %w (requested %s, cap %s)",
			errCapExceeded,
			unitconv.FormatPrefix(float64(newUsable), unitconv.SI, 0)+"B",
			unitconv.FormatPrefix(float64(MaxStack), unitconv.SI, 0)+"B")
	}

	next, err := Alloc(newUsable)
	if err != nil {
		return nil, 0, err
	}

	oldTop := s.Top()
	liveLen := oldTop - sp
	newTop := next.Top()
	newSP := newTop - liveLen

	oldOff := sp - s.Base
	newOff := newSP - next.Base
	copy(next.mapping[newOff:newOff+liveLen], s.mapping[oldOff:oldOff+liveLen])

	next.GrowthCount = s.GrowthCount + 1
	return next, newSP, nil
}

// RelocateIfInRange applies the §4.C "same top-offset rule" to a single
// pointer (e.g. a saved frame pointer): if ptr falls within the old usable
// region, it returns the corresponding pointer in the new stack at the same
// offset from the top; otherwise it returns ptr unchanged, including zero.
func RelocateIfInRange(old *Stack, next *Stack, ptr uintptr) uintptr {
	if ptr == 0 || ptr < old.UsableBase || ptr > old.Top() {
		return ptr
	}
	offsetFromTop := old.Top() - ptr
	return next.Top() - offsetFromTop
}

type constError string

func (e constError) Error() string { return string(e) }

const errCapExceeded = constError("native stack growth exceeds MAX_STACK")
