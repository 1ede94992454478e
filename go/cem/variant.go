package cem

import "unsafe"

// MakeVariant implements the allocation half of §4.H: construct a Variant
// cell carrying an algebraic-data-type tag and an owning payload pointer,
// pushing it onto the stack.
func MakeVariant(s *Cell, tag uint32, data unsafe.Pointer) *Cell {
	return NewVariant(tag, data, s)
}

// MatchVariant implements the destructuring half of §4.H: the pattern-match
// dispatch emitted by the compiler is a tag switch over the popped variant
// followed by pushing its payload pointer back onto the stack as an opaque
// value, simple enough to specify by analogy to drop/push_*. MatchVariant
// pops the Variant cell and returns its tag and payload pointer alongside
// the remaining stack; the caller (generated pattern-match code) is
// responsible for routing on tag and re-pushing whatever cells the matched
// arm's payload decodes into.
func MatchVariant(s *Cell) (tag uint32, data unsafe.Pointer, rest *Cell) {
	if s == nil || s.Tag != TagVariant {
		Abort("match_variant", ErrTagMismatch)
		return 0, nil, nil
	}
	tag, data, _ = s.Variant()
	return tag, data, s.Next
}

// CallQuotation pops an opaque function-pointer cell and invokes it against
// the rest of the stack, returning its result. Generated code supplies the
// concrete Go function values through fns, since Cem quotations have no
// captured environment and are identified purely by the uintptr recorded
// when the Quotation cell was created by NewQuotation (§9).
func CallQuotation(s *Cell, fns map[uintptr]func(*Cell) *Cell) *Cell {
	if s == nil || s.Tag != TagQuotation {
		Abort("call_quotation", ErrTagMismatch)
		return nil
	}
	fnPtr, _ := s.Quotation()
	fn, ok := fns[fnPtr]
	if !ok {
		Abort("call_quotation", ErrTagMismatch)
		return nil
	}
	return fn(s.Next)
}
