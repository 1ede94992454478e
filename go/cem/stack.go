package cem

// This file implements the §4.A value-stack combinators: push/drop/dup and
// the Forth-family positional shufflers swap/over/rot/nip/tuck. Each
// operation takes and returns a stack head (a *Cell, nil meaning empty) and
// aborts the process on underflow or tag mismatch.

// PushInt prepends an owning Int cell.
func PushInt(s *Cell, v int64) *Cell {
	return NewInt(v, s)
}

// PushBool prepends an owning Bool cell.
func PushBool(s *Cell, v bool) *Cell {
	return NewBool(v, s)
}

// PushString prepends an owning String cell, copying the bytes.
func PushString(s *Cell, v string) *Cell {
	return NewString(v, s)
}

// Drop pops and frees the top cell's payload; aborts on underflow.
func Drop(s *Cell) *Cell {
	if s == nil {
		Abort("drop", ErrStackUnderflow)
		return nil
	}
	return s.Next
}

// Dup duplicates the top cell. Copy types (Int, Bool, Quotation) are
// duplicated directly; String is deep-copied; Variant duplication is
// unsupported per §4.H and aborts.
func Dup(s *Cell) *Cell {
	if s == nil {
		Abort("dup", ErrStackUnderflow)
		return nil
	}
	switch s.Tag {
	case TagInt:
		v, _ := s.Int()
		return NewInt(v, s)
	case TagBool:
		v, _ := s.Bool()
		return NewBool(v, s)
	case TagQuotation:
		v, _ := s.Quotation()
		return NewQuotation(v, s)
	case TagString:
		v, _ := s.String()
		return NewString(v, s)
	case TagVariant:
		Abort("dup", ErrVariantDupUnsupported)
		return nil
	default:
		Abort("dup", ErrTagMismatch)
		return nil
	}
}

func requireN(s *Cell, n int, op string) []*Cell {
	cells := make([]*Cell, 0, n)
	cur := s
	for i := 0; i < n; i++ {
		if cur == nil {
			Abort(op, ErrStackUnderflow)
			return nil
		}
		cells = append(cells, cur)
		cur = cur.Next
	}
	return cells
}

// Swap implements (A B) → (B A).
func Swap(s *Cell) *Cell {
	c := requireN(s, 2, "swap")
	b, a := c[0], c[1]
	rest := a.Next
	a.Next = b
	b.Next = rest
	return a
}

// Over implements (A B) → (A B A).
func Over(s *Cell) *Cell {
	c := requireN(s, 2, "over")
	_, a := c[0], c[1]
	return dupOnto(a, s)
}

// dupOnto duplicates `cell`'s value and prepends it onto `onto`.
func dupOnto(cell *Cell, onto *Cell) *Cell {
	switch cell.Tag {
	case TagInt:
		v, _ := cell.Int()
		return NewInt(v, onto)
	case TagBool:
		v, _ := cell.Bool()
		return NewBool(v, onto)
	case TagQuotation:
		v, _ := cell.Quotation()
		return NewQuotation(v, onto)
	case TagString:
		v, _ := cell.String()
		return NewString(v, onto)
	default:
		Abort("over", ErrVariantDupUnsupported)
		return nil
	}
}

// Rot implements (A B C) → (B C A): the bottom-most of the three (A) moves
// to the top, C and B shift down, preserving their relative order.
func Rot(s *Cell) *Cell {
	c := requireN(s, 3, "rot")
	cc, b, a := c[0], c[1], c[2]
	rest := a.Next
	a.Next = cc
	cc.Next = b
	b.Next = rest
	return a
}

// Nip implements (A B) → (B).
func Nip(s *Cell) *Cell {
	c := requireN(s, 2, "nip")
	b, a := c[0], c[1]
	b.Next = a.Next
	return b
}

// Tuck implements (A B) → (B A B).
func Tuck(s *Cell) *Cell {
	c := requireN(s, 2, "tuck")
	b, a := c[0], c[1]
	rest := a.Next
	dup := dupOnto(b, rest)
	a.Next = dup
	b.Next = a
	return b
}
