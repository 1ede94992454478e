// Package cem implements the Cem value stack: the heap-allocated singly
// linked list of tagged cells threaded through every generated function
// call, and the operations library (stack combinators, arithmetic,
// comparison, string, and variant operations) built on top of it.
package cem

import "unsafe"

// Tag identifies the kind of value held by a Cell's payload.
type Tag uint32

const (
	TagInt Tag = iota
	TagBool
	TagString
	TagQuotation
	TagVariant
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "Int"
	case TagBool:
		return "Bool"
	case TagString:
		return "String"
	case TagQuotation:
		return "Quotation"
	case TagVariant:
		return "Variant"
	default:
		return "unknown"
	}
}

// payload is the 16-byte union backing a Cell, matching §6.2's requirement
// that "the variant tag/payload union is 16 bytes". Go has no native union
// type, so the union is represented as a byte array with typed accessor
// methods laid out over it via unsafe pointer casts.
type payload [16]byte

func (p *payload) asInt() *int64 {
	return (*int64)(unsafe.Pointer(&p[0]))
}

func (p *payload) asBool() *bool {
	return (*bool)(unsafe.Pointer(&p[0]))
}

type stringPayload struct {
	data *byte
	len  int64
}

func (p *payload) asString() *stringPayload {
	return (*stringPayload)(unsafe.Pointer(&p[0]))
}

func (p *payload) asQuotation() *uintptr {
	return (*uintptr)(unsafe.Pointer(&p[0]))
}

type variantPayload struct {
	tag  uint32
	_    uint32
	data unsafe.Pointer
}

func (p *payload) asVariant() *variantPayload {
	return (*variantPayload)(unsafe.Pointer(&p[0]))
}

// Cell is a single stack position: one of Int, Bool, String, Quotation, or
// Variant, plus the pointer to the next cell down the stack. A cell
// exclusively owns its payload and exclusively owns its next tail until it
// is popped (§3.1). The struct's field layout is 4 (tag) + 4 (padding) + 16
// (payload) + 8 (next) = 32 bytes on 64-bit targets, matching §6.2's
// "overall cell size is 32 bytes" contract.
type Cell struct {
	Tag     Tag
	_       uint32
	payload payload
	Next    *Cell
}

// NewInt allocates an owning Int cell.
func NewInt(v int64, next *Cell) *Cell {
	c := &Cell{Tag: TagInt, Next: next}
	*c.payload.asInt() = v
	return c
}

// NewBool allocates an owning Bool cell.
func NewBool(v bool, next *Cell) *Cell {
	c := &Cell{Tag: TagBool, Next: next}
	*c.payload.asBool() = v
	return c
}

// NewString allocates an owning String cell. The byte slice is copied; Cem
// strings are owned, NUL-terminated byte sequences, never aliased with the
// caller's slice.
func NewString(s string, next *Cell) *Cell {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	c := &Cell{Tag: TagString, Next: next}
	sp := c.payload.asString()
	sp.data = &buf[0]
	sp.len = int64(len(s))
	return c
}

// NewQuotation allocates an owning Quotation cell wrapping an opaque
// function pointer. Quotations have no captured environment (§9).
func NewQuotation(fn uintptr, next *Cell) *Cell {
	c := &Cell{Tag: TagQuotation, Next: next}
	*c.payload.asQuotation() = fn
	return c
}

// NewVariant allocates an owning Variant cell with the given tag and an
// owned payload pointer.
func NewVariant(tag uint32, data unsafe.Pointer, next *Cell) *Cell {
	c := &Cell{Tag: TagVariant, Next: next}
	vp := c.payload.asVariant()
	vp.tag = tag
	vp.data = data
	return c
}

// Int returns the cell's Int value and whether the tag matched.
func (c *Cell) Int() (int64, bool) {
	if c == nil || c.Tag != TagInt {
		return 0, false
	}
	return *c.payload.asInt(), true
}

// Bool returns the cell's Bool value and whether the tag matched.
func (c *Cell) Bool() (bool, bool) {
	if c == nil || c.Tag != TagBool {
		return false, false
	}
	return *c.payload.asBool(), true
}

// String returns the cell's string contents and whether the tag matched.
func (c *Cell) String() (string, bool) {
	if c == nil || c.Tag != TagString {
		return "", false
	}
	sp := c.payload.asString()
	if sp.len == 0 {
		return "", true
	}
	return unsafe.String(sp.data, int(sp.len)), true
}

// Quotation returns the cell's opaque function pointer and whether the tag
// matched.
func (c *Cell) Quotation() (uintptr, bool) {
	if c == nil || c.Tag != TagQuotation {
		return 0, false
	}
	return *c.payload.asQuotation(), true
}

// Variant returns the cell's variant tag and data pointer and whether the
// cell's tag matched.
func (c *Cell) Variant() (uint32, unsafe.Pointer, bool) {
	if c == nil || c.Tag != TagVariant {
		return 0, nil, false
	}
	vp := c.payload.asVariant()
	return vp.tag, vp.data, true
}
