package cem

import (
	"fmt"
	"os"
)

// PrintStack implements print_stack (§6.1): a debug-only rendering of the
// stack, top cell first, written to standard error so it never interleaves
// with program output on stdout.
func PrintStack(s *Cell) {
	if s == nil {
		fmt.Fprintln(os.Stderr, "cem stack: <empty>")
		return
	}
	fmt.Fprint(os.Stderr, "cem stack:")
	for c := s; c != nil; c = c.Next {
		switch c.Tag {
		case TagInt:
			v, _ := c.Int()
			fmt.Fprintf(os.Stderr, " Int(%d)", v)
		case TagBool:
			v, _ := c.Bool()
			fmt.Fprintf(os.Stderr, " Bool(%t)", v)
		case TagString:
			v, _ := c.String()
			fmt.Fprintf(os.Stderr, " String(%q)", v)
		case TagQuotation:
			v, _ := c.Quotation()
			fmt.Fprintf(os.Stderr, " Quotation(0x%x)", v)
		case TagVariant:
			tag, _, _ := c.Variant()
			fmt.Fprintf(os.Stderr, " Variant(tag=%d)", tag)
		default:
			fmt.Fprintf(os.Stderr, " <corrupt tag %d>", c.Tag)
		}
	}
	fmt.Fprintln(os.Stderr)
}

// RuntimeError implements runtime_error (§6.1): generated code calls it
// with a diagnostic message on paths the type checker proved unreachable
// but the backend must still terminate (e.g. a non-exhaustive match that
// slipped past an external-collaborator bug). It never returns.
func RuntimeError(msg string) {
	Abort("runtime_error", ConstError(msg))
}
