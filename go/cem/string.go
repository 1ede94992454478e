package cem

import "strconv"

// StringLength pushes the byte count (not code points) of the popped
// String.
func StringLength(s *Cell) *Cell {
	if s == nil || s.Tag != TagString {
		Abort("string_length", ErrTagMismatch)
		return nil
	}
	v, _ := s.String()
	return PushInt(s.Next, int64(len(v)))
}

// StringConcat pops two String cells (second-from-top, top) and pushes
// their concatenation in that order: second-from-top then top.
func StringConcat(s *Cell) *Cell {
	c := requireN(s, 2, "string_concat")
	top, ok1 := c[0].String()
	second, ok2 := c[1].String()
	if !ok1 || !ok2 {
		Abort("string_concat", ErrTagMismatch)
		return nil
	}
	return PushString(c[1].Next, second+top)
}

// StringEqual pops two String cells and pushes their byte-exact equality.
func StringEqual(s *Cell) *Cell {
	c := requireN(s, 2, "string_equal")
	top, ok1 := c[0].String()
	second, ok2 := c[1].String()
	if !ok1 || !ok2 {
		Abort("string_equal", ErrTagMismatch)
		return nil
	}
	return PushBool(c[1].Next, second == top)
}

// IntToString pops an Int and pushes its base-10 textual form.
func IntToString(s *Cell) *Cell {
	if s == nil || s.Tag != TagInt {
		Abort("int_to_string", ErrTagMismatch)
		return nil
	}
	v, _ := s.Int()
	return PushString(s.Next, strconv.FormatInt(v, 10))
}

// BoolToString pops a Bool and pushes "true" or "false".
func BoolToString(s *Cell) *Cell {
	if s == nil || s.Tag != TagBool {
		Abort("bool_to_string", ErrTagMismatch)
		return nil
	}
	v, _ := s.Bool()
	if v {
		return PushString(s.Next, "true")
	}
	return PushString(s.Next, "false")
}
