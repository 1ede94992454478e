package cem

// Arithmetic and comparison operations (§4.A). Both operands are popped as
// Int; overflow wraps two's-complement (defined, not an error); division by
// zero aborts.

func popTwoInts(s *Cell, op string) (a, b int64, rest *Cell) {
	c := requireN(s, 2, op)
	bv, ok1 := c[0].Int()
	av, ok2 := c[1].Int()
	if !ok1 || !ok2 {
		Abort(op, ErrTagMismatch)
		return 0, 0, nil
	}
	return av, bv, c[1].Next
}

// Add pops two Int cells and pushes their two's-complement sum.
func Add(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "add")
	return PushInt(rest, a+b)
}

// Sub pops two Int cells (second-from-top, top) and pushes second minus top.
func Sub(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "subtract")
	return PushInt(rest, a-b)
}

// Mul pops two Int cells and pushes their two's-complement product.
func Mul(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "multiply")
	return PushInt(rest, a*b)
}

// Div pops two Int cells and pushes second divided by top; aborts on
// division by zero.
func Div(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "divide_op")
	if b == 0 {
		Abort("divide_op", ErrDivideByZero)
		return nil
	}
	return PushInt(rest, a/b)
}

// LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, Equal, NotEqual all
// pop two Int cells and push a Bool: second <op> top.
func LessThan(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "less_than")
	return PushBool(rest, a < b)
}

func LessOrEqual(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "less_or_equal")
	return PushBool(rest, a <= b)
}

func GreaterThan(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "greater_than")
	return PushBool(rest, a > b)
}

func GreaterOrEqual(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "greater_or_equal")
	return PushBool(rest, a >= b)
}

// Equal compares two Int cells for equality.
func Equal(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "equal")
	return PushBool(rest, a == b)
}

// NotEqual compares two Int cells for inequality.
func NotEqual(s *Cell) *Cell {
	a, b, rest := popTwoInts(s, "not_equal")
	return PushBool(rest, a != b)
}
