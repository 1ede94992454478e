package cem

import "testing"

func mustInt(t *testing.T, c *Cell, want int64) {
	t.Helper()
	got, ok := c.Int()
	if !ok || got != want {
		t.Fatalf("want Int(%d), got tag=%v ok=%v val=%d", want, c.Tag, ok, got)
	}
}

func mustString(t *testing.T, c *Cell, want string) {
	t.Helper()
	got, ok := c.String()
	if !ok || got != want {
		t.Fatalf("want String(%q), got tag=%v ok=%v val=%q", want, c.Tag, ok, got)
	}
}

func TestSwap(t *testing.T) {
	s := PushInt(PushInt(nil, 1), 2) // bottom-to-top: 1, 2 → top-to-bottom: 2,1
	s = Swap(s)
	mustInt(t, s, 1)
	mustInt(t, s.Next, 2)
}

func TestSwapSwapIsIdentity(t *testing.T) {
	s := PushInt(PushInt(nil, 1), 2)
	before := []int64{}
	for c := s; c != nil; c = c.Next {
		v, _ := c.Int()
		before = append(before, v)
	}
	s = Swap(Swap(s))
	i := 0
	for c := s; c != nil; c = c.Next {
		v, _ := c.Int()
		if v != before[i] {
			t.Fatalf("swap;swap not identity at %d: want %d got %d", i, before[i], v)
		}
		i++
	}
}

func TestOver(t *testing.T) {
	s := PushInt(PushInt(nil, 1), 2) // top-to-bottom: 2,1
	s = Over(s)                      // → 1,2,1
	mustInt(t, s, 1)
	mustInt(t, s.Next, 2)
	mustInt(t, s.Next.Next, 1)
}

func TestOverDropDropEqualsDrop(t *testing.T) {
	a := PushInt(PushInt(nil, 10), 20)
	b := PushInt(PushInt(nil, 10), 20)
	got := Drop(Drop(Over(a)))
	want := Drop(b)
	mustInt(t, got, 10)
	mustInt(t, want, 10)
}

func TestRot(t *testing.T) {
	// bottom-to-top: A=1, B=2, C=3 → top-to-bottom: 3,2,1
	s := PushInt(PushInt(PushInt(nil, 1), 2), 3)
	s = Rot(s) // (A B C) → (B C A): bottom-to-top 2,3,1 → top-to-bottom 1,3,2
	mustInt(t, s, 1)
	mustInt(t, s.Next, 3)
	mustInt(t, s.Next.Next, 2)
}

func TestNip(t *testing.T) {
	s := PushInt(PushInt(nil, 1), 2) // top-to-bottom 2,1
	s = Nip(s)
	mustInt(t, s, 2)
	if s.Next != nil {
		t.Fatalf("expected single-cell stack after nip")
	}
}

func TestTuck(t *testing.T) {
	s := PushInt(PushInt(nil, 1), 2) // top-to-bottom 2,1 i.e. (A=1 B=2)
	s = Tuck(s)                      // (A B) → (B A B)
	mustInt(t, s, 2)
	mustInt(t, s.Next, 1)
	mustInt(t, s.Next.Next, 2)
}

func TestDupDropIsIdentityForCopyTypes(t *testing.T) {
	s := PushInt(nil, 42)
	s2 := Drop(Dup(s))
	mustInt(t, s2, 42)
}

func TestDupDeepCopiesString(t *testing.T) {
	s := PushString(nil, "hi")
	dup := Dup(s)
	// mutate the original payload bytes to prove no aliasing
	orig := s.payload.asString()
	*orig.data = 'X'
	v, _ := dup.String()
	if v != "hi" {
		t.Fatalf("dup aliased original string payload, got %q", v)
	}
}

func TestDupVariantAborts(t *testing.T) {
	var caught error
	old := abortFn
	abortFn = func(op string, err error) { caught = err }
	defer func() { abortFn = old }()

	s := NewVariant(7, nil, nil)
	Dup(s)
	if caught != ErrVariantDupUnsupported {
		t.Fatalf("expected ErrVariantDupUnsupported, got %v", caught)
	}
}

func TestStringConcat(t *testing.T) {
	s := PushString(PushString(nil, "bar"), "foo")
	s = StringConcat(s)
	mustString(t, s, "barfoo")
}

func TestStringConcatEmptyIdentity(t *testing.T) {
	a := StringConcat(PushString(PushString(nil, ""), "abc"))
	mustString(t, a, "abc")
	b := StringConcat(PushString(PushString(nil, "abc"), ""))
	mustString(t, b, "abc")
}

func TestArithWrapsTwosComplement(t *testing.T) {
	s := PushInt(PushInt(nil, 1), maxInt64())
	s = Add(s)
	v, _ := s.Int()
	if v != minInt64() {
		t.Fatalf("expected two's-complement wraparound, got %d", v)
	}
}

func maxInt64() int64 { return 1<<63 - 1 }
func minInt64() int64 { return -1 << 63 }

func TestDivideByZeroAborts(t *testing.T) {
	var caught error
	old := abortFn
	abortFn = func(op string, err error) { caught = err }
	defer func() { abortFn = old }()

	Div(PushInt(PushInt(nil, 10), 0))
	if caught != ErrDivideByZero {
		t.Fatalf("expected ErrDivideByZero, got %v", caught)
	}
}

func TestDropUnderflowAborts(t *testing.T) {
	var caught error
	old := abortFn
	abortFn = func(op string, err error) { caught = err }
	defer func() { abortFn = old }()

	Drop(nil)
	if caught != ErrStackUnderflow {
		t.Fatalf("expected ErrStackUnderflow, got %v", caught)
	}
}
