package cem

import (
	"testing"

	"pgregory.net/rand"
)

// TestPropertySwapSwapIsIdentity exercises the §8.2 swap;swap law over
// randomized Int pairs, with pgregory.net/rand as the deterministic
// randomness source.
func TestPropertySwapSwapIsIdentity(t *testing.T) {
	rng := rand.New(1)
	for i := 0; i < 256; i++ {
		a, b := rng.Int63(), rng.Int63()
		s := PushInt(PushInt(nil, a), b)
		got := Swap(Swap(s))
		av, _ := got.Int()
		bv, _ := got.Next.Int()
		if av != b || bv != a {
			t.Fatalf("swap;swap not identity for (%d,%d): got (%d,%d)", a, b, av, bv)
		}
	}
}

// TestPropertyStringConcatAssociative exercises associativity of
// string_concat over randomized short strings.
func TestPropertyStringConcatAssociative(t *testing.T) {
	rng := rand.New(2)
	alphabet := "abcdefghij"
	randStr := func() string {
		n := rng.Intn(5)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(buf)
	}
	for i := 0; i < 128; i++ {
		a, b, c := randStr(), randStr(), randStr()

		// string_concat pushes second-from-top then top, so (a+b) goes on
		// first and c on top to compute (a+b)+c.
		left := StringConcat(PushString(PushString(nil, a+b), c))
		right := StringConcat(PushString(PushString(nil, a), b+c))

		lv, _ := left.String()
		rv, _ := right.String()
		if lv != rv || lv != a+b+c {
			t.Fatalf("concat not associative for (%q,%q,%q): left=%q right=%q", a, b, c, lv, rv)
		}
	}
}
