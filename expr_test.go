package pegmatite

import "testing"

func TestSetOfMembership(t *testing.T) {
	e := SetOf("abc")
	for _, r := range []rune{'a', 'b', 'c'} {
		if !e.set(r) {
			t.Errorf("SetOf(%q) rejected member %q", "abc", r)
		}
	}
	if e.set('d') {
		t.Errorf("SetOf(%q) accepted non-member %q", "abc", 'd')
	}
}

func TestRangeMembership(t *testing.T) {
	e := Range('a', 'z')
	if !e.set('m') {
		t.Errorf("Range(a,z) rejected 'm'")
	}
	if e.set('A') {
		t.Errorf("Range(a,z) accepted 'A'")
	}
}

func TestSeqAllIsLeftAssociative(t *testing.T) {
	e := SeqAll(Char('a'), Char('b'), Char('c'))
	if e.kind != exprSeq {
		t.Fatalf("SeqAll root kind = %v, want exprSeq", e.kind)
	}
	inner := e.left
	if inner.kind != exprSeq {
		t.Fatalf("SeqAll left child kind = %v, want exprSeq", inner.kind)
	}
	if inner.left.kind != exprChar || inner.left.char != 'a' {
		t.Errorf("innermost left = %+v, want Char('a')", inner.left)
	}
	if inner.right.kind != exprChar || inner.right.char != 'b' {
		t.Errorf("inner right = %+v, want Char('b')", inner.right)
	}
	if e.right.kind != exprChar || e.right.char != 'c' {
		t.Errorf("outer right = %+v, want Char('c')", e.right)
	}
}

func TestOrAllOrdersAlternativesLeftToRight(t *testing.T) {
	e := OrAll(Char('a'), Char('b'), Char('c'))
	if e.kind != exprChoice {
		t.Fatalf("OrAll root kind = %v, want exprChoice", e.kind)
	}
	if e.right.char != 'c' {
		t.Errorf("outermost right alternative = %q, want 'c'", e.right.char)
	}
}

func TestRefPanicsOnNilRule(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Ref(nil) did not panic")
		}
	}()
	Ref(nil)
}

func TestRefPanicsOnCopiedRule(t *testing.T) {
	r := NewRule("r", Char('x'))
	copied := *r
	defer func() {
		if recover() == nil {
			t.Fatalf("Ref of a copied rule did not panic")
		}
	}()
	Ref(&copied)
}
