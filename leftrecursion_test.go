package pegmatite

import "testing"

func buildDirectLeftRecursiveSum() (*Grammar, *Rule, *Rule) {
	g := NewGrammar()
	digit := g.Define("digit", Terminal(Set(func(r rune) bool { return r >= '0' && r <= '9' })))

	sum := NewRule("sum", nil)
	g.Register(sum)
	sum.SetExpr(OrAll(
		SeqAll(Ref(sum), Char('+'), Ref(digit)),
		Ref(digit),
	))
	g.Start = sum
	return g, sum, digit
}

func TestDirectLeftRecursionParsesChainedSums(t *testing.T) {
	g, _, digit := buildDirectLeftRecursiveSum()

	var digits []string
	digit.OnMatch(func(begin, end Position, userData any) {
		in := userData.(Input)
		digits = append(digits, in.String(begin, end))
	})

	parser, err := g.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}

	in := NewInput("1+2+3")
	var errs ErrorSlice
	if !parser.Parse(in, &errs, in) {
		t.Fatalf("Parse(\"1+2+3\") failed: %v", []Error(errs))
	}
	want := []string{"1", "2", "3"}
	if len(digits) != len(want) {
		t.Fatalf("matched digits = %v, want %v", digits, want)
	}
	for i := range want {
		if digits[i] != want[i] {
			t.Errorf("digits[%d] = %q, want %q", i, digits[i], want[i])
		}
	}
}

func TestDirectLeftRecursionRejectsNonMatchingChain(t *testing.T) {
	g, _, _ := buildDirectLeftRecursiveSum()
	parser, err := g.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	in := NewInput("1+")
	var errs ErrorSlice
	if parser.Parse(in, &errs, in) {
		t.Fatalf("Parse(\"1+\") unexpectedly succeeded")
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
}

// buildIndirectLeftRecursiveTerm mirrors examples/fieldref's grammar shape
// at the core-engine level: term is left-recursive through fieldRef, a
// single other rule, one hop away.
func buildIndirectLeftRecursiveTerm() (*Grammar, *Rule) {
	g := NewGrammar()
	ident := g.Define("ident", Terminal(Loop1(Set(func(r rune) bool {
		return r >= 'a' && r <= 'z'
	}))))
	name := g.Define("name", Ref(ident))

	term := NewRule("term", nil)
	g.Register(term)
	fieldRef := g.Define("fieldRef", SeqAll(Ref(term), Char('.'), Ref(ident)))
	term.SetExpr(OrAll(Ref(fieldRef), Ref(name)))
	g.Start = term
	return g, term
}

func TestIndirectLeftRecursionParsesNestedFieldChain(t *testing.T) {
	g, _ := buildIndirectLeftRecursiveTerm()
	parser, err := g.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	in := NewInput("a.b.c")
	var errs ErrorSlice
	if !parser.Parse(in, &errs, in) {
		t.Fatalf("Parse(\"a.b.c\") failed: %v", []Error(errs))
	}
}

func TestIndirectLeftRecursionRejectsTrailingDot(t *testing.T) {
	g, _ := buildIndirectLeftRecursiveTerm()
	parser, err := g.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}
	in := NewInput("a.")
	var errs ErrorSlice
	if parser.Parse(in, &errs, in) {
		t.Fatalf("Parse(\"a.\") unexpectedly succeeded")
	}
}
