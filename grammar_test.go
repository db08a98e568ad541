package pegmatite

import "testing"

func TestCheckFailsWithNoStartRule(t *testing.T) {
	g := NewGrammar()
	g.Define("a", Char('a'))
	if err := g.Check(); err == nil {
		t.Fatalf("Check() succeeded with no start rule set")
	}
}

func TestCheckFailsWithUnregisteredStartRule(t *testing.T) {
	g := NewGrammar()
	g.Define("a", Char('a'))
	g.Start = NewRule("stray", Char('b'))
	if err := g.Check(); err == nil {
		t.Fatalf("Check() succeeded with a start rule from a different grammar")
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	g := NewGrammar()
	g.Define("a", Char('a'))
	g.Define("a", Char('b'))
	if err := g.Check(); err == nil {
		t.Fatalf("Check() succeeded with two rules named %q", "a")
	}
}

func TestRegisterRejectsSameRuleTwice(t *testing.T) {
	g := NewGrammar()
	r := g.Define("a", Char('a'))
	g.Register(r)
	if err := g.Check(); err == nil {
		t.Fatalf("Check() succeeded after registering the same rule twice")
	}
}

func TestCheckAcceptsDirectLeftRecursion(t *testing.T) {
	g := NewGrammar()
	digit := g.Define("digit", Set(func(r rune) bool { return r >= '0' && r <= '9' }))
	sum := NewRule("sum", nil)
	g.Register(sum)
	sum.SetExpr(OrAll(SeqAll(Ref(sum), Char('+'), Ref(digit)), Ref(digit)))
	g.Start = sum
	if err := g.Check(); err != nil {
		t.Fatalf("Check() rejected direct left recursion: %v", err)
	}
}

func TestCheckAcceptsTwoRuleCycle(t *testing.T) {
	g := NewGrammar()
	ident := g.Define("ident", Loop1(Set(func(r rune) bool { return r >= 'a' && r <= 'z' })))
	name := g.Define("name", Ref(ident))
	term := NewRule("term", nil)
	g.Register(term)
	fieldRef := g.Define("fieldRef", SeqAll(Ref(term), Char('.'), Ref(ident)))
	term.SetExpr(OrAll(Ref(fieldRef), Ref(name)))
	g.Start = term
	if err := g.Check(); err != nil {
		t.Fatalf("Check() rejected a two-rule left-recursive cycle: %v", err)
	}
}

func TestCheckAcceptsSharedDrivingRuleWithTwoDistinctTwoRuleCycles(t *testing.T) {
	// Mirrors the calculator example: mul is left-recursive through both
	// mulOp and divOp, each its own independent two-rule cycle.
	g := NewGrammar()
	val := g.Define("val", Set(func(r rune) bool { return r >= '0' && r <= '9' }))
	mul := NewRule("mul", nil)
	g.Register(mul)
	mulOp := g.Define("mulOp", SeqAll(Ref(mul), Char('*'), Ref(mul)))
	divOp := g.Define("divOp", SeqAll(Ref(mul), Char('/'), Ref(mul)))
	mul.SetExpr(OrAll(Ref(mulOp), Ref(divOp), Ref(val)))
	g.Start = mul
	if err := g.Check(); err != nil {
		t.Fatalf("Check() rejected a shared driving rule with two two-rule cycles: %v", err)
	}
}

func TestCheckRejectsThreeRuleCycle(t *testing.T) {
	g := NewGrammar()
	a := NewRule("a", nil)
	b := NewRule("b", nil)
	c := NewRule("c", nil)
	g.Register(a)
	g.Register(b)
	g.Register(c)
	a.SetExpr(OrAll(Ref(b), Char('a')))
	b.SetExpr(OrAll(Ref(c), Char('b')))
	c.SetExpr(OrAll(Ref(a), Char('c')))
	g.Start = a
	if err := g.Check(); err == nil {
		t.Fatalf("Check() accepted a three-rule left-recursive cycle")
	}
}

func TestOnMatchPanicsOnSecondRegistration(t *testing.T) {
	r := NewRule("r", Char('a'))
	r.OnMatch(func(begin, end Position, userData any) {})
	defer func() {
		if recover() == nil {
			t.Fatalf("second OnMatch call did not panic")
		}
	}()
	r.OnMatch(func(begin, end Position, userData any) {})
}

func TestSetExprPanicsOnCopiedRule(t *testing.T) {
	r := NewRule("r", Char('a'))
	copied := *r
	defer func() {
		if recover() == nil {
			t.Fatalf("SetExpr on a copied rule did not panic")
		}
	}()
	copied.SetExpr(Char('b'))
}

func TestParserReusableAcrossConcurrentParses(t *testing.T) {
	g := NewGrammar()
	g.Start = g.Define("digit", Set(func(r rune) bool { return r >= '0' && r <= '9' }))
	parser, err := g.Parser()
	if err != nil {
		t.Fatalf("Parser() error: %v", err)
	}

	done := make(chan bool, 2)
	run := func(input string, want bool) {
		var errs ErrorSlice
		ok := parser.Parse(NewInput(input), &errs, nil)
		done <- ok == want
	}
	go run("5", true)
	go run("x", false)
	if !<-done || !<-done {
		t.Fatalf("concurrent Parse calls on a shared Parser interfered with each other")
	}
}
