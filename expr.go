package pegmatite

// exprKind tags the variant a *Expr node holds. A tagged sum type is used
// instead of one interface implementation per combinator (per the Design
// Notes) so the evaluator dispatches with a single exhaustive switch and
// the hot path stays inlineable.
type exprKind int

const (
	exprChar exprKind = iota
	exprLiteral
	exprSet
	exprAny
	exprEof
	exprTerminal
	exprLoop0
	exprLoop1
	exprOptional
	exprAnd
	exprNot
	exprNl
	exprSeq
	exprChoice
	exprRef
)

// Expr is one node of the immutable expression graph described in spec
// §3/§4.B. Each combinator node exclusively owns its children; the only
// non-owning edge is a Ref's borrowed pointer into a Rule.
type Expr struct {
	kind exprKind

	char    rune
	literal []rune
	set     func(rune) bool

	left  *Expr
	right *Expr

	rule *Rule
}

// Char matches a single code point.
func Char(c rune) *Expr {
	return &Expr{kind: exprChar, char: c}
}

// Literal matches an ordered, exact sequence of code points.
func Literal(s string) *Expr {
	return &Expr{kind: exprLiteral, literal: []rune(s)}
}

// Set matches any single code point for which pred returns true.
func Set(pred func(rune) bool) *Expr {
	return &Expr{kind: exprSet, set: pred}
}

// SetOf matches any single code point present in chars.
func SetOf(chars string) *Expr {
	members := make(map[rune]bool, len(chars))
	for _, r := range chars {
		members[r] = true
	}
	return Set(func(r rune) bool { return members[r] })
}

// Range matches any single code point in the inclusive range [lo, hi].
func Range(lo, hi rune) *Expr {
	return Set(func(r rune) bool { return r >= lo && r <= hi })
}

// Any matches one code point, failing only at end of input.
func Any() *Expr {
	return &Expr{kind: exprAny}
}

// Eof matches only at end of input, consuming nothing.
func Eof() *Expr {
	return &Expr{kind: exprEof}
}

// Terminal forces child to evaluate in token mode: no implicit whitespace
// skipping is performed between the sub-expressions of Seq/Loop inside it.
func Terminal(child *Expr) *Expr {
	return &Expr{kind: exprTerminal, left: child}
}

// Token is an alias for Terminal matching the vocabulary used in spec §6.
func Token(child *Expr) *Expr { return Terminal(child) }

// Loop0 matches child greedily zero or more times; it always succeeds.
func Loop0(child *Expr) *Expr {
	return &Expr{kind: exprLoop0, left: child}
}

// Many0 is an alias for Loop0.
func Many0(child *Expr) *Expr { return Loop0(child) }

// Loop1 matches child greedily one or more times.
func Loop1(child *Expr) *Expr {
	return &Expr{kind: exprLoop1, left: child}
}

// Many1 is an alias for Loop1.
func Many1(child *Expr) *Expr { return Loop1(child) }

// Optional matches child or succeeds without advancing.
func Optional(child *Expr) *Expr {
	return &Expr{kind: exprOptional, left: child}
}

// Opt is an alias for Optional.
func Opt(child *Expr) *Expr { return Optional(child) }

// And is a positive lookahead: it succeeds iff child would succeed, and
// never advances the cursor either way.
func And(child *Expr) *Expr {
	return &Expr{kind: exprAnd, left: child}
}

// Lookahead is an alias for And.
func Lookahead(child *Expr) *Expr { return And(child) }

// Not is a negative lookahead: it succeeds iff child would fail, and never
// advances the cursor either way.
func Not(child *Expr) *Expr {
	return &Expr{kind: exprNot, left: child}
}

// Negate is an alias for Not.
func Negate(child *Expr) *Expr { return Not(child) }

// Nl wraps a terminal that consumes a newline; on success it increments
// the line counter and resets the column, leaving the iterator untouched
// (the wrapped terminal already advanced it).
func Nl(child *Expr) *Expr {
	return &Expr{kind: exprNl, left: child}
}

// NewlineExpr is an alias for Nl matching spec §6's `newline(A)` name.
func NewlineExpr(child *Expr) *Expr { return Nl(child) }

// Seq matches left then right, in order.
func Seq(left, right *Expr) *Expr {
	return &Expr{kind: exprSeq, left: left, right: right}
}

// Then is an alias for Seq matching spec §6's `A then B` name.
func Then(left, right *Expr) *Expr { return Seq(left, right) }

// SeqAll folds Seq over two or more expressions, left associative.
func SeqAll(first *Expr, rest ...*Expr) *Expr {
	out := first
	for _, e := range rest {
		out = Seq(out, e)
	}
	return out
}

// Choice matches left; if left fails, it fully restores and tries right.
func Choice(left, right *Expr) *Expr {
	return &Expr{kind: exprChoice, left: left, right: right}
}

// Or is an alias for Choice matching spec §6's `A or B` name.
func Or(left, right *Expr) *Expr { return Choice(left, right) }

// OrAll folds Choice over two or more expressions, ordered left to right.
func OrAll(first *Expr, rest ...*Expr) *Expr {
	out := first
	for _, e := range rest {
		out = Choice(out, e)
	}
	return out
}

// Ref is an indirection to a named rule; it is the only construct that
// recurses by name and the only edge in the graph that does not own its
// target. r must outlive every expression built from it.
func Ref(r *Rule) *Expr {
	if r == nil {
		panic("pegmatite: Ref of a nil rule")
	}
	r.checkNotCopied()
	return &Expr{kind: exprRef, rule: r}
}
