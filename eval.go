package pegmatite

// evalMode selects between the two evaluation strategies described in
// spec §4.E. The two modes differ only in whether Seq skips whitespace
// between its two children and the loop combinators skip it before each
// attempt at their child; every other combinator behaves identically in
// both modes.
type evalMode int

const (
	modeNonToken evalMode = iota
	modeToken
)

// outcome is the three-valued result of evaluating an expression or a
// rule reference. outcomeGrowDone is the left-recursion grow-completion
// signal (spec §4.E, Design Notes option (a)): a typed, explicit stand-in
// for the non-local exit the original engine implements with an
// exception. It must propagate, untouched, through every combinator that
// did not initiate the growth it names, exactly the way an exception
// would fly past stack frames with no matching catch.
type outcome int

const (
	outcomeFail outcome = iota
	outcomeOK
	outcomeGrowDone
)

// evalExpr dispatches on the tagged Expr variant. It is the single
// exhaustive switch the Design Notes call for: adding a new combinator
// means adding one more case here rather than a new virtual method on
// every implementation.
func evalExpr(c *context, e *Expr, mode evalMode) (outcome, *Rule) {
	switch e.kind {
	case exprChar:
		return evalChar(c, e.char)
	case exprLiteral:
		return evalLiteral(c, e.literal)
	case exprSet:
		return evalSet(c, e.set)
	case exprAny:
		return evalAny(c)
	case exprEof:
		return evalEof(c)
	case exprTerminal:
		return evalExpr(c, e.left, modeToken)
	case exprLoop0:
		return evalLoop(c, e.left, mode, 0)
	case exprLoop1:
		return evalLoop(c, e.left, mode, 1)
	case exprOptional:
		return evalOptional(c, e.left, mode)
	case exprAnd:
		return evalAnd(c, e.left, mode)
	case exprNot:
		return evalNot(c, e.left, mode)
	case exprNl:
		return evalNl(c, e.left, mode)
	case exprSeq:
		return evalSeq(c, e.left, e.right, mode)
	case exprChoice:
		return evalChoice(c, e.left, e.right, mode)
	case exprRef:
		return evalRef(c, e.rule, mode)
	default:
		panic("pegmatite: unknown expression kind")
	}
}

func evalChar(c *context, ch rune) (outcome, *Rule) {
	if !c.atEnd() && c.input.at(c.cursor) == ch {
		c.advanceColumn()
		return outcomeOK, nil
	}
	c.noteError(c.cursor)
	return outcomeFail, nil
}

func evalLiteral(c *context, lit []rune) (outcome, *Rule) {
	start := c.cursor
	for _, want := range lit {
		if c.atEnd() || c.input.at(c.cursor) != want {
			c.cursor = start
			c.noteError(start)
			return outcomeFail, nil
		}
		c.advanceColumn()
	}
	return outcomeOK, nil
}

func evalSet(c *context, pred func(rune) bool) (outcome, *Rule) {
	if !c.atEnd() && pred(c.input.at(c.cursor)) {
		c.advanceColumn()
		return outcomeOK, nil
	}
	c.noteError(c.cursor)
	return outcomeFail, nil
}

func evalAny(c *context) (outcome, *Rule) {
	if !c.atEnd() {
		c.advanceColumn()
		return outcomeOK, nil
	}
	c.noteError(c.cursor)
	return outcomeFail, nil
}

func evalEof(c *context) (outcome, *Rule) {
	if c.atEnd() {
		return outcomeOK, nil
	}
	c.noteError(c.cursor)
	return outcomeFail, nil
}

// evalLoop implements both Loop0 (min=0) and Loop1 (min=1): greedily
// match child, restoring the last failed attempt. It does not guard
// against a child that matches the empty string forever, matching the
// original engine's loops exactly (the grow loop below is the only place
// spec §4.E asks for zero-progress detection).
func evalLoop(c *context, child *Expr, mode evalMode, min int) (outcome, *Rule) {
	if mode == modeNonToken {
		c.skipWhitespace()
	}
	saved := c.snapshot()
	o, gr := evalExpr(c, child, mode)
	if o == outcomeGrowDone {
		return o, gr
	}
	if o == outcomeFail {
		c.restore(saved)
		if min > 0 {
			return outcomeFail, nil
		}
		return outcomeOK, nil
	}
	for {
		if mode == modeNonToken {
			c.skipWhitespace()
		}
		saved = c.snapshot()
		o, gr = evalExpr(c, child, mode)
		if o == outcomeGrowDone {
			return o, gr
		}
		if o == outcomeFail {
			c.restore(saved)
			break
		}
	}
	return outcomeOK, nil
}

func evalOptional(c *context, child *Expr, mode evalMode) (outcome, *Rule) {
	saved := c.snapshot()
	o, gr := evalExpr(c, child, mode)
	if o == outcomeGrowDone {
		return o, gr
	}
	if o == outcomeFail {
		c.restore(saved)
	}
	return outcomeOK, nil
}

// evalAnd and evalNot never advance the cursor on a normal exit. If the
// child evaluation raises outcomeGrowDone the cursor is left wherever
// growth positioned it, matching the original engine: its `restore` call
// sits after the child evaluation and is skipped when that evaluation
// unwinds via the non-local exit instead of returning.
func evalAnd(c *context, child *Expr, mode evalMode) (outcome, *Rule) {
	saved := c.snapshot()
	o, gr := evalExpr(c, child, mode)
	if o == outcomeGrowDone {
		return o, gr
	}
	c.restore(saved)
	if o == outcomeOK {
		return outcomeOK, nil
	}
	return outcomeFail, nil
}

func evalNot(c *context, child *Expr, mode evalMode) (outcome, *Rule) {
	saved := c.snapshot()
	o, gr := evalExpr(c, child, mode)
	if o == outcomeGrowDone {
		return o, gr
	}
	c.restore(saved)
	if o == outcomeOK {
		return outcomeFail, nil
	}
	return outcomeOK, nil
}

func evalNl(c *context, child *Expr, mode evalMode) (outcome, *Rule) {
	o, gr := evalExpr(c, child, mode)
	if o != outcomeOK {
		return o, gr
	}
	c.advanceLine()
	return outcomeOK, nil
}

func evalSeq(c *context, left, right *Expr, mode evalMode) (outcome, *Rule) {
	o, gr := evalExpr(c, left, mode)
	if o != outcomeOK {
		return o, gr
	}
	if mode == modeNonToken {
		c.skipWhitespace()
	}
	return evalExpr(c, right, mode)
}

// evalChoice snapshots before the left alternative and restores before
// attempting the right one. error_cursor is deliberately not part of the
// snapshot: it only ever moves forward, recording the furthest point any
// branch reached, even the one that ultimately lost the choice.
func evalChoice(c *context, left, right *Expr, mode evalMode) (outcome, *Rule) {
	saved := c.snapshot()
	o, gr := evalExpr(c, left, mode)
	if o == outcomeGrowDone {
		return o, gr
	}
	if o == outcomeOK {
		return outcomeOK, nil
	}
	c.restore(saved)
	return evalExpr(c, right, mode)
}

// evalRuleBody evaluates a rule's expression exactly once, with no
// left-recursion bookkeeping of its own, and records a journal entry if
// the rule has a registered action and the evaluation succeeded. This is
// the direct counterpart of the original engine's private
// `_parse_non_term`/`_parse_term` helper: it is called once for an
// ordinary rule entry, once for the seed attempt, and once per grow
// iteration.
func evalRuleBody(c *context, r *Rule, mode evalMode) (outcome, *Rule) {
	if r.action == nil {
		return evalExpr(c, r.expr, mode)
	}
	begin := c.cursor
	o, gr := evalExpr(c, r.expr, mode)
	if o != outcomeOK {
		return o, gr
	}
	end := c.cursor
	c.journal = append(c.journal, matchEntry{rule: r, begin: begin, end: end})
	return outcomeOK, nil
}

// evalRef implements the rule protocol of spec §4.E: on entry it computes
// whether this is a left-recursive re-entry of r at the same offset, then
// dispatches on r's current mode. Every exit path restores r's
// left-recursion state to what it was on entry, via the deferred restore
// below, mirroring the "restored on every exit path" invariant from
// spec §3 without needing a try/finally per branch.
func evalRef(c *context, r *Rule, mode evalMode) (result outcome, growRule *Rule) {
	st := c.stateFor(r)
	old := st.snapshot()
	defer st.restore(old)

	offset := c.cursor.offset
	c.logger.traceRuleEnter(r.name, offset)
	defer func() { c.logger.traceRuleExit(r.name, offset, result == outcomeOK) }()

	lr := offset == st.lastEntryOffset
	st.lastEntryOffset = offset

	switch st.mode {
	case modeParse:
		if lr {
			return evalSeedGrow(c, r, st, mode)
		}
		bodyOutcome, gr := evalRuleBody(c, r, mode)
		if bodyOutcome == outcomeGrowDone && gr == r {
			// This is the outermost ordinary Parse frame for r: catch the
			// signal raised once its grow loop finished.
			return outcomeOK, nil
		}
		return bodyOutcome, gr

	case modeReject:
		if lr {
			// Breaks the infinite regress during the seed attempt.
			return outcomeFail, nil
		}
		st.mode = modeParse
		bodyOutcome, gr := evalRuleBody(c, r, mode)
		st.mode = modeReject
		return bodyOutcome, gr

	case modeAccept:
		if lr {
			// Exposes the previously-established match as a same-position
			// success, so the recursive alternative can use it as its left
			// operand without re-evaluating anything.
			return outcomeOK, nil
		}
		st.mode = modeParse
		bodyOutcome, gr := evalRuleBody(c, r, mode)
		st.mode = modeAccept
		return bodyOutcome, gr

	default:
		panic("pegmatite: unreachable rule mode")
	}
}

// evalSeedGrow runs the seed-then-grow protocol for a rule detected as
// left-recursive at the current offset. On success it always returns
// outcomeGrowDone tagged with r: the caller (the outermost ordinary Parse
// frame for r, however many frames up the call stack) is responsible for
// recognizing its own rule and converting the signal into outcomeOK.
func evalSeedGrow(c *context, r *Rule, st *ruleState, mode evalMode) (outcome, *Rule) {
	st.mode = modeReject
	seedOutcome, seedGrow := evalRuleBody(c, r, mode)
	if seedOutcome != outcomeOK {
		// No base case at this position: either an ordinary failure, or a
		// grow-completion signal for some other rule passing through.
		return seedOutcome, seedGrow
	}

	st.mode = modeAccept
	for {
		saved := c.snapshot()
		st.lastEntryOffset = c.cursor.offset
		growOutcome, gr := evalRuleBody(c, r, mode)
		if growOutcome == outcomeGrowDone {
			return growOutcome, gr
		}
		if growOutcome != outcomeOK {
			c.restore(saved)
			break
		}
		if c.cursor.offset == saved.cursor.offset {
			// Fixpoint: the recursive alternative matched but consumed no
			// further input, so growing again could not improve the match.
			c.restore(saved)
			break
		}
	}
	return outcomeGrowDone, r
}
