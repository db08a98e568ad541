package pegmatite

// matchEntry is one journal record: a rule matched the input between begin
// and end. Only rules with a registered action produce entries.
type matchEntry struct {
	rule  *Rule
	begin Position
	end   Position
}

// savedState is what Choice/Optional/loops/lookahead snapshot before a
// speculative evaluation and restore on backtrack: the cursor and the
// journal length. Restoring truncates the journal rather than clearing
// it, since sibling matches recorded earlier in the same attempt must
// survive a later sibling's backtrack.
type savedState struct {
	cursor     Position
	journalLen int
}

// context is the mutable, per-parse state described in spec §3/§4.D. It is
// scoped to exactly one Parse call and is never shared across parses,
// which is what lets two independent parses over the same Grammar run
// concurrently even though rule left-recursion state is mutable.
type context struct {
	input Input

	cursor      Position
	errorCursor Position

	journal []matchEntry

	whitespace *Rule // nil if the grammar defines no whitespace rule

	ruleStates map[*Rule]*ruleState

	logger *grammarLogger
}

func newContext(input Input, whitespace *Rule, logger *grammarLogger) *context {
	start := startPosition()
	return &context{
		input:       input,
		cursor:      start,
		errorCursor: start,
		whitespace:  whitespace,
		ruleStates:  make(map[*Rule]*ruleState),
		logger:      logger,
	}
}

func (c *context) stateFor(r *Rule) *ruleState {
	st, ok := c.ruleStates[r]
	if !ok {
		st = newRuleState()
		c.ruleStates[r] = st
	}
	return st
}

func (c *context) snapshot() savedState {
	return savedState{cursor: c.cursor, journalLen: len(c.journal)}
}

func (c *context) restore(s savedState) {
	c.cursor = s.cursor
	c.journal = c.journal[:s.journalLen]
}

// noteError records the furthest position any terminal mismatch reached.
// error_cursor is monotonically non-decreasing and is never rolled back
// by Choice's backtracking (spec §4.E), which yields the familiar
// "furthest failure" heuristic.
func (c *context) noteError(pos Position) {
	if pos.offset > c.errorCursor.offset {
		c.errorCursor = pos
	}
}

// skipWhitespace evaluates the whitespace rule in token mode as a
// best-effort consumer: its own success or failure is ignored.
func (c *context) skipWhitespace() {
	if c.whitespace == nil {
		return
	}
	saved := c.snapshot()
	if o, _ := evalRef(c, c.whitespace, modeToken); o != outcomeOK {
		c.restore(saved)
	}
}

func (c *context) atEnd() bool { return c.input.atEnd(c.cursor) }

func (c *context) advanceColumn() {
	c.cursor = c.input.advanceColumn(c.cursor)
}

func (c *context) advanceLine() {
	c.cursor = advanceLine(c.cursor)
}
