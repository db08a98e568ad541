package pegmatite

import "fmt"

// ErrorKind distinguishes the two ways a Parse can fail after the input
// has been fully searched, matching the original engine's ERROR_SYNTAX_ERROR
// and ERROR_INVALID_EOF.
type ErrorKind int

const (
	// SyntaxError means the parse stopped before end of input, at the
	// furthest position any rule managed to reach.
	SyntaxError ErrorKind = iota
	// InvalidEof means every rule matched, but ran out of input before
	// the grammar was satisfied.
	InvalidEof
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case InvalidEof:
		return "unexpected end of input"
	default:
		return "unknown error"
	}
}

// Error describes one parse failure. Position data is exposed as plain
// value types rather than wrapped with github.com/pkg/errors: these are
// data about where the input failed to match the grammar, not a Go error
// chain to unwrap, so wrapping would just make ErrorSink's tests pattern
// match on stringly-typed messages instead of struct fields.
type Error struct {
	Kind  ErrorKind
	Begin Position
	End   Position
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Kind, e.Begin.Line(), e.Begin.Column())
}

// ErrorSink receives parse errors as they are discovered. It is the Go
// analogue of the original engine's error_list output parameter.
type ErrorSink interface {
	PushError(Error)
}

// ErrorSlice is the simplest ErrorSink: it just appends.
type ErrorSlice []Error

func (s *ErrorSlice) PushError(e Error) { *s = append(*s, e) }

func nextPosition(p Position) Position {
	p.offset++
	p.column++
	return p
}

func syntaxError(c *context) Error {
	return Error{Kind: SyntaxError, Begin: c.errorCursor, End: nextPosition(c.errorCursor)}
}

func eofError(c *context) Error {
	return Error{Kind: InvalidEof, Begin: c.errorCursor, End: c.errorCursor}
}

// Parse runs p's start rule against input, following the seven-step
// sequence from spec §4.F: prime leading whitespace, evaluate the start
// rule in non-token mode, report a syntax error and stop on failure,
// consume trailing whitespace, require end of input, and only then fire
// every recorded action, once, in journal order. userData is threaded
// through to every ActionFunc unchanged.
func (p *Parser) Parse(input Input, sink ErrorSink, userData any) bool {
	c := newContext(input, p.whitespace, p.logger)

	c.skipWhitespace()

	if o, _ := evalRef(c, p.start, modeNonToken); o != outcomeOK {
		sink.PushError(syntaxError(c))
		return false
	}

	c.skipWhitespace()

	if !c.atEnd() {
		if c.errorCursor.offset < input.len() {
			sink.PushError(syntaxError(c))
		} else {
			sink.PushError(eofError(c))
		}
		return false
	}

	for _, m := range c.journal {
		m.rule.action(m.begin, m.end, userData)
	}
	return true
}
