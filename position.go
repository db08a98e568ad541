package pegmatite

// Position is a cursor into an Input. It is a value type: callers save and
// restore it by copying, the same way tef-ez's parserState.clone/merge pair
// snapshots an offset. Line and column are 1-based; Offset is the index of
// the next unread code point.
type Position struct {
	offset int
	line   int
	column int
}

// Offset returns the index of the code point this position sits before.
func (p Position) Offset() int { return p.offset }

// Line returns the 1-based line number.
func (p Position) Line() int { return p.line }

// Column returns the 1-based column number.
func (p Position) Column() int { return p.column }

// Less reports whether p sits strictly before q in the input.
func (p Position) Less(q Position) bool { return p.offset < q.offset }

func startPosition() Position {
	return Position{offset: 0, line: 1, column: 1}
}

// Input is an ordered, immutable sequence of code points. It never mutates
// the slice it wraps; positions index into it directly rather than through
// an opaque iterator, since a rune slice already gives O(1) equality and
// difference-in-elements the way the spec's abstract iterator requires.
type Input struct {
	runes []rune
}

// NewInput builds an Input from a string, decoding it into code points.
func NewInput(s string) Input {
	return Input{runes: []rune(s)}
}

// NewInputRunes builds an Input directly from a slice of code points. The
// slice is not copied; callers must not mutate it afterwards.
func NewInputRunes(r []rune) Input {
	return Input{runes: r}
}

func (in Input) len() int { return len(in.runes) }

func (in Input) atEnd(pos Position) bool { return pos.offset >= len(in.runes) }

func (in Input) at(pos Position) rune { return in.runes[pos.offset] }

// advanceColumn returns the position one code point past pos, on the
// assumption a non-newline code point was just consumed.
func (in Input) advanceColumn(pos Position) Position {
	pos.offset++
	pos.column++
	return pos
}

// advanceLine bumps the line counter and resets the column. The caller
// (the Nl combinator) has already advanced the iterator past the newline
// via the terminal it wraps.
func advanceLine(pos Position) Position {
	pos.line++
	pos.column = 1
	return pos
}

// Slice returns the code points between two positions, begin inclusive and
// end exclusive. Used by actions and captures to recover matched text.
func (in Input) Slice(begin, end Position) []rune {
	return in.runes[begin.offset:end.offset]
}

// String returns the code points between two positions as a string.
func (in Input) String(begin, end Position) string {
	return string(in.Slice(begin, end))
}
