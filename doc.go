// Package pegmatite is a parsing expression grammar engine with support
// for direct and simple indirect left recursion.
//
// A grammar is built from Expr combinators (Char, Literal, Set, Seq,
// Choice, Loop0, Loop1, Optional, And, Not, Terminal, Nl) wired into named
// Rules, registered with a Grammar, and checked before use. Parsing a Rule
// graph against an Input never mutates the grammar itself: all mutable
// state for one parse lives in an internal context, so one Grammar can
// back any number of concurrent parses.
package pegmatite
