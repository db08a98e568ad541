package pegmatite

import "github.com/hashicorp/go-hclog"

// grammarLogger wraps an hclog.Logger for the two things pegmatite ever
// logs: rule-entry tracing during a parse, at Debug, and construction
// diagnostics from Grammar.Check that don't rise to a hard error, at
// Warn. This mirrors lab47-peggysue's own hclog.Logger field on its
// Parser type, including defaulting to a real (if quiet) logger rather
// than a nil check at every call site.
type grammarLogger struct {
	log hclog.Logger
}

// newNullGrammarLogger is the default: tracing and warnings are computed
// as normal but hclog.NewNullLogger discards every entry, so the cost of
// unconditional logging calls stays negligible.
func newNullGrammarLogger() *grammarLogger {
	return &grammarLogger{log: hclog.NewNullLogger()}
}

// NewGrammarLogger wraps an application-supplied hclog.Logger, letting a
// host program route pegmatite's trace output into its own logging
// pipeline (named "pegmatite" so it can be filtered independently).
func NewGrammarLogger(log hclog.Logger) *grammarLogger {
	if log == nil {
		return newNullGrammarLogger()
	}
	return &grammarLogger{log: log.Named("pegmatite")}
}

func (l *grammarLogger) traceRuleEnter(name string, offset int) {
	if l == nil {
		return
	}
	l.log.Debug("entering rule", "rule", name, "offset", offset)
}

func (l *grammarLogger) traceRuleExit(name string, offset int, ok bool) {
	if l == nil {
		return
	}
	l.log.Debug("leaving rule", "rule", name, "offset", offset, "matched", ok)
}

func (l *grammarLogger) warnConstruction(message string) {
	if l == nil {
		return
	}
	l.log.Warn(message)
}
