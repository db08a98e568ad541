package pegmatite

import "github.com/pkg/errors"

// ActionFunc is the callback signature for a rule's on_match action, fired
// once per successful top-level parse, in input order, for every match of
// the rule it is registered on. userData is opaque to the engine and is
// passed through from the Parse call.
type ActionFunc func(begin, end Position, userData any)

// Rule is a named, possibly recursive node of the grammar. It owns exactly
// one expression root and, once registered, one action. A Rule is built
// once by NewRule/Grammar.Define and lives for the lifetime of the
// grammar; it must never be copied after construction (see checkNotCopied).
//
// Left-recursion bookkeeping does NOT live on Rule: per the Design Notes
// it is kept in a per-context map keyed by the *Rule pointer, which keeps
// Rule itself immutable after construction and makes two independent
// parses over the same grammar safe to run concurrently.
type Rule struct {
	name   string
	expr   *Expr
	action ActionFunc

	self *Rule // set to the Rule's own address at construction; used to
	// detect an accidental value copy, since Go cannot forbid struct
	// copies at compile time the way the original's copy constructor did.
}

// NewRule constructs a named rule around expr. Rules referenced from other
// expressions must be constructed before they are used, but a rule may be
// forward-declared with SetExpr for grammars that recurse through it.
func NewRule(name string, expr *Expr) *Rule {
	r := &Rule{name: name, expr: expr}
	r.self = r
	return r
}

// SetExpr assigns (or reassigns) the rule's expression root. This exists
// so mutually- and self-referential grammars can be built: declare the
// rule with a nil expression, take Ref()s to it, then call SetExpr once
// the full graph is assembled.
func (r *Rule) SetExpr(expr *Expr) {
	r.checkNotCopied()
	r.expr = expr
}

// Name returns the rule's grammar name.
func (r *Rule) Name() string {
	r.checkNotCopied()
	return r.name
}

// OnMatch registers the rule's action. Registering a second action on one
// rule is a programmer error, matching spec §7.
func (r *Rule) OnMatch(action ActionFunc) {
	r.checkNotCopied()
	if r.action != nil {
		panic(errors.Errorf("pegmatite: rule %q already has an action registered", r.name))
	}
	r.action = action
}

// checkNotCopied panics if r was reached through a copied Rule value
// rather than the pointer returned by NewRule. This is the runtime
// equivalent of the original C++ engine's copy constructor that always
// throws: Go has no way to forbid the copy itself, only to catch its use.
func (r *Rule) checkNotCopied() {
	if r.self != r {
		panic(errors.Errorf("pegmatite: rule %q was copied by value; rules must only be used through their original *Rule", r.name))
	}
}

// ruleMode is the left-recursion state machine from spec §4.E.
type ruleMode int

const (
	modeParse ruleMode = iota
	modeReject
	modeAccept
)

// ruleState is one rule's left-recursion bookkeeping for a single parse.
// It is looked up (and lazily created) from context.ruleStates, never
// stored on the Rule itself.
type ruleState struct {
	mode            ruleMode
	lastEntryOffset int // sentinel -1: distinct from every valid offset
}

func newRuleState() *ruleState {
	return &ruleState{mode: modeParse, lastEntryOffset: -1}
}

func (s *ruleState) snapshot() ruleState { return *s }

func (s *ruleState) restore(saved ruleState) { *s = saved }
