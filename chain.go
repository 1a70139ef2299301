package firstmatch

import (
	"fmt"
	"reflect"
)

// Bindings carries values captured by Bind patterns through a chain
// run. Producers and the final body receive the bindings accumulated
// by all prior steps.
type Bindings map[string]any

// Pattern is the expected shape of a step's produced value. Patterns
// are either a literal (Exactly) or a wildcard (Bind, Any); wildcards
// always match.
type Pattern interface {
	match(v any, b Bindings) bool
}

// Exactly returns a Pattern that matches when the produced value is
// structurally equal to want.
func Exactly(want any) Pattern {
	return exactly{want: want}
}

type exactly struct {
	want any
}

func (p exactly) match(v any, _ Bindings) bool {
	return reflect.DeepEqual(v, p.want)
}

// Bind returns a wildcard Pattern that always matches and records the
// produced value under name for later steps and the final body.
func Bind(name string) Pattern {
	return binder{name: name}
}

type binder struct {
	name string
}

func (p binder) match(v any, b Bindings) bool {
	b[p.name] = v
	return true
}

// Any returns a wildcard Pattern that always matches and binds nothing.
func Any() Pattern {
	return wildcard{}
}

type wildcard struct{}

func (wildcard) match(any, Bindings) bool { return true }

// Step produces a value and compares it against an expected pattern.
// The producer receives the bindings captured so far; it is invoked at
// most once, and only if every prior step matched.
type Step struct {
	Produce func(b Bindings) any
	Expect  Pattern
}

// Chain is an ordered sequence of steps plus a final body that runs
// only when every step matches. Chains are built per invocation and
// discarded after Run; they hold no shared state.
type Chain struct {
	Steps []Step

	// Body runs with the accumulated bindings once all steps match.
	// A nil Body yields a nil matched value.
	Body func(b Bindings) any
}

// MatchResult is the outcome of running a chain: either every step
// matched and Value holds the body's result, or evaluation stopped at
// the first mismatching step and Value holds that step's produced
// value. A mismatch is an ordinary outcome, not an error.
type MatchResult struct {
	// Matched reports whether every step matched.
	Matched bool

	// Step is the index of the mismatching step, or -1 when Matched.
	Step int

	// Value is the body result when Matched, otherwise the value
	// produced by the mismatching step.
	Value any
}

// Run executes the chain's steps strictly in order. Each step's
// producer runs exactly once; on the first literal mismatch the chain
// stops and the mismatching step's produced value becomes the result.
// Wildcard patterns always match, with Bind capturing the produced
// value into the bindings.
//
// An empty chain trivially matches and runs only the body.
//
// A step with a nil producer or nil pattern is malformed and panics.
func (c Chain) Run() MatchResult {
	b := Bindings{}
	for i, s := range c.Steps {
		if s.Produce == nil || s.Expect == nil {
			panic(fmt.Sprintf("firstmatch: chain step %d has a nil producer or pattern", i))
		}
		v := s.Produce(b)
		if !s.Expect.match(v, b) {
			return MatchResult{Matched: false, Step: i, Value: v}
		}
	}
	var v any
	if c.Body != nil {
		v = c.Body(b)
	}
	return MatchResult{Matched: true, Step: -1, Value: v}
}
