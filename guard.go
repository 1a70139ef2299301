package firstmatch

import (
	"cmp"
	"fmt"
)

// Guard decides whether a clause is eligible to handle a given input.
// Guards are cheap predicates evaluated before a handler runs; a guard
// may fail, which is treated as a caller bug rather than a non-match
// (see GuardEvaluationError).
type Guard[C any] interface {
	Eval(in C) (bool, error)
}

// GuardFunc is a function adapter for Guard. Use for simple predicates
// that don't need a struct:
//
//	firstmatch.GuardFunc[Order](func(o Order) (bool, error) {
//	    return o.Total > 100, nil
//	})
type GuardFunc[C any] func(in C) (bool, error)

// Eval implements the Guard interface.
func (f GuardFunc[C]) Eval(in C) (bool, error) { return f(in) }

// Literal returns a Guard that ignores its input and always produces v.
// Useful as a catch-all final clause (Literal[C](true)).
func Literal[C any](v bool) Guard[C] {
	return literal[C]{v: v}
}

type literal[C any] struct {
	v bool
}

func (g literal[C]) Eval(C) (bool, error) { return g.v, nil }

// Op is a comparison operator for Compare guards.
type Op int

const (
	OpEq Op = iota // equal
	OpNe           // not equal
	OpLt           // less than
	OpLe           // less than or equal
	OpGt           // greater than
	OpGe           // greater than or equal
)

// Compare returns a Guard that compares two values projected from the
// input. Both projections are evaluated on every Eval; neither is
// cached.
//
//	firstmatch.Compare(firstmatch.OpGe,
//	    func(o Order) int { return o.Total },
//	    func(o Order) int { return 100 },
//	)
//
// An unknown operator is a programmer error and panics immediately.
func Compare[C any, V cmp.Ordered](op Op, lhs, rhs func(C) V) Guard[C] {
	if op < OpEq || op > OpGe {
		panic(fmt.Sprintf("firstmatch: unknown comparison operator %d", int(op)))
	}
	return GuardFunc[C](func(in C) (bool, error) {
		a, b := lhs(in), rhs(in)
		switch op {
		case OpEq:
			return a == b, nil
		case OpNe:
			return a != b, nil
		case OpLt:
			return a < b, nil
		case OpLe:
			return a <= b, nil
		case OpGt:
			return a > b, nil
		default:
			return a >= b, nil
		}
	})
}

// And returns a Guard that matches when all guards match. Guards are
// evaluated lazily left to right; evaluation stops at the first false
// guard and later guards are never invoked. An empty And is vacuously
// true.
func And[C any](guards ...Guard[C]) Guard[C] {
	return and[C]{guards: guards}
}

type and[C any] struct {
	guards []Guard[C]
}

func (g and[C]) Eval(in C) (bool, error) {
	ok, _, err := EvaluateAnd(guardThunks(g.guards, in)...)
	return ok, err
}

// Or returns a Guard that matches when any guard matches. Guards are
// evaluated lazily left to right; evaluation stops at the first true
// guard and later guards are never invoked. An empty Or never matches.
//
// Or is how multiple independent guard alternatives for a single clause
// are combined: the clause matches if any alternative holds.
func Or[C any](guards ...Guard[C]) Guard[C] {
	return or[C]{guards: guards}
}

type or[C any] struct {
	guards []Guard[C]
}

func (g or[C]) Eval(in C) (bool, error) {
	ok, _, err := EvaluateOr(guardThunks(g.guards, in)...)
	return ok, err
}

// guardThunks defers each guard's evaluation against in so And/Or can
// reuse the combinator's short-circuit scan.
func guardThunks[C any](guards []Guard[C], in C) []Thunk {
	thunks := make([]Thunk, len(guards))
	for i, g := range guards {
		g := g
		thunks[i] = func() (bool, error) { return g.Eval(in) }
	}
	return thunks
}
