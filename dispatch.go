package firstmatch

import "fmt"

// Handler produces a result for an input once its clause's guard has
// matched.
//
// The type parameters are: C for the input context, R for the result.
//
// Example:
//
//	type FlatRateHandler struct {
//	    rate int
//	}
//
//	func (h *FlatRateHandler) Handle(o Order) (int, error) {
//	    return h.rate, nil
//	}
type Handler[C, R any] interface {
	Handle(in C) (R, error)
}

// HandlerFunc is a function adapter for Handler. Use for simple
// handlers that don't need a struct:
//
//	firstmatch.HandlerFunc[Order, int](func(o Order) (int, error) {
//	    return o.Total / 10, nil
//	})
type HandlerFunc[C, R any] func(in C) (R, error)

// Handle implements the Handler interface.
func (f HandlerFunc[C, R]) Handle(in C) (R, error) { return f(in) }

// Clause pairs a guard with the handler that runs when the guard
// matches. Clauses live in ordered sequences where position defines
// precedence: the first clause whose guard matches wins, with no
// backtracking.
type Clause[C, R any] struct {
	Guard   Guard[C]
	Handler Handler[C, R]
}

// NewClause constructs a Clause. Equivalent to a Clause literal; reads
// better in clause lists.
func NewClause[C, R any](g Guard[C], h Handler[C, R]) Clause[C, R] {
	return Clause[C, R]{Guard: g, Handler: h}
}

// NewClauseFunc constructs a Clause from a guard and a handler function.
func NewClauseFunc[C, R any](g Guard[C], fn func(in C) (R, error)) Clause[C, R] {
	return Clause[C, R]{Guard: g, Handler: HandlerFunc[C, R](fn)}
}

// Dispatch scans clauses in order and returns the result of the first
// clause whose guard matches the input. Once a clause matches, the
// remaining clauses' guards and handlers are never evaluated.
//
// If no guard matches, Dispatch returns a *NoClauseMatchedError
// carrying the input for diagnostics. If a guard itself fails, the
// scan aborts and Dispatch returns a *GuardEvaluationError wrapping
// the cause; a broken guard is a caller bug, not a non-match.
//
// A clause with a nil guard or nil handler is malformed and panics.
func Dispatch[C, R any](clauses []Clause[C, R], in C) (R, error) {
	var zero R
	for i, c := range clauses {
		if c.Guard == nil || c.Handler == nil {
			panic(fmt.Sprintf("firstmatch: clause %d has a nil guard or handler", i))
		}
		ok, err := c.Guard.Eval(in)
		if err != nil {
			return zero, &GuardEvaluationError{Clause: i, Err: err}
		}
		if ok {
			return c.Handler.Handle(in)
		}
	}
	return zero, &NoClauseMatchedError{Context: in}
}

// NoClauseMatchedError reports that every clause's guard evaluated
// false. It carries the dispatched context for diagnostics. Callers are
// expected to recover from it: fall back, re-dispatch elsewhere, or
// surface it.
type NoClauseMatchedError struct {
	Context any
}

func (e *NoClauseMatchedError) Error() string {
	return fmt.Sprintf("no clause matched context %v", e.Context)
}

// GuardEvaluationError reports that a guard failed while being
// evaluated, which aborts the dispatch scan. Distinct from
// NoClauseMatchedError: a failing guard indicates a bug in the guard,
// not an input that nothing handles.
type GuardEvaluationError struct {
	// Clause is the index of the clause whose guard failed.
	Clause int
	Err    error
}

func (e *GuardEvaluationError) Error() string {
	return fmt.Sprintf("guard for clause %d failed: %v", e.Clause, e.Err)
}

func (e *GuardEvaluationError) Unwrap() error { return e.Err }
