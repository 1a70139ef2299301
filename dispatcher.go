package firstmatch

import (
	"time"
)

// Dispatcher owns an ordered, append-only list of clauses and
// dispatches inputs against them with observability hooks.
//
// Usage:
//  1. Create a dispatcher with New
//  2. Append clauses with When or WhenFunc
//  3. Dispatch inputs with Dispatch
//
// Clause order is precedence: the first matching clause wins. Clauses
// are never reordered or removed once appended.
//
// Dispatcher is safe for concurrent use after configuration. Do not
// call When or WhenFunc after calling Dispatch.
type Dispatcher[C, R any] struct {
	clauses []Clause[C, R]
	hooks   hooks[C]
}

// New creates a Dispatcher with the given options.
//
// Example:
//
//	d := firstmatch.New[Order, int](
//	    firstmatch.WithOnMatch[Order](func(o Order, clause int) {
//	        logger.Debug("matched", "clause", clause)
//	    }),
//	    firstmatch.WithOnNoMatch[Order](func(o Order) {
//	        metrics.Incr("dispatch.miss")
//	    }),
//	)
func New[C, R any](opts ...Option[C]) *Dispatcher[C, R] {
	d := &Dispatcher[C, R]{}
	for _, opt := range opts {
		opt(&d.hooks)
	}
	return d
}

// When appends a clause. Later clauses have lower precedence.
// A nil guard or handler is a programmer error and panics.
func (d *Dispatcher[C, R]) When(g Guard[C], h Handler[C, R]) {
	if g == nil || h == nil {
		panic("firstmatch: When requires a non-nil guard and handler")
	}
	d.clauses = append(d.clauses, Clause[C, R]{Guard: g, Handler: h})
}

// WhenFunc is a convenience for appending a clause with a handler
// function.
//
// Example:
//
//	d.WhenFunc(firstmatch.Literal[Order](true), func(o Order) (int, error) {
//	    return 0, nil
//	})
func (d *Dispatcher[C, R]) WhenFunc(g Guard[C], fn func(in C) (R, error)) {
	if fn == nil {
		panic("firstmatch: WhenFunc requires a non-nil handler function")
	}
	d.When(g, HandlerFunc[C, R](fn))
}

// Len reports the number of appended clauses.
func (d *Dispatcher[C, R]) Len() int { return len(d.clauses) }

// Dispatch scans the appended clauses in order and runs the handler of
// the first clause whose guard matches. Guards and handlers after the
// match are never evaluated.
//
// The dispatch flow:
//  1. Evaluate each clause's guard in order
//  2. On a guard error: fire OnGuardError hooks, return *GuardEvaluationError
//  3. On the first true guard: fire OnMatch hooks, run the handler,
//     fire OnHandled hooks, return the handler's result
//  4. If no guard matches: fire OnNoMatch hooks, return *NoClauseMatchedError
func (d *Dispatcher[C, R]) Dispatch(in C) (R, error) {
	var zero R
	for i, c := range d.clauses {
		ok, err := c.Guard.Eval(in)
		if err != nil {
			gerr := &GuardEvaluationError{Clause: i, Err: err}
			for _, fn := range d.hooks.onGuardError {
				fn(in, i, err)
			}
			return zero, gerr
		}
		if !ok {
			continue
		}

		for _, fn := range d.hooks.onMatch {
			fn(in, i)
		}

		start := time.Now()
		result, err := c.Handler.Handle(in)
		duration := time.Since(start)

		for _, fn := range d.hooks.onHandled {
			fn(in, i, err, duration)
		}
		return result, err
	}

	for _, fn := range d.hooks.onNoMatch {
		fn(in)
	}
	return zero, &NoClauseMatchedError{Context: in}
}
