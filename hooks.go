package firstmatch

import "time"

// OnMatchFunc is called when a clause's guard matches, just before its
// handler executes.
type OnMatchFunc[C any] func(in C, clause int)

// OnHandledFunc is called after the matched clause's handler returns,
// with the handler's error (nil on success) and its duration.
type OnHandledFunc[C any] func(in C, clause int, err error, duration time.Duration)

// OnNoMatchFunc is called when the clause list is exhausted with no
// matching guard.
type OnNoMatchFunc[C any] func(in C)

// OnGuardErrorFunc is called when a guard fails during evaluation,
// aborting the scan.
type OnGuardErrorFunc[C any] func(in C, clause int, err error)

// hooks holds all configured hook functions.
type hooks[C any] struct {
	onMatch      []OnMatchFunc[C]
	onHandled    []OnHandledFunc[C]
	onNoMatch    []OnNoMatchFunc[C]
	onGuardError []OnGuardErrorFunc[C]
}

// Option configures dispatcher hooks.
type Option[C any] func(*hooks[C])

// WithOnMatch adds a hook called when a clause matches, before its
// handler runs. Multiple hooks are called in order.
//
// Example:
//
//	firstmatch.WithOnMatch[Order](func(o Order, clause int) {
//	    logger.Debug("clause matched", "clause", clause)
//	})
func WithOnMatch[C any](fn OnMatchFunc[C]) Option[C] {
	return func(h *hooks[C]) {
		h.onMatch = append(h.onMatch, fn)
	}
}

// WithOnHandled adds a hook called after the matched handler returns.
// Multiple hooks are called in order.
//
// Example:
//
//	firstmatch.WithOnHandled[Order](func(o Order, clause int, err error, d time.Duration) {
//	    metrics.Timing("dispatch.handled", d)
//	})
func WithOnHandled[C any](fn OnHandledFunc[C]) Option[C] {
	return func(h *hooks[C]) {
		h.onHandled = append(h.onHandled, fn)
	}
}

// WithOnNoMatch adds a hook called when no clause matches. The
// dispatcher still returns *NoClauseMatchedError; the hook is for
// logging and metrics, not for overriding the outcome.
//
// Example:
//
//	firstmatch.WithOnNoMatch[Order](func(o Order) {
//	    logger.Warn("no clause for order", "id", o.ID)
//	})
func WithOnNoMatch[C any](fn OnNoMatchFunc[C]) Option[C] {
	return func(h *hooks[C]) {
		h.onNoMatch = append(h.onNoMatch, fn)
	}
}

// WithOnGuardError adds a hook called when a guard fails during
// evaluation. The dispatcher still returns *GuardEvaluationError.
//
// Example:
//
//	firstmatch.WithOnGuardError[Order](func(o Order, clause int, err error) {
//	    logger.Error("broken guard", "clause", clause, "error", err)
//	})
func WithOnGuardError[C any](fn OnGuardErrorFunc[C]) Option[C] {
	return func(h *hooks[C]) {
		h.onGuardError = append(h.onGuardError, fn)
	}
}
