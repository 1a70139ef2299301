package firstmatch

// Thunk is a deferred boolean expression. Thunks are handed to
// EvaluateOr and EvaluateAnd unevaluated so that short-circuiting can
// skip them entirely; a thunk that is never reached is never invoked.
type Thunk func() (bool, error)

// EvaluateOr evaluates thunks left to right and stops at the first one
// that produces true. It returns the overall result and the index of
// the deciding thunk, or -1 if every thunk produced false.
//
// A thunk error aborts the scan immediately and is returned with the
// index of the failing thunk; later thunks are not invoked.
//
// An empty sequence is false, matching Or's vacuous-falsity.
func EvaluateOr(thunks ...Thunk) (bool, int, error) {
	for i, t := range thunks {
		ok, err := t()
		if err != nil {
			return false, i, err
		}
		if ok {
			return true, i, nil
		}
	}
	return false, -1, nil
}

// EvaluateAnd evaluates thunks left to right and stops at the first one
// that produces false. It returns the overall result and the index of
// the deciding thunk, or -1 if every thunk produced true.
//
// A thunk error aborts the scan immediately and is returned with the
// index of the failing thunk; later thunks are not invoked.
//
// An empty sequence is true, matching And's vacuous truth.
func EvaluateAnd(thunks ...Thunk) (bool, int, error) {
	for i, t := range thunks {
		ok, err := t()
		if err != nil {
			return false, i, err
		}
		if !ok {
			return false, i, nil
		}
	}
	return true, -1, nil
}
