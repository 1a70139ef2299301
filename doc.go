// Package firstmatch provides a small evaluation engine for ordered
// rule matching: evaluate candidates in order, commit to the first
// match, and never touch what comes after.
//
// The package bundles the primitives that pattern reduces to — lazy
// boolean combinators, guarded clause dispatch, sequential match
// chains, a flag-parameterized literal-tag registry, key-path lookup,
// and bag subtraction — behind one consistent contract: success and
// failure are explicit values, order is precedence, and nothing past
// the deciding point is ever evaluated.
//
// # Quick Start
//
// Build a dispatcher over ordered (guard, handler) clauses:
//
//	type Order struct {
//	    Total   int
//	    Express bool
//	}
//
//	d := firstmatch.New[Order, int]()
//	d.WhenFunc(
//	    firstmatch.GuardFunc[Order](func(o Order) (bool, error) { return o.Express, nil }),
//	    func(o Order) (int, error) { return 25, nil },
//	)
//	d.WhenFunc(
//	    firstmatch.Compare(firstmatch.OpGe,
//	        func(o Order) int { return o.Total },
//	        func(o Order) int { return 100 }),
//	    func(o Order) (int, error) { return 0, nil },
//	)
//	d.WhenFunc(firstmatch.Literal[Order](true), func(o Order) (int, error) {
//	    return 10, nil
//	})
//
//	fee, err := d.Dispatch(Order{Total: 150})
//
// The first clause whose guard matches wins; later guards and handlers
// are never evaluated. If nothing matches, Dispatch returns a
// *NoClauseMatchedError carrying the input.
//
// # Guards
//
// Guards are composable predicates over the dispatched input:
//   - GuardFunc: an arbitrary predicate
//   - Literal: a constant (Literal[C](true) is the catch-all clause)
//   - Compare: ordered comparison of two projections of the input
//   - And / Or: lazy combination, short-circuiting left to right
//
// Or is also how a clause with several independent guard alternatives
// is expressed: the clause matches if any alternative holds.
//
// Guards may return an error. A failing guard is a caller bug, not a
// non-match: dispatch aborts with *GuardEvaluationError instead of
// falling through to the next clause.
//
// # Short-Circuit Combinators
//
// EvaluateOr and EvaluateAnd are the leaf primitive underneath And/Or
// and usable on their own. They take deferred boolean thunks, evaluate
// left to right, stop at the first decisive value, and report which
// thunk decided:
//
//	ok, idx, err := firstmatch.EvaluateOr(
//	    func() (bool, error) { return false, nil },
//	    func() (bool, error) { return true, nil },
//	    func() (bool, error) { panic("never reached") },
//	)
//
// # Match Chains
//
// A Chain runs ordered produce/compare steps and commits to a final
// body only if every produced value matches its expected pattern.
// Wildcards always match; Bind additionally captures the value for
// later steps and the body. A literal mismatch is not an error — the
// chain stops and the mismatching step's produced value becomes the
// result:
//
//	res := firstmatch.Chain{
//	    Steps: []firstmatch.Step{
//	        {Produce: func(firstmatch.Bindings) any { return lookup() }, Expect: firstmatch.Exactly("ok")},
//	        {Produce: func(firstmatch.Bindings) any { return load() }, Expect: firstmatch.Bind("user")},
//	    },
//	    Body: func(b firstmatch.Bindings) any { return b["user"] },
//	}.Run()
//
//	if !res.Matched {
//	    // res.Step is the failing step, res.Value what it produced
//	}
//
// # Literal Tag Registry
//
// Registry maps a tag name plus an exact modifier flag set to a handler
// that transforms a raw text body into a value. Variants of one tag
// differ by flag set; lookup is itself a guarded dispatch over the
// variants, most recent registration first, so re-registering an
// identical (tag, flags) pair shadows the earlier handler (last wins):
//
//	reg := firstmatch.NewRegistry()
//	reg.Register("l", firstmatch.Flags(""), func(body string, _ firstmatch.FlagSet) (any, error) {
//	    return strings.ToLower(body), nil
//	})
//
//	v, err := reg.Compile("l", "HELLO", firstmatch.Flags(""))
//
// Misses are recoverable values: *UnknownTagError when the tag was
// never registered, *NoFlagVariantError when no variant's flag set
// equals the supplied one.
//
// # Key Paths
//
// Resolve walks nested map[string]any / []any structures by an ordered
// path of Field and Index keys; ResolveJSON does the same over raw JSON
// bytes via gjson without decoding the document. Both are pure lookups:
// anything missing, mistyped, or out of range is (nil, false), never an
// error.
//
// # Multiset Subtraction
//
// Subtract removes, for each element of one sequence, a single matching
// occurrence from another, preserving the remaining order and
// multiplicity.
//
// # Hooks
//
// Dispatchers and registries take functional options that attach
// observability hooks (WithOnMatch, WithOnNoMatch, WithOnGuardError,
// WithOnHandled, WithOnShadow, WithOnCompileMiss). The package owns no
// logging or formatting; hooks are the only diagnostic surface.
//
// # Errors
//
// Lookup misses and chain mismatches are ordinary return values.
// Guards and handlers propagate their own errors unwrapped except for
// *GuardEvaluationError, which marks the failure as a guard bug and
// supports errors.Unwrap. Malformed construction — nil handlers, nil
// guards, nil chain producers, an unknown Compare operator, an empty
// registry tag — panics at the call site.
//
// # Thread Safety
//
// Everything except Registry is pure and safe for concurrent use.
// Dispatcher is safe for concurrent Dispatch calls after configuration;
// do not call When after dispatching has begun. Registry supports
// concurrent Register and Compile at any time: registration takes an
// exclusive lock and compiles read a snapshot.
package firstmatch
