package firstmatch

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

// FlagSet is a normalized set of single-character modifier flags for a
// literal tag. Construct one with Flags; the zero value is the empty
// set. FlagSet is a value type and safe to copy and compare.
type FlagSet struct {
	set string // unique runes, sorted
}

// Flags builds a FlagSet from the characters of s. Duplicates collapse
// and order is irrelevant: Flags("lc") equals Flags("ccl").
func Flags(s string) FlagSet {
	if s == "" {
		return FlagSet{}
	}
	runes := []rune(s)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	out := runes[:0]
	var prev rune
	for i, r := range runes {
		if i > 0 && r == prev {
			continue
		}
		out = append(out, r)
		prev = r
	}
	return FlagSet{set: string(out)}
}

// Has reports whether the flag r is in the set.
func (f FlagSet) Has(r rune) bool {
	for _, c := range f.set {
		if c == r {
			return true
		}
	}
	return false
}

// Equal reports exact set equality. Registry lookup uses Equal, not
// subset containment: an entry registered for flags "l" does not
// handle a compile call with flags "lc".
func (f FlagSet) Equal(o FlagSet) bool { return f.set == o.set }

// Len reports the number of flags in the set.
func (f FlagSet) Len() int { return utf8.RuneCountInString(f.set) }

// String returns the flags in normalized order.
func (f FlagSet) String() string { return f.set }

// TagHandler transforms the raw body of a literal tag into a value.
// The flag set the caller supplied is passed through for handlers that
// vary behavior within one registered variant.
type TagHandler func(body string, flags FlagSet) (any, error)

// tagEntry is one registered (flags, handler) variant of a tag.
type tagEntry struct {
	flags   FlagSet
	handler TagHandler
}

// Registry maps literal tag names and modifier flag sets to handler
// functions. Entries are appended at registration and never removed;
// registering an identical (tag, flags) pair again shadows the earlier
// entry rather than replacing it, so the last registration wins. This
// is deliberate: shadowing is explicit and observable (WithOnShadow)
// instead of a silent overwrite or a hard rejection.
//
// Registration is expected during an initialization phase. Concurrent
// registration is nevertheless safe: Register takes an exclusive lock
// and Compile reads a snapshot, so in-flight appends never race with
// lookups.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]tagEntry
	hooks   registryHooks
}

// registryHooks holds configured registry hook functions.
type registryHooks struct {
	onShadow      []OnShadowFunc
	onCompileMiss []OnCompileMissFunc
}

// OnShadowFunc is called when a registration shadows an earlier entry
// with the identical tag and flag set.
type OnShadowFunc func(tag string, flags FlagSet)

// OnCompileMissFunc is called when Compile fails to find a handler,
// with the lookup error (*UnknownTagError or *NoFlagVariantError).
type OnCompileMissFunc func(tag string, flags FlagSet, err error)

// RegistryOption configures registry hooks.
type RegistryOption func(*registryHooks)

// WithOnShadow adds a hook called when a registration shadows an
// earlier identical (tag, flags) entry. Multiple hooks are called in
// order.
//
// Example:
//
//	firstmatch.WithOnShadow(func(tag string, flags firstmatch.FlagSet) {
//	    logger.Warn("tag variant shadowed", "tag", tag, "flags", flags)
//	})
func WithOnShadow(fn OnShadowFunc) RegistryOption {
	return func(h *registryHooks) {
		h.onShadow = append(h.onShadow, fn)
	}
}

// WithOnCompileMiss adds a hook called when Compile misses. Multiple
// hooks are called in order.
func WithOnCompileMiss(fn OnCompileMissFunc) RegistryOption {
	return func(h *registryHooks) {
		h.onCompileMiss = append(h.onCompileMiss, fn)
	}
}

// NewRegistry creates an empty Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{entries: make(map[string][]tagEntry)}
	for _, opt := range opts {
		opt(&r.hooks)
	}
	return r
}

// Register appends a handler for the (tag, flags) variant. Later
// registrations with an identical tag and flag set shadow earlier ones
// for lookup; earlier entries are kept, never removed.
//
// An empty tag or nil handler is a programmer error and panics.
func (r *Registry) Register(tag string, flags FlagSet, h TagHandler) {
	if tag == "" {
		panic("firstmatch: Register requires a non-empty tag")
	}
	if h == nil {
		panic(fmt.Sprintf("firstmatch: Register(%q) requires a non-nil handler", tag))
	}

	r.mu.Lock()
	shadowed := false
	for _, e := range r.entries[tag] {
		if e.flags.Equal(flags) {
			shadowed = true
			break
		}
	}
	r.entries[tag] = append(r.entries[tag], tagEntry{flags: flags, handler: h})
	r.mu.Unlock()

	if shadowed {
		for _, fn := range r.hooks.onShadow {
			fn(tag, flags)
		}
	}
}

// Compile looks up the handler registered for (tag, flags) and applies
// it to body. The flag set must equal a registered variant exactly.
//
// Lookup dispatches over the tag's entries in reverse registration
// order, so the most recent registration for a flag set wins.
//
// Compile returns *UnknownTagError if the tag was never registered,
// and *NoFlagVariantError if the tag exists but no variant's flag set
// equals flags. Both are ordinary recoverable lookup misses.
func (r *Registry) Compile(tag, body string, flags FlagSet) (any, error) {
	r.mu.RLock()
	entries := r.entries[tag]
	r.mu.RUnlock()

	if len(entries) == 0 {
		err := &UnknownTagError{Tag: tag}
		r.compileMiss(tag, flags, err)
		return nil, err
	}

	clauses := make([]Clause[FlagSet, any], 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		clauses = append(clauses, NewClauseFunc(
			GuardFunc[FlagSet](func(fs FlagSet) (bool, error) {
				return fs.Equal(e.flags), nil
			}),
			func(fs FlagSet) (any, error) {
				return e.handler(body, fs)
			},
		))
	}

	v, err := Dispatch(clauses, flags)
	var miss *NoClauseMatchedError
	if errors.As(err, &miss) {
		verr := &NoFlagVariantError{Tag: tag, Flags: flags}
		r.compileMiss(tag, flags, verr)
		return nil, verr
	}
	return v, err
}

func (r *Registry) compileMiss(tag string, flags FlagSet, err error) {
	for _, fn := range r.hooks.onCompileMiss {
		fn(tag, flags, err)
	}
}

// Tags returns the registered tag names in sorted order. Useful for
// startup discovery of available literal tags.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	r.mu.RUnlock()
	sort.Strings(tags)
	return tags
}

// Variants returns the effective flag-set variants of a tag, shadowed
// duplicates resolved, most recently registered first. A nil result
// means the tag is unknown.
func (r *Registry) Variants(tag string) []FlagSet {
	r.mu.RLock()
	entries := r.entries[tag]
	r.mu.RUnlock()

	var out []FlagSet
	for i := len(entries) - 1; i >= 0; i-- {
		dup := false
		for _, seen := range out {
			if seen.Equal(entries[i].flags) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, entries[i].flags)
		}
	}
	return out
}

// UnknownTagError reports a Compile call for a tag that was never
// registered.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown literal tag %q", e.Tag)
}

// NoFlagVariantError reports a Compile call for a known tag with a
// flag set no registered variant equals.
type NoFlagVariantError struct {
	Tag   string
	Flags FlagSet
}

func (e *NoFlagVariantError) Error() string {
	return fmt.Sprintf("literal tag %q has no variant for flags %q", e.Tag, e.Flags)
}
