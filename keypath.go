package firstmatch

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// PathKey is one step of a key path: either a field name for
// associative containers or an index for sequential containers.
// Construct with Field or Index.
type PathKey struct {
	name    string
	index   int
	isIndex bool
}

// Field returns a PathKey that looks up name in a map.
func Field(name string) PathKey {
	return PathKey{name: name}
}

// Index returns a PathKey that looks up position i in a slice.
func Index(i int) PathKey {
	return PathKey{index: i, isIndex: true}
}

// String renders the key for diagnostics: field names as-is, indexes
// in brackets.
func (k PathKey) String() string {
	if k.isIndex {
		return "[" + strconv.Itoa(k.index) + "]"
	}
	return k.name
}

// Resolve walks a nested structure of map[string]any and []any (the
// shapes encoding/json produces) one key at a time and returns the
// value at the end of the path.
//
// Resolve is a pure lookup, not a validating accessor: a missing key,
// an out-of-range index, a key-kind mismatch, or a non-container value
// encountered before the path is exhausted all yield (nil, false),
// never an error. An empty path returns the root itself.
func Resolve(structure any, path ...PathKey) (any, bool) {
	cur := structure
	for _, k := range path {
		switch c := cur.(type) {
		case map[string]any:
			if k.isIndex {
				return nil, false
			}
			v, ok := c[k.name]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !k.isIndex || k.index < 0 || k.index >= len(c) {
				return nil, false
			}
			cur = c[k.index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// ResolveJSON resolves a key path against raw JSON bytes without
// decoding the whole document, using the same not-found semantics as
// Resolve. Invalid JSON is simply not found.
//
// Scalar values decode to gjson's conventions: numbers as float64,
// strings as string, objects and arrays as map[string]any and []any.
func ResolveJSON(raw []byte, path ...PathKey) (any, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	if len(path) == 0 {
		return gjson.ParseBytes(raw).Value(), true
	}
	r := gjson.GetBytes(raw, gjsonPath(path))
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

// gjsonPath joins path keys into gjson syntax, escaping field name
// characters gjson treats specially.
func gjsonPath(path []PathKey) string {
	var b strings.Builder
	for i, k := range path {
		if i > 0 {
			b.WriteByte('.')
		}
		if k.isIndex {
			b.WriteString(strconv.Itoa(k.index))
			continue
		}
		for _, r := range k.name {
			switch r {
			case '.', '*', '?', '\\', '|', '#', '@':
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
