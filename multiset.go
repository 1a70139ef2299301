package firstmatch

// Subtract computes the ordered bag difference of base and removals:
// for each element of removals, one still-present occurrence is removed
// from base. Removal elements with no remaining occurrence are ignored.
// Surviving elements keep their relative order from base.
//
// Multiplicity counts: Subtract([1,2,3,4,1], [1,1]) removes two
// separate occurrences of 1 and yields [2,3,4], while a single [1]
// removal yields [2,3,4,1].
//
// Subtract never mutates its inputs; the result is always a fresh
// slice, so subtracting an empty removals sequence is a copy.
func Subtract[T comparable](base, removals []T) []T {
	pending := make(map[T]int, len(removals))
	for _, r := range removals {
		pending[r]++
	}

	out := make([]T, 0, len(base))
	for _, v := range base {
		if pending[v] > 0 {
			pending[v]--
			continue
		}
		out = append(out, v)
	}
	return out
}
