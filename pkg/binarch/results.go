package binarch

import (
	"maps"
	"slices"

	"github.com/WorksButNotTested/binarch2/pkg/signature"
)

// MatchSet is a set of absolute byte offsets at which a pattern occurrence
// starts.
type MatchSet map[int]struct{}

// Add records off.
func (m MatchSet) Add(off int) { m[off] = struct{}{} }

// Contains reports whether off was recorded.
func (m MatchSet) Contains(off int) bool {
	_, ok := m[off]
	return ok
}

// Len returns the number of distinct offsets.
func (m MatchSet) Len() int { return len(m) }

// Union adds every offset of o to m.
func (m MatchSet) Union(o MatchSet) {
	for off := range o {
		m[off] = struct{}{}
	}
}

// Sorted returns the offsets in ascending order.
func (m MatchSet) Sorted() []int {
	return slices.Sorted(maps.Keys(m))
}

// Results maps every kind that gathered evidence to the offsets that voted
// for it.
type Results map[signature.Kind]MatchSet

// Add records a match for k at off.
func (r Results) Add(k signature.Kind, off int) {
	set, ok := r[k]
	if !ok {
		set = make(MatchSet)
		r[k] = set
	}
	set.Add(off)
}

// Count returns the number of distinct offsets recorded for k.
func (r Results) Count(k signature.Kind) int {
	return r[k].Len()
}

// Total returns the number of offsets across all kinds.
func (r Results) Total() int {
	var n int
	for _, set := range r {
		n += set.Len()
	}
	return n
}

// Clone returns a deep copy of r.
func (r Results) Clone() Results {
	out := make(Results, len(r))
	for k, set := range r {
		out[k] = maps.Clone(set)
	}
	return out
}

// Equal reports whether r and o hold the same offsets for every kind. A kind
// mapped to an empty set is the same as an absent kind.
func (r Results) Equal(o Results) bool {
	for k, set := range r {
		if !maps.Equal(set, o[k]) {
			return false
		}
	}
	for k, set := range o {
		if _, ok := r[k]; !ok && set.Len() > 0 {
			return false
		}
	}
	return true
}

// Merge folds b into a and returns a. A nil a yields a fresh map. Merge is
// associative and commutative with the empty Results as identity; b is left
// untouched.
func Merge(a, b Results) Results {
	if a == nil {
		a = make(Results, len(b))
	}
	for k, set := range b {
		dst, ok := a[k]
		if !ok {
			dst = make(MatchSet, len(set))
			a[k] = dst
		}
		dst.Union(set)
	}
	return a
}

// Entry is one row of a ranked result.
type Entry struct {
	Kind    signature.Kind
	Count   int
	Offsets MatchSet
}

// Ranked returns the non-empty entries of r ordered by match count, most
// first. Ties are broken by kind order, so the first entry is always the
// classifier's winner.
func (r Results) Ranked() []Entry {
	entries := make([]Entry, 0, len(r))
	for k, set := range r {
		if set.Len() == 0 {
			continue
		}
		entries = append(entries, Entry{Kind: k, Count: set.Len(), Offsets: set})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return a.Kind.Compare(b.Kind)
	})
	return entries
}
