package util

import (
	"sort"
	"strings"
)

// StringSet is a set of strings with deterministic, alphabetized
// iteration via Alphabetized/StringOrdered. The zero value is a nil map
// and behaves as an empty, read-only set; use NewStringSet to get one
// that can be mutated.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from the
// given string slices.
func NewStringSet(of ...[]string) StringSet {
	s := StringSet{}
	for _, sl := range of {
		for _, v := range sl {
			s.Add(v)
		}
	}
	return s
}

// StringSetOf returns a StringSet containing exactly the given elements.
func StringSetOf(sl []string) StringSet {
	return NewStringSet(sl)
}

// Add adds v to the set. No-op if v is already present.
func (s StringSet) Add(v string) { s[v] = true }

// Remove removes v from the set. No-op if v is not present.
func (s StringSet) Remove(v string) { delete(s, v) }

// Has returns whether v is in the set.
func (s StringSet) Has(v string) bool { return s[v] }

// Len returns the number of elements in the set.
func (s StringSet) Len() int { return len(s) }

// Empty returns whether the set has no elements.
func (s StringSet) Empty() bool { return len(s) == 0 }

// AddAll adds every element of o to s.
func (s StringSet) AddAll(o StringSet) {
	for v := range o {
		s.Add(v)
	}
}

// Copy returns a shallow duplicate of s.
func (s StringSet) Copy() StringSet {
	newS := NewStringSet()
	newS.AddAll(s)
	return newS
}

// Union returns a new set containing every element of s or o.
func (s StringSet) Union(o StringSet) StringSet {
	newS := s.Copy()
	newS.AddAll(o)
	return newS
}

// Intersection returns a new set containing every element in both s and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	newS := NewStringSet()
	for v := range s {
		if o.Has(v) {
			newS.Add(v)
		}
	}
	return newS
}

// Difference returns a new set containing every element of s not in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newS := s.Copy()
	for v := range o {
		newS.Remove(v)
	}
	return newS
}

// Equal returns whether s and o contain exactly the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// Elements returns the set's members in unspecified order.
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for v := range s {
		elems = append(elems, v)
	}
	return elems
}

// Alphabetized returns the set's members sorted lexically.
func (s StringSet) Alphabetized() []string {
	elems := s.Elements()
	sort.Strings(elems)
	return elems
}

// StringOrdered renders the set's contents alphabetized and braced, for
// use as a deterministic cache key or in diagnostics.
func (s StringSet) StringOrdered() string {
	return "{" + strings.Join(s.Alphabetized(), ", ") + "}"
}

// OrderedKeys returns the keys of m, alphabetized. Mostly useful in
// tests that build an expected set as a plain map literal.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Alphabetized sorts a copy of sl and returns it.
func Alphabetized[E ~string](sl []E) []E {
	out := make([]E, len(sl))
	copy(out, sl)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
