// Package aset provides the small ordered-set and worklist primitives that
// the automaton package's fixed-point algorithms (ε-closure, reachability,
// subset construction) are built on. It exists so that those algorithms
// read as "step over an immutable workset" rather than as ad-hoc loops over
// maps with deletion-during-iteration hazards.
package aset

import "sort"

// Set is a set of strings. The zero value is an empty, usable set.
type Set map[string]struct{}

// New returns a new Set containing the given elements.
func New(elements ...string) Set {
	s := make(Set, len(elements))
	for _, e := range elements {
		s[e] = struct{}{}
	}
	return s
}

// Add adds element to s. Has no effect if it is already present.
func (s Set) Add(element string) {
	s[element] = struct{}{}
}

// AddAll adds every element of o to s.
func (s Set) AddAll(o Set) {
	for e := range o {
		s[e] = struct{}{}
	}
}

// Has returns whether element is in s.
func (s Set) Has(element string) bool {
	_, ok := s[element]
	return ok
}

// Len returns the number of elements in s.
func (s Set) Len() int {
	return len(s)
}

// Empty returns whether s has no elements.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow duplicate of s.
func (s Set) Copy() Set {
	newS := make(Set, len(s))
	for e := range s {
		newS[e] = struct{}{}
	}
	return newS
}

// Union returns a new Set containing every element of s or o.
func (s Set) Union(o Set) Set {
	newS := s.Copy()
	newS.AddAll(o)
	return newS
}

// Intersect returns a new Set containing only elements present in both s and o.
func (s Set) Intersect(o Set) Set {
	newS := make(Set)
	for e := range s {
		if o.Has(e) {
			newS.Add(e)
		}
	}
	return newS
}

// Difference returns a new Set containing elements of s that are not in o.
func (s Set) Difference(o Set) Set {
	newS := make(Set)
	for e := range s {
		if !o.Has(e) {
			newS.Add(e)
		}
	}
	return newS
}

// Any returns whether at least one element of s satisfies predicate.
func (s Set) Any(predicate func(string) bool) bool {
	for e := range s {
		if predicate(e) {
			return true
		}
	}
	return false
}

// Elements returns the elements of s sorted lexicographically. Every caller
// that must produce deterministic output (reachability pruning, subset
// construction, serialization) iterates sets through Elements rather than
// ranging over the map directly.
func (s Set) Elements() []string {
	elems := make([]string, 0, len(s))
	for e := range s {
		elems = append(elems, e)
	}
	sort.Strings(elems)
	return elems
}

// Key returns a canonical string identifying the contents of s, suitable for
// use as a map key when a whole set must stand in as a single discovered
// state (as subset construction does). Two sets with the same elements
// always produce the same Key regardless of insertion order.
func (s Set) Key() string {
	elems := s.Elements()
	var out string
	for i, e := range elems {
		if i > 0 {
			out += "\x1f"
		}
		out += e
	}
	return out
}
