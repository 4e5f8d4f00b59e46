// Package automaton implements deterministic and nondeterministic finite
// automata over finite alphabets: construction, the regular-language
// combinators (union, intersection, concatenation, complement, difference),
// subset construction, ε-elimination, Hopcroft/Moore-style minimization, and
// a portable serialization format.
//
// Automata are immutable values. Every transform documented on DFA or NFA
// returns a new value; none mutates its receiver or its arguments. There is
// no shared mutable state, so independent automata may be operated on
// concurrently from multiple goroutines with no synchronization.
package automaton

// Symbol is an element of a finite alphabet Σ, or the reserved sentinel
// Epsilon when it labels an NFA ε-transition. Symbols are opaque tokens:
// this package does no Unicode- or locale-aware comparison, only raw string
// equality.
type Symbol = string

// State is an opaque label identifying a state within one automaton. States
// are compared by equality only; they carry no other semantics.
type State = string

// Epsilon is the reserved symbol denoting the empty string. It is never a
// member of an automaton's alphabet; it appears only as an NFA transition
// label. The external (serialized) encoding represents it as the literal
// "&", per the wire format; internally it is the empty string, the same
// sentinel an absent map key would produce, which is why NFA transition
// tables index ε-moves under "".
const Epsilon Symbol = ""
