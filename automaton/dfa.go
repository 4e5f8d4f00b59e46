package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halvard/automata/internal/aset"
)

// DFA is a deterministic finite automaton (Σ, Q, q0, δ, F). The zero value
// is not a valid DFA; build one with CreateDFA.
type DFA struct {
	start State
	// states holds every state in Q, including ones with no outbound
	// transitions at all.
	states map[State]dfaState
}

type dfaState struct {
	accepting bool
	trans     map[Symbol]State
}

func (s dfaState) copy() dfaState {
	newTrans := make(map[Symbol]State, len(s.trans))
	for a, q := range s.trans {
		newTrans[a] = q
	}
	return dfaState{accepting: s.accepting, trans: newTrans}
}

// CreateDFA builds a DFA from an initial state, a (possibly partial)
// transition function δ, and a set of accepting states F. Q is computed as
// {start} ∪ F ∪ every state mentioned as a transition source or target; Σ is
// computed as the set of symbols appearing as a transition's second
// coordinate. CreateDFA fails with ErrInvalidAlphabet if Epsilon appears as
// a transition symbol.
func CreateDFA(start State, delta map[State]map[Symbol]State, final []State) (DFA, error) {
	dfa := DFA{start: start, states: map[State]dfaState{}}

	ensure := func(q State) {
		if _, ok := dfa.states[q]; !ok {
			dfa.states[q] = dfaState{trans: map[Symbol]State{}}
		}
	}

	ensure(start)
	for _, f := range final {
		ensure(f)
		st := dfa.states[f]
		st.accepting = true
		dfa.states[f] = st
	}

	for from, row := range delta {
		ensure(from)
		for a, to := range row {
			if a == Epsilon {
				return DFA{}, newError(fmt.Sprintf("transition from %q uses epsilon as a symbol", from), ErrInvalidAlphabet)
			}
			ensure(to)
			st := dfa.states[from]
			st.trans[a] = to
			dfa.states[from] = st
		}
	}

	return dfa, nil
}

// Copy returns an independent duplicate of dfa; mutating the copy's
// transitions (through the unexported fields, internal to this package)
// never affects dfa.
func (dfa DFA) Copy() DFA {
	newStates := make(map[State]dfaState, len(dfa.states))
	for q, st := range dfa.states {
		newStates[q] = st.copy()
	}
	return DFA{start: dfa.start, states: newStates}
}

// Start returns the initial state q0.
func (dfa DFA) Start() State {
	return dfa.start
}

// States returns Q, sorted for reproducible iteration.
func (dfa DFA) States() []State {
	out := make([]State, 0, len(dfa.states))
	for q := range dfa.states {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// Alphabet returns Σ, sorted for reproducible iteration.
func (dfa DFA) Alphabet() []Symbol {
	seen := aset.New()
	for _, st := range dfa.states {
		for a := range st.trans {
			seen.Add(a)
		}
	}
	return seen.Elements()
}

// IsAccepting returns whether q is in F. Returns false if q is not in Q.
func (dfa DFA) IsAccepting(q State) bool {
	st, ok := dfa.states[q]
	return ok && st.accepting
}

// Final returns F, sorted for reproducible iteration.
func (dfa DFA) Final() []State {
	out := []State{}
	for q, st := range dfa.states {
		if st.accepting {
			out = append(out, q)
		}
	}
	sort.Strings(out)
	return out
}

// Step returns δ(q, a) and whether it is defined. A false second value means
// "no transition defined", not an error.
func (dfa DFA) Step(q State, a Symbol) (State, bool) {
	st, ok := dfa.states[q]
	if !ok {
		return "", false
	}
	to, ok := st.trans[a]
	return to, ok
}

// Accept reports whether dfa accepts word. It consumes symbols left to
// right; if any step is undefined it rejects immediately rather than
// treating the missing transition as an error, per the partial-DFA "dead
// state" reading.
func (dfa DFA) Accept(word []Symbol) bool {
	q := dfa.start
	for _, a := range word {
		next, ok := dfa.Step(q, a)
		if !ok {
			return false
		}
		q = next
	}
	return dfa.IsAccepting(q)
}

// IsComplete returns whether δ is total over Q × Σ.
func (dfa DFA) IsComplete() bool {
	alphabet := dfa.Alphabet()
	for _, st := range dfa.states {
		for _, a := range alphabet {
			if _, ok := st.trans[a]; !ok {
				return false
			}
		}
	}
	return true
}

// errorSinkName returns a state label guaranteed to be absent from dfa.states,
// preferring want if it is non-empty and not already taken.
func errorSinkName(states map[State]dfaState, want State) State {
	name := want
	if name == "" {
		name = "qerr"
	}
	for {
		if _, taken := states[name]; !taken {
			return name
		}
		name += "_"
	}
}

// Complete returns a DFA whose δ is total. If dfa is already complete,
// returns a value equal to dfa. Otherwise a fresh, non-accepting error sink
// named "qerr" (with "_" appended as often as needed if that name is already
// a state) is introduced, every undefined (q, a) is routed to it, and the
// sink loops to itself on every symbol. Complete is idempotent.
func (dfa DFA) Complete() DFA {
	return dfa.CompleteNamed("")
}

// CompleteNamed behaves like Complete, but names the introduced error sink
// sink instead of the default "qerr", falling back to the default if sink is
// empty. If the chosen name is already a state, "_" is appended until it is
// not. It exists for callers that want a specific, readable sink name in
// output rather than the default.
func (dfa DFA) CompleteNamed(sink State) DFA {
	if dfa.IsComplete() {
		return dfa.Copy()
	}

	alphabet := dfa.Alphabet()
	sinkName := errorSinkName(dfa.states, sink)

	out := dfa.Copy()
	out.states[sinkName] = dfaState{trans: map[Symbol]State{}}
	for _, a := range alphabet {
		out.states[sinkName].trans[a] = sinkName
	}

	for q, st := range out.states {
		if q == sinkName {
			continue
		}
		for _, a := range alphabet {
			if _, ok := st.trans[a]; !ok {
				st.trans[a] = sinkName
			}
		}
		out.states[q] = st
	}

	return out
}

// Complement returns ¬dfa: a DFA over the same (completed) shape whose
// accepting states are exactly Q \ F.
func (dfa DFA) Complement() DFA {
	completed := dfa.Complete()
	out := completed.Copy()
	for q, st := range out.states {
		st.accepting = !st.accepting
		out.states[q] = st
	}
	return out
}

// RemoveUnreachable returns a DFA restricted to the states reachable from q0
// by following δ, discovered by BFS. L(result) = L(dfa). Idempotent:
// dfa.RemoveUnreachable().RemoveUnreachable() equals dfa.RemoveUnreachable().
func (dfa DFA) RemoveUnreachable() DFA {
	reachable := aset.New(dfa.start)
	var queue aset.Queue
	queue.Push(dfa.start)

	for queue.Len() > 0 {
		q := queue.Pop()
		st := dfa.states[q]
		for _, a := range sortedSymbols(st.trans) {
			to := st.trans[a]
			if !reachable.Has(to) {
				reachable.Add(to)
				queue.Push(to)
			}
		}
	}

	out := DFA{start: dfa.start, states: map[State]dfaState{}}
	for _, q := range reachable.Elements() {
		out.states[q] = dfa.states[q].copy()
	}
	return out
}

// sortedSymbols returns the keys of a transition row in deterministic order.
func sortedSymbols(trans map[Symbol]State) []Symbol {
	out := make([]Symbol, 0, len(trans))
	for a := range trans {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Minimize runs the full minimization pipeline: RemoveUnreachable, then
// Complete, then equivalence-class partition refinement
// (MergeNondistinguishable), then Complete. Completing before refinement
// lets the error sink merge with any states that were already dead ends, so
// all of them survive minimization as a single class.
// L(dfa.Minimize()) = L(dfa), and dfa.Minimize() has the fewest states of
// any complete DFA over the same alphabet accepting that language.
func (dfa DFA) Minimize() DFA {
	return dfa.RemoveUnreachable().Complete().MergeNondistinguishable().Complete()
}

// MergeNondistinguishable implements Moore's partition-refinement algorithm:
// states are grouped into F and Q\F, then classes are repeatedly split until
// every two states remaining in the same class agree, for every symbol, on
// which class their transition target belongs to. The quotient automaton's
// states are the resulting classes, named by a stable enumeration (classes
// sorted by their minimum member under string order) so output is
// reproducible given the same input.
func (dfa DFA) MergeNondistinguishable() DFA {
	states := dfa.States()
	alphabet := dfa.Alphabet()

	var finalClass, nonFinalClass []State
	for _, q := range states {
		if dfa.IsAccepting(q) {
			finalClass = append(finalClass, q)
		} else {
			nonFinalClass = append(nonFinalClass, q)
		}
	}

	classes := [][]State{}
	if len(finalClass) > 0 {
		classes = append(classes, finalClass)
	}
	if len(nonFinalClass) > 0 {
		classes = append(classes, nonFinalClass)
	}

	classOf := map[State]int{}
	reindex := func() {
		classOf = map[State]int{}
		for i, c := range classes {
			for _, q := range c {
				classOf[q] = i
			}
		}
	}
	reindex()

	changed := true
	for changed {
		changed = false
		var next [][]State

		for _, class := range classes {
			groups := map[string][]State{}
			var order []string

			for _, q := range class {
				sig := signature(dfa, classOf, q, alphabet)
				if _, seen := groups[sig]; !seen {
					order = append(order, sig)
				}
				groups[sig] = append(groups[sig], q)
			}

			if len(groups) > 1 {
				changed = true
			}

			sort.Strings(order)
			for _, sig := range order {
				next = append(next, groups[sig])
			}
		}

		classes = next
		reindex()
	}

	// Canonical, deterministic numbering: sort classes by their minimum
	// member under string order, then number sequentially.
	sort.Slice(classes, func(i, j int) bool {
		return minString(classes[i]) < minString(classes[j])
	})

	quotient := DFA{states: map[State]dfaState{}}
	nameOf := make([]State, len(classes))
	for i := range classes {
		nameOf[i] = fmt.Sprintf("%d", i)
	}
	reindex()

	for i, class := range classes {
		name := nameOf[i]
		accepting := false
		for _, q := range class {
			if dfa.IsAccepting(q) {
				accepting = true
				break
			}
		}

		rep := class[0]
		trans := map[Symbol]State{}
		for _, a := range alphabet {
			if to, ok := dfa.Step(rep, a); ok {
				trans[a] = nameOf[classOf[to]]
			}
		}

		quotient.states[name] = dfaState{accepting: accepting, trans: trans}
	}
	quotient.start = nameOf[classOf[dfa.start]]

	return quotient
}

// signature encodes, for state q, which class each symbol's transition
// target belongs to (or a sentinel if undefined), so states in the same
// class that agree on every symbol produce identical signatures.
func signature(dfa DFA, classOf map[State]int, q State, alphabet []Symbol) string {
	var sb strings.Builder
	for _, a := range alphabet {
		to, ok := dfa.Step(q, a)
		if !ok {
			sb.WriteString("-1")
		} else {
			fmt.Fprintf(&sb, "%d", classOf[to])
		}
		sb.WriteByte(',')
	}
	return sb.String()
}

func minString(ss []State) State {
	m := ss[0]
	for _, s := range ss[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

// Equivalent reports whether a and b accept the same language, decided by
// building the symmetric-difference automaton (a − b) ∪ (b − a) and checking
// that it has no reachable accepting state.
func Equivalent(a, b DFA) bool {
	symDiff := Union(Difference(a, b), Difference(b, a))
	reachable := symDiff.RemoveUnreachable()
	return len(reachable.Final()) == 0
}

// Validate reports ErrInvalidAutomaton if dfa's internal invariants don't
// hold: every transition must reference a state in Q, and the start state
// must be in Q. CreateDFA and every transform in this package always
// produce a DFA that passes Validate; it exists for automata built from an
// untrusted source (principally Load).
func (dfa DFA) Validate() error {
	if _, ok := dfa.states[dfa.start]; !ok {
		return newError(fmt.Sprintf("start state %q is not in Q", dfa.start), ErrInvalidAutomaton)
	}
	for q, st := range dfa.states {
		for a, to := range st.trans {
			if a == Epsilon {
				return newError(fmt.Sprintf("state %q has an epsilon transition", q), ErrInvalidAlphabet)
			}
			if _, ok := dfa.states[to]; !ok {
				return newError(fmt.Sprintf("state %q transitions to %q, which is not in Q", q, to), ErrInvalidAutomaton)
			}
		}
	}
	return nil
}

// NumberStates returns a DFA identical to dfa up to state renaming, with
// every state replaced by a sequential numeric label starting from "0" for
// the start state and proceeding in sorted order of the original labels.
// Used to canonicalize automata produced by the combinators' suffix-tagging
// scheme into an opaque, deterministic namespace.
func (dfa DFA) NumberStates() DFA {
	orig := dfa.States()
	order := make([]State, 0, len(orig))
	order = append(order, dfa.start)
	for _, q := range orig {
		if q != dfa.start {
			order = append(order, q)
		}
	}

	names := map[State]State{}
	for i, q := range order {
		names[q] = fmt.Sprintf("%d", i)
	}

	out := DFA{start: names[dfa.start], states: map[State]dfaState{}}
	for _, q := range order {
		st := dfa.states[q]
		trans := map[Symbol]State{}
		for a, to := range st.trans {
			trans[a] = names[to]
		}
		out.states[names[q]] = dfaState{accepting: st.accepting, trans: trans}
	}
	return out
}

// String renders dfa for debugging and golden-fixture tests, in the form
// <START: "q0", STATES: (q [=(a)=> q', ...]), ...>. Accepting states are
// parenthesized an extra time.
func (dfa DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<START: %q, STATES:", dfa.start)

	states := dfa.States()
	for i, q := range states {
		sb.WriteString("\n\t")
		sb.WriteString(dfaStateString(q, dfa.states[q]))
		if i+1 < len(states) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}

func dfaStateString(name State, st dfaState) string {
	var moves strings.Builder
	symbols := sortedSymbols(st.trans)
	for i, a := range symbols {
		fmt.Fprintf(&moves, "=(%s)=> %s", a, st.trans[a])
		if i+1 < len(symbols) {
			moves.WriteString(", ")
		}
	}
	str := fmt.Sprintf("(%s [%s])", name, moves.String())
	if st.accepting {
		str = "(" + str + ")"
	}
	return str
}
