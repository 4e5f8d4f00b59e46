package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halvard/automata/internal/aset"
)

// NFA is a nondeterministic finite automaton with ε-moves (Σ, Q, q0, Δ, F).
// The zero value is not a valid NFA; build one with CreateNFA.
type NFA struct {
	start State
	states map[State]nfaState
}

type nfaState struct {
	accepting bool
	// trans maps a symbol (or Epsilon) to the set of states it leads to.
	// Rows with an empty target set are never stored, matching "keys with
	// empty value set are dropped on creation."
	trans map[Symbol]aset.Set
}

func (s nfaState) copy() nfaState {
	newTrans := make(map[Symbol]aset.Set, len(s.trans))
	for a, targets := range s.trans {
		newTrans[a] = targets.Copy()
	}
	return nfaState{accepting: s.accepting, trans: newTrans}
}

// CreateNFA builds an NFA from an initial state, a transition relation Δ
// (including, optionally, entries under Epsilon for ε-moves), and a set of
// accepting states F. Q and Σ are derived the same way as CreateDFA's,
// except Σ excludes Epsilon.
func CreateNFA(start State, delta map[State]map[Symbol][]State, final []State) NFA {
	nfa := NFA{start: start, states: map[State]nfaState{}}

	ensure := func(q State) {
		if _, ok := nfa.states[q]; !ok {
			nfa.states[q] = nfaState{trans: map[Symbol]aset.Set{}}
		}
	}

	ensure(start)
	for _, f := range final {
		ensure(f)
		st := nfa.states[f]
		st.accepting = true
		nfa.states[f] = st
	}

	for from, row := range delta {
		ensure(from)
		for a, targets := range row {
			if len(targets) == 0 {
				continue
			}
			for _, to := range targets {
				ensure(to)
			}
			st := nfa.states[from]
			set, ok := st.trans[a]
			if !ok {
				set = aset.New()
				st.trans[a] = set
			}
			set.AddAll(aset.New(targets...))
			nfa.states[from] = st
		}
	}

	return nfa
}

// Copy returns an independent duplicate of nfa.
func (nfa NFA) Copy() NFA {
	newStates := make(map[State]nfaState, len(nfa.states))
	for q, st := range nfa.states {
		newStates[q] = st.copy()
	}
	return NFA{start: nfa.start, states: newStates}
}

// Start returns the initial state q0.
func (nfa NFA) Start() State {
	return nfa.start
}

// States returns Q, sorted for reproducible iteration.
func (nfa NFA) States() []State {
	out := make([]State, 0, len(nfa.states))
	for q := range nfa.states {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}

// Alphabet returns Σ (excluding Epsilon), sorted for reproducible iteration.
func (nfa NFA) Alphabet() []Symbol {
	seen := aset.New()
	for _, st := range nfa.states {
		for a := range st.trans {
			if a != Epsilon {
				seen.Add(a)
			}
		}
	}
	return seen.Elements()
}

// IsAccepting returns whether q is in F.
func (nfa NFA) IsAccepting(q State) bool {
	st, ok := nfa.states[q]
	return ok && st.accepting
}

// Final returns F, sorted for reproducible iteration.
func (nfa NFA) Final() []State {
	out := []State{}
	for q, st := range nfa.states {
		if st.accepting {
			out = append(out, q)
		}
	}
	sort.Strings(out)
	return out
}

// Move returns Δ(q, a): the set of states directly reachable from q on a,
// without taking any ε-closure.
func (nfa NFA) Move(q State, a Symbol) aset.Set {
	st, ok := nfa.states[q]
	if !ok {
		return aset.New()
	}
	targets, ok := st.trans[a]
	if !ok {
		return aset.New()
	}
	return targets.Copy()
}

// MoveSet returns the union of Move(q, a) over every q in S.
func (nfa NFA) MoveSet(S aset.Set, a Symbol) aset.Set {
	out := aset.New()
	for _, q := range S.Elements() {
		out.AddAll(nfa.Move(q, a))
	}
	return out
}

// EpsilonClosure returns the least set containing q and closed under
// ε-moves: {q} ∪ ⋃ Δ(p, ε) for every p already in the set. The fixed point
// is walked with a LIFO worklist.
func (nfa NFA) EpsilonClosure(q State) aset.Set {
	closure := aset.New()
	var stack aset.Stack
	stack.Push(q)

	for stack.Len() > 0 {
		p := stack.Pop()
		if closure.Has(p) {
			continue
		}
		closure.Add(p)

		st, ok := nfa.states[p]
		if !ok {
			continue
		}
		for _, next := range st.trans[Epsilon].Elements() {
			stack.Push(next)
		}
	}

	return closure
}

// EpsilonClosureSet returns the union of EpsilonClosure(q) over every q in S.
func (nfa NFA) EpsilonClosureSet(S aset.Set) aset.Set {
	out := aset.New()
	for _, q := range S.Elements() {
		out.AddAll(nfa.EpsilonClosure(q))
	}
	return out
}

// Step computes the successor configuration of S on symbol a:
// ⋃_{p∈S} εclose(Δ(p, a)) for every target reached. S itself is not
// ε-closed first; closure is applied only to the resulting set, so callers
// that want the usual NFA step pass an already ε-closed S, as Accept does.
func (nfa NFA) Step(S aset.Set, a Symbol) aset.Set {
	return nfa.EpsilonClosureSet(nfa.MoveSet(S, a))
}

// Accept reports whether nfa accepts word: starting from εclose({q0}),
// apply Step for each symbol, and accept iff the final configuration
// intersects F.
func (nfa NFA) Accept(word []Symbol) bool {
	current := nfa.EpsilonClosure(nfa.start)
	for _, a := range word {
		current = nfa.Step(current, a)
	}
	return current.Any(nfa.IsAccepting)
}

// RemoveEpsilonTransitions returns an equivalent ε-free NFA. For every state
// p, letting E = εclose(p): Δ'(p, a) = ⋃_{q∈E} Δ(q, a) for each symbol a, and
// p becomes accepting iff E intersects F. L is preserved.
func (nfa NFA) RemoveEpsilonTransitions() NFA {
	alphabet := nfa.Alphabet()
	out := NFA{start: nfa.start, states: map[State]nfaState{}}

	for _, p := range nfa.States() {
		E := nfa.EpsilonClosure(p)
		accepting := E.Any(nfa.IsAccepting)

		trans := map[Symbol]aset.Set{}
		for _, a := range alphabet {
			targets := aset.New()
			for _, q := range E.Elements() {
				targets.AddAll(nfa.Move(q, a))
			}
			if !targets.Empty() {
				trans[a] = targets
			}
		}

		out.states[p] = nfaState{accepting: accepting, trans: trans}
	}

	return out
}

// ToDFA performs the subset construction (Aho/Ullman/Sethi algorithm 3.20):
// ε-eliminate, seed a FIFO worklist with εclose({q0}), and repeatedly pop a
// subset S, computing δ({S}, a) = Step(S, a) for each symbol and enqueuing
// any newly discovered subset. Subsets are renamed to opaque states in
// first-discovered order. The result is deterministic but not necessarily
// minimal or complete.
func (nfa NFA) ToDFA() DFA {
	free := nfa.RemoveEpsilonTransitions()
	alphabet := free.Alphabet()

	start := free.EpsilonClosure(free.start)

	names := map[string]State{}
	members := map[string]aset.Set{}

	nextID := 0
	nameFor := func(s aset.Set) (State, bool) {
		key := s.Key()
		if name, ok := names[key]; ok {
			return name, false
		}
		name := fmt.Sprintf("%d", nextID)
		nextID++
		names[key] = name
		members[key] = s
		return name, true
	}

	startName, _ := nameFor(start)

	var queue aset.Queue
	queue.Push(start.Key())
	visited := map[string]bool{start.Key(): true}

	dfa := DFA{start: startName, states: map[State]dfaState{}}

	for queue.Len() > 0 {
		key := queue.Pop()

		S := members[key]
		name := names[key]

		accepting := S.Any(free.IsAccepting)
		trans := map[Symbol]State{}

		for _, a := range alphabet {
			next := free.MoveSet(S, a)
			if next.Empty() {
				continue
			}
			nextName, isNew := nameFor(next)
			trans[a] = nextName
			if isNew || !visited[next.Key()] {
				if !visited[next.Key()] {
					visited[next.Key()] = true
					queue.Push(next.Key())
				}
			}
		}

		dfa.states[name] = dfaState{accepting: accepting, trans: trans}
	}

	return dfa
}

// Complete returns an NFA whose Δ is total over Q × Σ: a single fresh error
// sink is added (unless every (q, a) already resolves to a non-empty
// configuration via Step, in which case nfa is already complete and a
// sink would be redundant), and every (q, a) lacking a transition is routed
// to it. Complete is idempotent.
func (nfa NFA) Complete() NFA {
	alphabet := nfa.Alphabet()

	alreadyTotal := true
	for _, q := range nfa.States() {
		closure := nfa.EpsilonClosure(q)
		for _, a := range alphabet {
			if nfa.MoveSet(closure, a).Empty() {
				alreadyTotal = false
				break
			}
		}
		if !alreadyTotal {
			break
		}
	}
	if alreadyTotal {
		return nfa.Copy()
	}

	sink := errorSinkName(dfaShapeOf(nfa), "")
	out := nfa.Copy()
	out.states[sink] = nfaState{trans: map[Symbol]aset.Set{}}
	for _, a := range alphabet {
		out.states[sink].trans[a] = aset.New(sink)
	}

	for q, st := range out.states {
		if q == sink {
			continue
		}
		for _, a := range alphabet {
			targets, ok := st.trans[a]
			if !ok || targets.Empty() {
				st.trans[a] = aset.New(sink)
			}
		}
		out.states[q] = st
	}

	return out
}

// dfaShapeOf adapts an NFA's state set to the map shape errorSinkName
// expects, so both automaton kinds can share the same fresh-name search.
func dfaShapeOf(nfa NFA) map[State]dfaState {
	out := make(map[State]dfaState, len(nfa.states))
	for q := range nfa.states {
		out[q] = dfaState{}
	}
	return out
}

// Complement returns the NFA embedding of ¬nfa: nfa is first ε-eliminated,
// then completed, then its accepting states are flipped. Completing the
// ε-free form before flipping (rather than completing the original,
// possibly ε-moving automaton) is required for the flip to correspond to
// language complement; see the NFA complement ordering decision in
// DESIGN.md. This operation is only meaningful when nfa is (or embeds)
// a deterministic automaton, such as the DFA embedding DFAToNFA produces —
// it is not a general-purpose NFA complementation.
func (nfa NFA) Complement() NFA {
	completed := nfa.RemoveEpsilonTransitions().Complete()
	out := completed.Copy()
	for q, st := range out.states {
		st.accepting = !st.accepting
		out.states[q] = st
	}
	return out
}

// NumberStates returns an NFA identical to nfa up to state renaming, with
// every state replaced by a sequential numeric label starting from "0" for
// the start state and proceeding in sorted order of the original labels.
func (nfa NFA) NumberStates() NFA {
	orig := nfa.States()
	order := make([]State, 0, len(orig))
	order = append(order, nfa.start)
	for _, q := range orig {
		if q != nfa.start {
			order = append(order, q)
		}
	}

	names := map[State]State{}
	for i, q := range order {
		names[q] = fmt.Sprintf("%d", i)
	}

	out := NFA{start: names[nfa.start], states: map[State]nfaState{}}
	for _, q := range order {
		st := nfa.states[q]
		trans := map[Symbol]aset.Set{}
		for a, targets := range st.trans {
			renamed := aset.New()
			for _, t := range targets.Elements() {
				renamed.Add(names[t])
			}
			trans[a] = renamed
		}
		out.states[names[q]] = nfaState{accepting: st.accepting, trans: trans}
	}
	return out
}

// Validate reports ErrInvalidAutomaton if nfa's internal invariants don't
// hold: every transition must target a state in Q, and the start state
// must be in Q.
func (nfa NFA) Validate() error {
	if _, ok := nfa.states[nfa.start]; !ok {
		return newError(fmt.Sprintf("start state %q is not in Q", nfa.start), ErrInvalidAutomaton)
	}
	for q, st := range nfa.states {
		for _, targets := range st.trans {
			for _, to := range targets.Elements() {
				if _, ok := nfa.states[to]; !ok {
					return newError(fmt.Sprintf("state %q transitions to %q, which is not in Q", q, to), ErrInvalidAutomaton)
				}
			}
		}
	}
	return nil
}

// String renders nfa for debugging and golden-fixture tests, in the same
// shape as DFA.String.
func (nfa NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<START: %q, STATES:", nfa.start)

	states := nfa.States()
	for i, q := range states {
		sb.WriteString("\n\t")
		sb.WriteString(nfaStateString(q, nfa.states[q]))
		if i+1 < len(states) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}

func nfaStateString(name State, st nfaState) string {
	var moves strings.Builder
	symbols := make([]Symbol, 0, len(st.trans))
	for a := range st.trans {
		symbols = append(symbols, a)
	}
	sort.Strings(symbols)

	first := true
	for _, a := range symbols {
		label := a
		if label == Epsilon {
			label = "ε"
		}
		for _, to := range st.trans[a].Elements() {
			if !first {
				moves.WriteString(", ")
			}
			fmt.Fprintf(&moves, "=(%s)=> %s", label, to)
			first = false
		}
	}

	str := fmt.Sprintf("(%s [%s])", name, moves.String())
	if st.accepting {
		str = "(" + str + ")"
	}
	return str
}
