package automaton

import (
	"fmt"

	"github.com/halvard/automata/internal/aset"
)

// DFAToNFA embeds dfa as an NFA with no ε-transitions: Δ(q, a) = {δ(q, a)}
// wherever δ is defined, and Δ(q, a) = ∅ otherwise. L(DFAToNFA(dfa)) =
// L(dfa).
func DFAToNFA(dfa DFA) NFA {
	out := NFA{start: dfa.start, states: map[State]nfaState{}}
	for q, st := range dfa.states {
		trans := map[Symbol]aset.Set{}
		for a, to := range st.trans {
			trans[a] = aset.New(to)
		}
		out.states[q] = nfaState{accepting: st.accepting, trans: trans}
	}
	return out
}

// taggedCopy returns an NFA identical to nfa except every state label has
// suffix appended, so that two automata being combined can be merged into
// one state space without name collisions. The "_0"/"_1" suffixes used by
// Concat and Union below keep the scheme visible in intermediate String
// output, which is useful when debugging a combinator step by step.
func taggedCopy(nfa NFA, suffix string) NFA {
	rename := func(q State) State { return q + suffix }

	out := NFA{start: rename(nfa.start), states: map[State]nfaState{}}
	for q, st := range nfa.states {
		trans := map[Symbol]aset.Set{}
		for a, targets := range st.trans {
			renamed := aset.New()
			for _, t := range targets.Elements() {
				renamed.Add(rename(t))
			}
			trans[a] = renamed
		}
		out.states[rename(q)] = nfaState{accepting: st.accepting, trans: trans}
	}
	return out
}

// freshState returns a label guaranteed absent from either a or b.
func freshState(a, b NFA) State {
	name := "qnew"
	for {
		_, inA := a.states[name]
		_, inB := b.states[name]
		if !inA && !inB {
			return name
		}
		name += "_"
	}
}

// nfaConcat returns an NFA accepting L(a)·L(b): a's states are tagged "_0",
// b's states are tagged "_1", and an ε-move is added from each of a's
// accepting states (now non-accepting) to b's start state.
func nfaConcat(a, b NFA) NFA {
	left := taggedCopy(a, "_0")
	right := taggedCopy(b, "_1")

	out := NFA{start: left.start, states: map[State]nfaState{}}
	for q, st := range left.states {
		out.states[q] = st.copy()
	}
	for q, st := range right.states {
		out.states[q] = st.copy()
	}

	for q, st := range left.states {
		if !st.accepting {
			continue
		}
		merged := out.states[q]
		merged.accepting = false
		eps, ok := merged.trans[Epsilon]
		if !ok {
			eps = aset.New()
		}
		eps.Add(right.start)
		merged.trans[Epsilon] = eps
		out.states[q] = merged
	}

	return out
}

// nfaUnion returns an NFA accepting L(a) ∪ L(b): a's states are tagged "_0",
// b's states are tagged "_1", and a fresh start state ε-moves to both
// tagged starts.
func nfaUnion(a, b NFA) NFA {
	left := taggedCopy(a, "_0")
	right := taggedCopy(b, "_1")

	start := freshState(left, right)
	out := NFA{start: start, states: map[State]nfaState{}}
	for q, st := range left.states {
		out.states[q] = st.copy()
	}
	for q, st := range right.states {
		out.states[q] = st.copy()
	}
	out.states[start] = nfaState{trans: map[Symbol]aset.Set{
		Epsilon: aset.New(left.start, right.start),
	}}

	return out
}

// Union returns a DFA accepting L(a) ∪ L(b). Both operands are embedded as
// NFAs, combined with a fresh ε-branching start state, and subset-
// constructed back into a DFA.
func Union(a, b DFA) DFA {
	combined := nfaUnion(DFAToNFA(a), DFAToNFA(b))
	return combined.ToDFA().NumberStates()
}

// Concat returns a DFA accepting L(a)·L(b).
func Concat(a, b DFA) DFA {
	combined := nfaConcat(DFAToNFA(a), DFAToNFA(b))
	return combined.ToDFA().NumberStates()
}

// Intersect returns a DFA accepting L(a) ∩ L(b), computed via De Morgan's
// law: ¬(¬a ∪ ¬b).
func Intersect(a, b DFA) DFA {
	return Union(a.Complement(), b.Complement()).Complement()
}

// Difference returns a DFA accepting L(a) \ L(b), i.e. L(a) ∩ ¬L(b).
func Difference(a, b DFA) DFA {
	return Intersect(a, b.Complement())
}

// mustValidate is a debugging aid used only from tests, to fail fast with a
// descriptive message when a combinator produces a structurally broken
// automaton instead of propagating a confusing downstream panic.
func mustValidate(dfa DFA) DFA {
	if err := dfa.Validate(); err != nil {
		panic(fmt.Sprintf("automaton: internal invariant violated: %v", err))
	}
	return dfa
}
