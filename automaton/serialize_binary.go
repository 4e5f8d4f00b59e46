package automaton

import "github.com/dekarrin/rezi"

// dfaSnapshot is the plain-struct shape rezi encodes DFA as. rezi walks
// exported fields by reflection, so the snapshot exists only to give it
// something concrete to walk; DumpBinary/LoadDFABinary are responsible for
// moving data between it and the real DFA.
type dfaSnapshot struct {
	Start       string
	States      []string
	Final       []string
	FromStates  []string
	FromSymbols []string
	ToStates    []string
}

// DumpBinary encodes dfa with rezi, for callers that want a compact binary
// form instead of the JSON wire format (e.g. embedding an automaton in a
// larger binary blob). It is equivalent to Dump, not a replacement for it.
func (dfa DFA) DumpBinary() []byte {
	snap := dfaSnapshot{Start: dfa.start, States: dfa.States(), Final: dfa.Final()}
	for _, q := range dfa.States() {
		st := dfa.states[q]
		for _, a := range sortedSymbols(st.trans) {
			snap.FromStates = append(snap.FromStates, q)
			snap.FromSymbols = append(snap.FromSymbols, a)
			snap.ToStates = append(snap.ToStates, st.trans[a])
		}
	}
	return rezi.EncBinary(snap)
}

// LoadDFABinary decodes a DFA previously produced by DumpBinary.
func LoadDFABinary(data []byte) (DFA, error) {
	var snap dfaSnapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return DFA{}, newError("failed to decode binary DFA", ErrParse, err)
	}

	delta := map[State]map[Symbol]State{}
	for i, from := range snap.FromStates {
		if _, ok := delta[from]; !ok {
			delta[from] = map[Symbol]State{}
		}
		delta[from][snap.FromSymbols[i]] = snap.ToStates[i]
	}

	dfa, err := CreateDFA(snap.Start, delta, snap.Final)
	if err != nil {
		return DFA{}, err
	}
	if err := dfa.Validate(); err != nil {
		return DFA{}, err
	}
	return dfa, nil
}

// nfaSnapshot mirrors dfaSnapshot but allows more than one target per
// (state, symbol) row, since Δ need not be a function.
type nfaSnapshot struct {
	Start       string
	States      []string
	Final       []string
	FromStates  []string
	FromSymbols []string
	ToStates    [][]string
}

// DumpBinary encodes nfa with rezi.
func (nfa NFA) DumpBinary() []byte {
	snap := nfaSnapshot{Start: nfa.start, States: nfa.States(), Final: nfa.Final()}
	for _, q := range nfa.States() {
		st := nfa.states[q]
		symbols := make([]Symbol, 0, len(st.trans))
		for a := range st.trans {
			symbols = append(symbols, a)
		}
		sortSymbolsWithEpsilonFirst(symbols)
		for _, a := range symbols {
			snap.FromStates = append(snap.FromStates, q)
			snap.FromSymbols = append(snap.FromSymbols, a)
			snap.ToStates = append(snap.ToStates, st.trans[a].Elements())
		}
	}
	return rezi.EncBinary(snap)
}

// LoadNFABinary decodes an NFA previously produced by NFA.DumpBinary.
func LoadNFABinary(data []byte) (NFA, error) {
	var snap nfaSnapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return NFA{}, newError("failed to decode binary NFA", ErrParse, err)
	}

	delta := map[State]map[Symbol][]State{}
	for i, from := range snap.FromStates {
		if _, ok := delta[from]; !ok {
			delta[from] = map[Symbol][]State{}
		}
		delta[from][snap.FromSymbols[i]] = append(delta[from][snap.FromSymbols[i]], snap.ToStates[i]...)
	}

	nfa := CreateNFA(snap.Start, delta, snap.Final)
	if err := nfa.Validate(); err != nil {
		return NFA{}, err
	}
	return nfa, nil
}
