package automaton

import (
	"encoding/json"
	"fmt"
	"io"
)

// requiredWireFields are the document fields a wire-format payload must
// carry; a payload missing either is rejected before CreateDFA/CreateNFA
// ever see it, since a missing initial_state or transitions list would
// otherwise silently decode as a zero value instead of failing.
var requiredWireFields = []string{"initial_state", "transitions"}

// decodeWireAutomaton reads all of r, confirms every field in
// requiredWireFields is present, and decodes the result into doc.
func decodeWireAutomaton(r io.Reader, doc *wireAutomaton) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return newError("failed to read automaton", ErrIO, err)
	}

	var presence map[string]json.RawMessage
	if err := json.Unmarshal(data, &presence); err != nil {
		return newError("failed to read automaton", ErrParse, err)
	}
	for _, field := range requiredWireFields {
		if _, ok := presence[field]; !ok {
			return newError(fmt.Sprintf("automaton document is missing required field %q", field), ErrParse)
		}
	}

	if err := json.Unmarshal(data, doc); err != nil {
		return newError("failed to read automaton", ErrParse, err)
	}
	return nil
}

// wireTransition is one row of the "transitions" array in the wire format:
// [state, symbol, target-or-list-of-targets]. DFA transitions always encode
// a single target; NFA transitions encode either a single target or a list,
// since Δ(q, a) may contain more than one state.
type wireTransition struct {
	From   State
	Symbol Symbol
	To     json.RawMessage
}

// MarshalJSON encodes t as a 3-element array.
func (t wireTransition) MarshalJSON() ([]byte, error) {
	symbol := t.Symbol
	if symbol == Epsilon {
		symbol = "&"
	}
	arr := []interface{}{t.From, symbol, json.RawMessage(t.To)}
	return json.Marshal(arr)
}

// UnmarshalJSON decodes t from a 3-element array, leaving To as raw JSON so
// the caller can interpret it as either a single state or a list.
func (t *wireTransition) UnmarshalJSON(data []byte) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 3 {
		return fmt.Errorf("transition entry has %d elements, want 3", len(arr))
	}
	if err := json.Unmarshal(arr[0], &t.From); err != nil {
		return err
	}
	var symbol string
	if err := json.Unmarshal(arr[1], &symbol); err != nil {
		return err
	}
	if symbol == "&" {
		symbol = Epsilon
	}
	t.Symbol = symbol
	t.To = arr[2]
	return nil
}

// wireAutomaton is the document shape described in the serialization
// component: an initial state, an order-independent list of transitions,
// and a list of final states.
type wireAutomaton struct {
	InitialState State            `json:"initial_state"`
	Transitions  []wireTransition `json:"transitions"`
	FinalStates  []State          `json:"final_states"`
}

// Dump writes dfa's wire-format JSON encoding to w.
func (dfa DFA) Dump(w io.Writer) error {
	doc := wireAutomaton{InitialState: dfa.start, FinalStates: dfa.Final()}
	for _, q := range dfa.States() {
		st := dfa.states[q]
		for _, a := range sortedSymbols(st.trans) {
			toJSON, _ := json.Marshal(st.trans[a])
			doc.Transitions = append(doc.Transitions, wireTransition{From: q, Symbol: a, To: toJSON})
		}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return newError("failed to write DFA", ErrIO, err)
	}
	return nil
}

// LoadDFA reads a wire-format JSON-encoded DFA from r.
func LoadDFA(r io.Reader) (DFA, error) {
	var doc wireAutomaton
	if err := decodeWireAutomaton(r, &doc); err != nil {
		return DFA{}, err
	}

	delta := map[State]map[Symbol]State{}
	for _, t := range doc.Transitions {
		var to State
		if err := json.Unmarshal(t.To, &to); err != nil {
			return DFA{}, newError(fmt.Sprintf("transition from %q on %q has a non-scalar target; DFA transitions must target exactly one state", t.From, t.Symbol), ErrParse, err)
		}
		if _, ok := delta[t.From]; !ok {
			delta[t.From] = map[Symbol]State{}
		}
		delta[t.From][t.Symbol] = to
	}

	dfa, err := CreateDFA(doc.InitialState, delta, doc.FinalStates)
	if err != nil {
		return DFA{}, err
	}
	if err := dfa.Validate(); err != nil {
		return DFA{}, err
	}
	return dfa, nil
}

// Dump writes nfa's wire-format JSON encoding to w. Rows with more than one
// target are encoded as a JSON array; single-target rows are encoded as a
// bare string, matching the same shape DFA.Dump produces for deterministic
// rows.
func (nfa NFA) Dump(w io.Writer) error {
	doc := wireAutomaton{InitialState: nfa.start, FinalStates: nfa.Final()}
	for _, q := range nfa.States() {
		st := nfa.states[q]
		symbols := make([]Symbol, 0, len(st.trans))
		for a := range st.trans {
			symbols = append(symbols, a)
		}
		sortSymbolsWithEpsilonFirst(symbols)

		for _, a := range symbols {
			targets := st.trans[a].Elements()
			var toJSON []byte
			if len(targets) == 1 {
				toJSON, _ = json.Marshal(targets[0])
			} else {
				toJSON, _ = json.Marshal(targets)
			}
			doc.Transitions = append(doc.Transitions, wireTransition{From: q, Symbol: a, To: toJSON})
		}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return newError("failed to write NFA", ErrIO, err)
	}
	return nil
}

// LoadNFA reads a wire-format JSON-encoded NFA from r. A transition target
// may be either a single state or a list of states.
func LoadNFA(r io.Reader) (NFA, error) {
	var doc wireAutomaton
	if err := decodeWireAutomaton(r, &doc); err != nil {
		return NFA{}, err
	}

	delta := map[State]map[Symbol][]State{}
	for _, t := range doc.Transitions {
		var targets []State
		var single State
		if err := json.Unmarshal(t.To, &single); err == nil {
			targets = []State{single}
		} else if err := json.Unmarshal(t.To, &targets); err != nil {
			return NFA{}, newError(fmt.Sprintf("transition from %q on %q has a malformed target", t.From, t.Symbol), ErrParse, err)
		}
		if _, ok := delta[t.From]; !ok {
			delta[t.From] = map[Symbol][]State{}
		}
		delta[t.From][t.Symbol] = append(delta[t.From][t.Symbol], targets...)
	}

	nfa := CreateNFA(doc.InitialState, delta, doc.FinalStates)
	if err := nfa.Validate(); err != nil {
		return NFA{}, err
	}
	return nfa, nil
}

// sortSymbolsWithEpsilonFirst sorts symbols so Epsilon (the empty string)
// naturally sorts first, keeping ε-rows grouped at the head of the dump for
// readability; this has no semantic effect since the format is order-
// independent on load.
func sortSymbolsWithEpsilonFirst(symbols []Symbol) {
	for i := 1; i < len(symbols); i++ {
		for j := i; j > 0 && symbols[j] < symbols[j-1]; j-- {
			symbols[j], symbols[j-1] = symbols[j-1], symbols[j]
		}
	}
}
