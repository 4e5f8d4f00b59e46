package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// aOrBStarNFA accepts a|b* via an ε-branching union of "exactly a" and
// "zero or more b", the shape nfaUnion produces and the classic subset
// construction worked example.
func aOrBStarNFA(t *testing.T) NFA {
	nfa := CreateNFA("s", map[State]map[Symbol][]State{
		"s":  {Epsilon: {"p0", "q0"}},
		"p0": {"a": {"p1"}},
		"q0": {"b": {"q0"}},
	}, []State{"p1", "q0"})
	return nfa
}

func Test_CreateNFA(t *testing.T) {
	assert := assert.New(t)

	nfa := CreateNFA("s0", map[State]map[Symbol][]State{
		"s0": {"a": {"s1", "s2"}},
	}, []State{"s1"})

	assert.Equal(State("s0"), nfa.Start())
	assert.ElementsMatch([]State{"s0", "s1", "s2"}, nfa.States())
	assert.True(nfa.IsAccepting("s1"))

	targets := nfa.Move("s0", "a")
	assert.ElementsMatch([]State{"s1", "s2"}, targets.Elements())
}

func Test_NFA_EpsilonClosure(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	closure := nfa.EpsilonClosure("s")
	assert.ElementsMatch([]State{"s", "p0", "q0"}, closure.Elements())

	// a state with no epsilon moves closes to itself only.
	assert.ElementsMatch([]State{"p1"}, nfa.EpsilonClosure("p1").Elements())
}

func Test_NFA_Accept(t *testing.T) {
	testCases := []struct {
		name   string
		word   []Symbol
		expect bool
	}{
		{name: "empty word matches b*", word: []Symbol{}, expect: true},
		{name: "single a matches the a branch", word: []Symbol{"a"}, expect: true},
		{name: "bbb matches b*", word: []Symbol{"b", "b", "b"}, expect: true},
		{name: "ab matches neither branch", word: []Symbol{"a", "b"}, expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			nfa := aOrBStarNFA(t)
			assert.Equal(tc.expect, nfa.Accept(tc.word))
		})
	}
}

func Test_NFA_RemoveEpsilonTransitions_preservesLanguage(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)
	free := nfa.RemoveEpsilonTransitions()

	for _, word := range [][]Symbol{{}, {"a"}, {"b", "b"}, {"a", "b"}} {
		assert.Equal(nfa.Accept(word), free.Accept(word), "word %v", word)
	}

	for _, st := range free.states {
		_, hasEpsilon := st.trans[Epsilon]
		assert.False(hasEpsilon)
	}
}

func Test_NFA_ToDFA(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	dfa := nfa.ToDFA()

	for _, word := range [][]Symbol{{}, {"a"}, {"b", "b"}, {"a", "b"}, {"c"}} {
		assert.Equal(nfa.Accept(word), dfa.Accept(word), "word %v", word)
	}
}

func Test_NFA_Complement_viaDFAEmbedding(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q1"},
		"q1": {"a": "q1"},
	}, []State{"q1"})
	assert.NoError(err)

	embedded := DFAToNFA(dfa)
	complement := embedded.Complement()

	assert.False(complement.Accept([]Symbol{"a"}))
	assert.True(complement.Accept([]Symbol{}))
	// "b" is outside Σ={"a"}; completion is over Q×Σ only, so it stays
	// rejected rather than being swept into the complement.
	assert.False(complement.Accept([]Symbol{"b"}))
}

func Test_NFA_Validate(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA{}
	assert.Error(nfa.Validate())

	good := CreateNFA("s0", map[State]map[Symbol][]State{
		"s0": {"a": {"s0"}},
	}, nil)
	assert.NoError(good.Validate())
}

func Test_NFA_NumberStates(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	numbered := nfa.NumberStates()
	assert.Equal(State("0"), numbered.Start())

	for _, word := range [][]Symbol{{}, {"a"}, {"b", "b"}} {
		assert.Equal(nfa.Accept(word), numbered.Accept(word))
	}
}
