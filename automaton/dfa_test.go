package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// zeroOneStarDFA accepts 0*10* — the standard Hopcroft/Ullman minimization
// textbook example. A second 1 leads to "c" and a third to "d"; neither can
// reach the accepting state "b" again.
func zeroOneStarDFA(t *testing.T) DFA {
	dfa, err := CreateDFA("a", map[State]map[Symbol]State{
		"a": {"0": "a", "1": "b"},
		"b": {"0": "b", "1": "c"},
		"c": {"0": "c", "1": "d"},
		"d": {"0": "d", "1": "d"},
	}, []State{"b"})
	assert.NoError(t, err)
	return dfa
}

func Test_CreateDFA(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q1"},
	}, []State{"q1"})
	assert.NoError(err)
	assert.Equal("q0", dfa.Start())
	assert.ElementsMatch([]State{"q0", "q1"}, dfa.States())
	assert.ElementsMatch([]Symbol{"a"}, dfa.Alphabet())
	assert.True(dfa.IsAccepting("q1"))
	assert.False(dfa.IsAccepting("q0"))
}

func Test_CreateDFA_rejectsEpsilon(t *testing.T) {
	assert := assert.New(t)

	_, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {Epsilon: "q1"},
	}, nil)
	assert.ErrorIs(err, ErrInvalidAlphabet)
}

func Test_DFA_Accept(t *testing.T) {
	testCases := []struct {
		name   string
		word   []Symbol
		expect bool
	}{
		{name: "empty word rejected, b is not start", word: []Symbol{}, expect: false},
		{name: "exactly 0*10*", word: []Symbol{"0", "0", "1", "0"}, expect: true},
		{name: "no 1 at all", word: []Symbol{"0", "0", "0"}, expect: false},
		{name: "two 1s", word: []Symbol{"1", "1"}, expect: false},
		{name: "undefined symbol mid-word rejects", word: []Symbol{"0", "2"}, expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			dfa := zeroOneStarDFA(t)
			assert.Equal(tc.expect, dfa.Accept(tc.word))
		})
	}
}

func Test_DFA_Complete_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q0"},
	}, nil)
	assert.NoError(err)

	once := dfa.Complete()
	twice := once.Complete()
	assert.Equal(len(once.States()), len(twice.States()))
	assert.True(once.IsComplete())
}

func Test_DFA_Complete_addsSink(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q1"},
	}, []State{"q1"})
	assert.NoError(err)
	assert.False(dfa.IsComplete())

	completed := dfa.Complete()
	assert.True(completed.IsComplete())
	assert.Len(completed.States(), 3)

	to, ok := completed.Step("q1", "a")
	assert.True(ok)
	to2, ok := completed.Step(to, "a")
	assert.True(ok)
	assert.Equal(to, to2)
	assert.False(completed.IsAccepting(to))
}

func Test_DFA_Complement(t *testing.T) {
	assert := assert.New(t)
	dfa := zeroOneStarDFA(t)

	comp := dfa.Complement()
	assert.True(comp.Accept([]Symbol{"0", "0", "0"}))
	assert.False(comp.Accept([]Symbol{"0", "0", "1", "0"}))
	assert.True(comp.Accept([]Symbol{}))
}

func Test_DFA_RemoveUnreachable(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q0"},
		"qx": {"a": "qx"},
	}, []State{"qx"})
	assert.NoError(err)
	assert.Len(dfa.States(), 2)

	pruned := dfa.RemoveUnreachable()
	assert.ElementsMatch([]State{"q0"}, pruned.States())
}

func Test_DFA_Minimize(t *testing.T) {
	assert := assert.New(t)

	// b and c both accept the same residual language ({0,1}*) and should merge.
	dfa, err := CreateDFA("a", map[State]map[Symbol]State{
		"a": {"0": "b", "1": "c"},
		"b": {"0": "b", "1": "c"},
		"c": {"0": "c", "1": "c"},
	}, []State{"b", "c"})
	assert.NoError(err)

	min := dfa.Minimize()
	assert.Len(min.States(), 2)
	assert.True(min.Accept([]Symbol{"0", "1", "0"}))
	assert.False(min.Accept([]Symbol{}))
}

func Test_Equivalent(t *testing.T) {
	assert := assert.New(t)

	a, err := CreateDFA("a0", map[State]map[Symbol]State{
		"a0": {"x": "a1"},
		"a1": {"x": "a1"},
	}, []State{"a1"})
	assert.NoError(err)

	b, err := CreateDFA("b0", map[State]map[Symbol]State{
		"b0": {"x": "b1"},
		"b1": {"x": "b2"},
		"b2": {"x": "b2"},
	}, []State{"b1", "b2"})
	assert.NoError(err)

	assert.True(Equivalent(a, b))

	c, err := CreateDFA("c0", map[State]map[Symbol]State{
		"c0": {"x": "c0"},
	}, []State{"c0"})
	assert.NoError(err)

	assert.False(Equivalent(a, c))
}

func Test_DFA_NumberStates_startsAtZero(t *testing.T) {
	assert := assert.New(t)

	dfa, err := CreateDFA("hello", map[State]map[Symbol]State{
		"hello": {"a": "world"},
	}, []State{"world"})
	assert.NoError(err)

	numbered := dfa.NumberStates()
	assert.Equal(State("0"), numbered.Start())
	assert.True(numbered.Accept([]Symbol{"a"}))
}

func Test_DFA_Validate(t *testing.T) {
	assert := assert.New(t)

	dfa := DFA{}
	assert.Error(dfa.Validate())

	good, err := CreateDFA("q0", map[State]map[Symbol]State{"q0": {"a": "q0"}}, nil)
	assert.NoError(err)
	assert.NoError(good.Validate())
}
