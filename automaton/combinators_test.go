package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// exactlyA accepts the single word "a".
func exactlyA() DFA {
	dfa, _ := CreateDFA("q0", map[State]map[Symbol]State{
		"q0": {"a": "q1"},
	}, []State{"q1"})
	return dfa
}

// exactlyB accepts the single word "b".
func exactlyB() DFA {
	dfa, _ := CreateDFA("p0", map[State]map[Symbol]State{
		"p0": {"b": "p1"},
	}, []State{"p1"})
	return dfa
}

func Test_Union(t *testing.T) {
	assert := assert.New(t)
	u := mustValidate(Union(exactlyA(), exactlyB()))

	assert.True(u.Accept([]Symbol{"a"}))
	assert.True(u.Accept([]Symbol{"b"}))
	assert.False(u.Accept([]Symbol{"a", "b"}))
	assert.False(u.Accept([]Symbol{}))
}

func Test_Concat(t *testing.T) {
	assert := assert.New(t)
	c := mustValidate(Concat(exactlyA(), exactlyB()))

	assert.True(c.Accept([]Symbol{"a", "b"}))
	assert.False(c.Accept([]Symbol{"a"}))
	assert.False(c.Accept([]Symbol{"b"}))
	assert.False(c.Accept([]Symbol{"b", "a"}))
}

func Test_Intersect(t *testing.T) {
	assert := assert.New(t)

	// evens: accepts strings of even length over {x}; atLeast3: accepts
	// length >= 3. Their intersection accepts even lengths >= 4.
	evens, _ := CreateDFA("e0", map[State]map[Symbol]State{
		"e0": {"x": "e1"},
		"e1": {"x": "e0"},
	}, []State{"e0"})

	atLeast3, _ := CreateDFA("t0", map[State]map[Symbol]State{
		"t0": {"x": "t1"},
		"t1": {"x": "t2"},
		"t2": {"x": "t3"},
		"t3": {"x": "t3"},
	}, []State{"t3"})

	inter := mustValidate(Intersect(evens, atLeast3))

	assert.False(inter.Accept(repeat("x", 2)))
	assert.False(inter.Accept(repeat("x", 3)))
	assert.True(inter.Accept(repeat("x", 4)))
	assert.False(inter.Accept(repeat("x", 5)))
	assert.True(inter.Accept(repeat("x", 6)))
}

func Test_Difference(t *testing.T) {
	assert := assert.New(t)

	anyLength, _ := CreateDFA("a0", map[State]map[Symbol]State{
		"a0": {"x": "a0"},
	}, []State{"a0"})

	exactly2, _ := CreateDFA("b0", map[State]map[Symbol]State{
		"b0": {"x": "b1"},
		"b1": {"x": "b2"},
		"b2": {"x": "b3"},
		"b3": {"x": "b3"},
	}, []State{"b2"})

	diff := mustValidate(Difference(anyLength, exactly2))

	assert.True(diff.Accept(repeat("x", 0)))
	assert.True(diff.Accept(repeat("x", 1)))
	assert.False(diff.Accept(repeat("x", 2)))
	assert.True(diff.Accept(repeat("x", 3)))
}

func repeat(symbol Symbol, n int) []Symbol {
	out := make([]Symbol, n)
	for i := range out {
		out[i] = symbol
	}
	return out
}

func Test_DFAToNFA_preservesLanguage(t *testing.T) {
	assert := assert.New(t)
	dfa := zeroOneStarDFA(t)
	nfa := DFAToNFA(dfa)

	for _, word := range [][]Symbol{{}, {"0", "1", "0"}, {"1", "1"}} {
		assert.Equal(dfa.Accept(word), nfa.Accept(word), "word %v", word)
	}
}
