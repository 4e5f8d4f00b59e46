package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DFA_ToGraph(t *testing.T) {
	assert := assert.New(t)
	dfa := zeroOneStarDFA(t)

	g := dfa.ToGraph()
	assert.Len(g.Nodes, 4)

	var start *GraphNode
	for i := range g.Nodes {
		if g.Nodes[i].Initial {
			start = &g.Nodes[i]
		}
	}
	assert.NotNil(start)
	assert.Equal(State("a"), start.ID)

	found := false
	for _, e := range g.Edges {
		if e.From == "a" && e.Label == "0" && e.To == "a" {
			found = true
		}
	}
	assert.True(found)
}

func Test_NFA_ToGraph_labelsEpsilon(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	g := nfa.ToGraph()
	found := false
	for _, e := range g.Edges {
		if e.Label == "ε" {
			found = true
		}
	}
	assert.True(found)
}
