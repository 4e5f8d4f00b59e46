package automaton

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DFA_Dump_Load_roundTrip(t *testing.T) {
	assert := assert.New(t)
	dfa := zeroOneStarDFA(t)

	var buf bytes.Buffer
	assert.NoError(dfa.Dump(&buf))

	loaded, err := LoadDFA(&buf)
	assert.NoError(err)

	for _, word := range [][]Symbol{{}, {"0", "1", "0"}, {"1", "1"}, {"0", "0", "0"}} {
		assert.Equal(dfa.Accept(word), loaded.Accept(word), "word %v", word)
	}
	assert.Equal(dfa.Start(), loaded.Start())
	assert.ElementsMatch(dfa.Final(), loaded.Final())
}

func Test_NFA_Dump_Load_roundTrip(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	var buf bytes.Buffer
	assert.NoError(nfa.Dump(&buf))

	loaded, err := LoadNFA(&buf)
	assert.NoError(err)

	for _, word := range [][]Symbol{{}, {"a"}, {"b", "b"}, {"a", "b"}} {
		assert.Equal(nfa.Accept(word), loaded.Accept(word), "word %v", word)
	}
}

func Test_LoadDFA_rejectsMalformedJSON(t *testing.T) {
	assert := assert.New(t)
	_, err := LoadDFA(bytes.NewBufferString("not json"))
	assert.ErrorIs(err, ErrParse)
}

func Test_DFA_DumpBinary_LoadDFABinary_roundTrip(t *testing.T) {
	assert := assert.New(t)
	dfa := zeroOneStarDFA(t)

	data := dfa.DumpBinary()
	loaded, err := LoadDFABinary(data)
	assert.NoError(err)

	for _, word := range [][]Symbol{{}, {"0", "1", "0"}, {"1", "1"}} {
		assert.Equal(dfa.Accept(word), loaded.Accept(word), "word %v", word)
	}
}

func Test_NFA_DumpBinary_LoadNFABinary_roundTrip(t *testing.T) {
	assert := assert.New(t)
	nfa := aOrBStarNFA(t)

	data := nfa.DumpBinary()
	loaded, err := LoadNFABinary(data)
	assert.NoError(err)

	for _, word := range [][]Symbol{{}, {"a"}, {"b", "b"}} {
		assert.Equal(nfa.Accept(word), loaded.Accept(word), "word %v", word)
	}
}
