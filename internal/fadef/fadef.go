// Package fadef parses a human-authored automaton definition format
// (.fa.yaml) and converts it to automaton.DFA/automaton.NFA. It is a
// convenience input format distinct from the package's canonical wire
// format (automaton.Dump/Load): an author can hand-write a small automaton
// without producing the transitions-as-triples JSON shape themselves.
package fadef

import (
	"fmt"

	"github.com/halvard/automata/automaton"
	"gopkg.in/yaml.v3"
)

// yamlDoc is the shape of a .fa.yaml file.
//
//	kind: dfa          # or nfa
//	start: q0
//	final: [q1, q2]
//	transitions:
//	  q0:
//	    a: q1          # dfa: one target
//	    b: [q1, q2]    # nfa: one or more targets
//	    "&": q0        # epsilon, nfa only
type yamlDoc struct {
	Kind        string                      `yaml:"kind"`
	Start       string                      `yaml:"start"`
	Final       []string                    `yaml:"final"`
	Transitions map[string]map[string]yaml.Node `yaml:"transitions"`
}

// ParseDFA parses data as a .fa.yaml document describing a DFA.
func ParseDFA(data []byte) (automaton.DFA, error) {
	doc, err := parse(data, "dfa")
	if err != nil {
		return automaton.DFA{}, err
	}

	delta := map[automaton.State]map[automaton.Symbol]automaton.State{}
	for from, row := range doc.Transitions {
		delta[from] = map[automaton.Symbol]automaton.State{}
		for symbol, node := range row {
			var to string
			if err := node.Decode(&to); err != nil {
				return automaton.DFA{}, fmt.Errorf("transition %s on %q: DFA targets must be a single state: %w", from, symbol, err)
			}
			delta[from][symbol] = to
		}
	}

	return automaton.CreateDFA(doc.Start, delta, doc.Final)
}

// ParseNFA parses data as a .fa.yaml document describing an NFA. The
// reserved symbol "&" is mapped to automaton.Epsilon.
func ParseNFA(data []byte) (automaton.NFA, error) {
	doc, err := parse(data, "nfa")
	if err != nil {
		return automaton.NFA{}, err
	}

	delta := map[automaton.State]map[automaton.Symbol][]automaton.State{}
	for from, row := range doc.Transitions {
		delta[from] = map[automaton.Symbol][]automaton.State{}
		for symbol, node := range row {
			var targets []string
			if err := node.Decode(&targets); err != nil {
				var single string
				if err := node.Decode(&single); err != nil {
					return automaton.NFA{}, fmt.Errorf("transition %s on %q: malformed target", from, symbol)
				}
				targets = []string{single}
			}

			if symbol == "&" {
				symbol = automaton.Epsilon
			}
			delta[from][symbol] = append(delta[from][symbol], targets...)
		}
	}

	return automaton.CreateNFA(doc.Start, delta, doc.Final), nil
}

func parse(data []byte, wantKind string) (yamlDoc, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return yamlDoc{}, fmt.Errorf("parse .fa.yaml: %w", err)
	}
	if doc.Kind != "" && doc.Kind != wantKind {
		return yamlDoc{}, fmt.Errorf(".fa.yaml declares kind %q, expected %q", doc.Kind, wantKind)
	}
	return doc, nil
}
