package automaton

import "errors"

// Sentinel error kinds. Callers identify a failure's kind with errors.Is
// against these values; a returned error may wrap one of them alongside a
// human-readable cause via Error, below.
var (
	// ErrInvalidAlphabet means ε appeared in a non-ε transition slot, e.g. as
	// a transition symbol in the δ passed to CreateDFA.
	ErrInvalidAlphabet = errors.New("epsilon is not a valid alphabet symbol")

	// ErrInvalidAutomaton is reserved for structural invariants that a
	// well-formed constructor cannot itself produce (F not a subset of Q, a
	// dangling transition target, a start state outside Q). It is returned
	// by Validate and by anything that accepts an already-built automaton
	// from an untrusted source, such as Load.
	ErrInvalidAutomaton = errors.New("automaton violates a structural invariant")

	// ErrParse means a serialized automaton payload was malformed.
	ErrParse = errors.New("malformed automaton encoding")

	// ErrIO means a stream failed while loading or dumping an automaton.
	ErrIO = errors.New("automaton stream I/O failure")
)

// Error is a typed error that carries a message and one or more causes. It is
// compatible with errors.Is: calling errors.Is on an Error with any of its
// causes as the target returns true, which lets callers test for one of the
// sentinel kinds above without a type switch.
type Error struct {
	msg   string
	cause []error
}

// newError builds an Error with msg and the given causes, which typically
// includes one of the sentinel vars above.
func newError(msg string, causes ...error) Error {
	return Error{msg: msg, cause: causes}
}

// Error returns the Error's message, followed by its first cause's message if
// one is set.
func (e Error) Error() string {
	if e.msg == "" && len(e.cause) > 0 {
		return e.cause[0].Error()
	}
	if len(e.cause) > 0 {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of e so errors.Is/errors.As can walk them.
func (e Error) Unwrap() []error {
	return e.cause
}
