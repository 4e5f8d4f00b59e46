// Package middle contains middleware for use with the automaton server.
package middle

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/halvard/automata/server/result"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// DontPanic returns a Middleware that recovers from a panic in the wrapped
// handler and writes a generic HTTP-500 instead of letting it crash the
// server. The endpoints in server/api never deal with untrusted external
// processes, but a malformed automaton payload can still reach a package
// invariant (Validate exists precisely to catch most of these before they
// get this far); DontPanic is the last line of defense.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w, req)
		return true
	}
	return false
}
