// Package api provides HTTP endpoints for the automaton server: the
// automaton package's DFA operations plus NFA acceptance, subset
// construction and graph export, reachable over /api/v1, each request carrying its own automaton payload in the package's
// wire format. The server holds no state across requests.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/halvard/automata/automaton"
	"github.com/halvard/automata/server/result"
	"github.com/halvard/automata/server/serr"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// API holds the handlers for every operation exposed over HTTP. It has no
// fields because the automaton package carries no state to inject; API
// exists as a receiver purely so handler methods read like
// a.handleDFAAccept rather than a package of bare functions.
type API struct{}

// Router builds the chi router serving every endpoint under PathPrefix.
func (a API) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/dfa/accept", httpEndpoint(a.handleDFAAccept))
	r.Post("/dfa/complete", httpEndpoint(a.handleDFAComplete))
	r.Post("/dfa/complement", httpEndpoint(a.handleDFAComplement))
	r.Post("/dfa/minimize", httpEndpoint(a.handleDFAMinimize))
	r.Post("/dfa/to-graph", httpEndpoint(a.handleDFAToGraph))
	r.Post("/dfa/union", httpEndpoint(a.handleDFAUnion))
	r.Post("/dfa/intersect", httpEndpoint(a.handleDFAIntersect))
	r.Post("/dfa/concat", httpEndpoint(a.handleDFAConcat))
	r.Post("/dfa/difference", httpEndpoint(a.handleDFADifference))
	r.Post("/dfa/equivalent", httpEndpoint(a.handleDFAEquivalent))
	r.Post("/nfa/accept", httpEndpoint(a.handleNFAAccept))
	r.Post("/nfa/to-dfa", httpEndpoint(a.handleNFAToDFA))
	r.Post("/nfa/to-graph", httpEndpoint(a.handleNFAToGraph))
	return r
}

// wordRequest carries one DFA/NFA plus a word to test it against.
type wordRequest struct {
	Automaton json.RawMessage `json:"automaton"`
	Word      []string        `json:"word"`
}

// pairRequest carries two DFAs for a binary combinator.
type pairRequest struct {
	A json.RawMessage `json:"a"`
	B json.RawMessage `json:"b"`
}

func decodeDFA(raw json.RawMessage) (automaton.DFA, error) {
	dfa, err := automaton.LoadDFA(bytes.NewReader(raw))
	if err != nil {
		return automaton.DFA{}, serr.New("invalid DFA payload", err, serr.ErrAutomaton)
	}
	return dfa, nil
}

func decodeNFA(raw json.RawMessage) (automaton.NFA, error) {
	nfa, err := automaton.LoadNFA(bytes.NewReader(raw))
	if err != nil {
		return automaton.NFA{}, serr.New("invalid NFA payload", err, serr.ErrAutomaton)
	}
	return nfa, nil
}

func encodeDFA(dfa automaton.DFA) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := dfa.Dump(&buf); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func encodeNFA(nfa automaton.NFA) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := nfa.Dump(&buf); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func (a API) handleDFAAccept(req *http.Request) result.Result {
	var body wordRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	dfa, err := decodeDFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	return result.OK(map[string]bool{"accepted": dfa.Accept(body.Word)})
}

func (a API) handleDFAComplete(req *http.Request) result.Result {
	return a.unaryDFA(req, automaton.DFA.Complete)
}

func (a API) handleDFAComplement(req *http.Request) result.Result {
	return a.unaryDFA(req, automaton.DFA.Complement)
}

func (a API) handleDFAMinimize(req *http.Request) result.Result {
	return a.unaryDFA(req, automaton.DFA.Minimize)
}

func (a API) unaryDFA(req *http.Request, op func(automaton.DFA) automaton.DFA) result.Result {
	var body struct {
		Automaton json.RawMessage `json:"automaton"`
	}
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	dfa, err := decodeDFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	out, err := encodeDFA(op(dfa))
	if err != nil {
		return result.InternalServerError(err.Error())
	}
	return result.OK(map[string]json.RawMessage{"automaton": out})
}

func (a API) handleDFAToGraph(req *http.Request) result.Result {
	var body struct {
		Automaton json.RawMessage `json:"automaton"`
	}
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	dfa, err := decodeDFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	return result.OK(dfa.ToGraph())
}

func (a API) binaryDFA(req *http.Request, op func(a, b automaton.DFA) automaton.DFA) result.Result {
	var body pairRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	a1, err := decodeDFA(body.A)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	b, err := decodeDFA(body.B)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	out, err := encodeDFA(op(a1, b))
	if err != nil {
		return result.InternalServerError(err.Error())
	}
	return result.OK(map[string]json.RawMessage{"automaton": out})
}

func (a API) handleDFAUnion(req *http.Request) result.Result {
	return a.binaryDFA(req, automaton.Union)
}

func (a API) handleDFAIntersect(req *http.Request) result.Result {
	return a.binaryDFA(req, automaton.Intersect)
}

func (a API) handleDFAConcat(req *http.Request) result.Result {
	return a.binaryDFA(req, automaton.Concat)
}

func (a API) handleDFADifference(req *http.Request) result.Result {
	return a.binaryDFA(req, automaton.Difference)
}

func (a API) handleDFAEquivalent(req *http.Request) result.Result {
	var body pairRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	a1, err := decodeDFA(body.A)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	b, err := decodeDFA(body.B)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	return result.OK(map[string]bool{"equivalent": automaton.Equivalent(a1, b)})
}

func (a API) handleNFAAccept(req *http.Request) result.Result {
	var body wordRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	nfa, err := decodeNFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	return result.OK(map[string]bool{"accepted": nfa.Accept(body.Word)})
}

func (a API) handleNFAToDFA(req *http.Request) result.Result {
	var body struct {
		Automaton json.RawMessage `json:"automaton"`
	}
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	nfa, err := decodeNFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	out, err := encodeDFA(nfa.ToDFA())
	if err != nil {
		return result.InternalServerError(err.Error())
	}
	return result.OK(map[string]json.RawMessage{"automaton": out})
}

func (a API) handleNFAToGraph(req *http.Request) result.Result {
	var body struct {
		Automaton json.RawMessage `json:"automaton"`
	}
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}
	nfa, err := decodeNFA(body.Automaton)
	if err != nil {
		return result.BadRequest(err.Error())
	}
	return result.OK(nfa.ToGraph())
}

// parseJSON decodes the request body into v. v must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer req.Body.Close()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}
	return nil
}

// endpointFunc is the signature every handler method above matches.
type endpointFunc func(req *http.Request) result.Result

func httpEndpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)
		if r.Status == 0 {
			result.InternalServerError("endpoint result was never populated").WriteResponse(w, req)
			return
		}
		r.WriteResponse(w, req)
	}
}
