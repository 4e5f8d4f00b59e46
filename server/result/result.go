// Package result contains the response envelope used to write out API
// responses for the automaton server.
package result

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one)
// that is not displayed to the caller.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, respObj, internalMsgOrDefault("OK", internalMsg))
}

// BadRequest returns a Result containing an HTTP-400.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, internalMsgOrDefault("bad request", internalMsg))
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested operation was not found", internalMsgOrDefault("not found", internalMsg))
}

// MethodNotAllowed returns a Result containing an HTTP-405.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, internalMsgOrDefault("method not allowed", internalMsg))
}

// InternalServerError returns a Result containing an HTTP-500, logging
// internalMsg for operators without exposing it to the caller.
func InternalServerError(internalMsg ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMsgOrDefault("internal server error", internalMsg))
}

func internalMsgOrDefault(def string, internalMsg []interface{}) string {
	if len(internalMsg) == 0 {
		return def
	}
	format, ok := internalMsg[0].(string)
	if !ok {
		return def
	}
	return fmt.Sprintf(format, internalMsg[1:]...)
}

// Response builds a successful JSON Result.
func Response(status int, respObj interface{}, internalMsg string) Result {
	return Result{Status: status, InternalMsg: internalMsg, resp: respObj}
}

// Err builds an error JSON Result whose body is an ErrorResponse carrying
// userMsg; internalMsg is logged but never sent to the caller.
func Err(status int, userMsg, internalMsg string) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		InternalMsg: internalMsg,
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// TextErr is like Err but writes plain text instead of JSON, used by the
// panic-recovery middleware where marshaling itself may be what failed.
func TextErr(status int, userMsg, internalMsg string) Result {
	return Result{Status: status, IsErr: true, IsText: true, InternalMsg: internalMsg, resp: userMsg}
}

// Result is a pending HTTP response: a status, a body, and the message that
// should be logged once the response is written.
type Result struct {
	Status      int
	IsErr       bool
	IsText      bool
	InternalMsg string

	resp interface{}
}

// WriteResponse marshals and writes r to w, then logs it at a level derived
// from IsErr/Status.
func (r Result) WriteResponse(w http.ResponseWriter, req *http.Request) {
	if r.Status == 0 {
		panic("result not populated")
	}

	var body []byte
	if r.IsText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		body = []byte(fmt.Sprintf("%v", r.resp))
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		var err error
		body, err = json.Marshal(r.resp)
		if err != nil {
			fallback := Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal response: "+err.Error())
			fallback.WriteResponse(w, req)
			return
		}
	}

	r.log(req)
	w.WriteHeader(r.Status)
	w.Write(body)
}

func (r Result) log(req *http.Request) {
	level := "INFO "
	if r.IsErr {
		level = "ERROR"
	}
	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, r.Status, r.InternalMsg)
}
