// Package server assembles the automaton HTTP service: a chi router serving
// server/api under server/api.PathPrefix, wrapped in server/middle's
// panic-recovery middleware. The service is stateless — every request
// carries its own automaton payload, so there is no database and no
// per-request session to track.
package server

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/halvard/automata/server/api"
	"github.com/halvard/automata/server/middle"
)

// Server serves the automaton HTTP API.
type Server struct {
	router chi.Router
}

// New builds a Server with its routes mounted and ready to serve.
func New() Server {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return middle.DontPanic()(next)
	})
	router.Mount(api.PathPrefix, api.API{}.Router())
	return Server{router: router}
}

// ServeForever binds addr:port and serves until the process is killed or
// the listener returns a fatal error. addr may be empty to bind all
// interfaces; port 0 makes the listener pick any free port.
func (s Server) ServeForever(addr string, port int) {
	bind := net.JoinHostPort(addr, fmt.Sprintf("%d", port))
	httpServer := &http.Server{
		Addr:         bind,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("INFO  Listening on %s", bind)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("FATAL server exited: %v", err)
	}
}
