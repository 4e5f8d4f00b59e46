/*
Automatond starts a finite-automata server and begins listening for new
connections.

Usage:

	automatond [flags]
	automatond [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using the REST protocol described under /api/v1. By default it listens on
localhost:8080; this can be changed with the --listen/-l flag (or the
AUTOMATOND_LISTEN_ADDRESS environment variable). The flag argument must be
either a full address with port, such as "192.168.0.2:6001", or just a port
preceeded by a colon, such as ":6001".

The server is stateless: every request carries its own automaton payload, so
there is nothing to persist between requests and no database to configure.

The flags are:

	-v, --version
		Give the current version of automatond and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable AUTOMATOND_LISTEN_ADDRESS, and if that is not given, will
		default to localhost:8080.
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/halvard/automata/internal/version"
	"github.com/halvard/automata/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "AUTOMATOND_LISTEN_ADDRESS"

	defaultAddr = "localhost"
	defaultPort = 8080
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of automatond and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("automatond %s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := defaultAddr
	port := defaultPort

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error
		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	srv := server.New()
	srv.ServeForever(addr, port)
}
