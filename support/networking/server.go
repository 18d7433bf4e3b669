package networking

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// readHeaderTimeout bounds how long a client may take to send request headers
const readHeaderTimeout = 10 * time.Second

// WebServer defines an interface for a generic HTTP/S server with a StartServer function.
// If certFile and certKey are specified, then the server will serve through HTTPS. StartServer
// will run synchronously and returns nil only once Shutdown has been called.
type WebServer interface {
	StartServer(port uint16, certFile string, keyFile string) error
	Serve(listener net.Listener, certFile string, keyFile string) error
	Shutdown(ctx context.Context) error
}

type server struct {
	httpServer *http.Server
}

var _ WebServer = &server{}

// MakeServer creates a WebServer that hands every request to handler
func MakeServer(handler http.Handler) WebServer {
	return &server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// MakeEndpointServer creates a WebServer that's responsible for serving all the endpoints passed into it.
func MakeEndpointServer(endpoints []Endpoint) (WebServer, error) {
	mux := new(http.ServeMux)
	seen := map[string]bool{}
	for _, endpoint := range endpoints {
		path := endpoint.GetPath()
		if seen[path] {
			return nil, errors.Errorf("duplicate endpoint path '%s'", path)
		}
		seen[path] = true
		mux.HandleFunc(path, endpoint.GetHandlerFunc())
	}
	return MakeServer(mux), nil
}

// StartServer starts the server by listening on the specified port and serving requests
// according to its handler. If certFile and keyFile aren't empty, then the server will use TLS.
// This call will block until the server is shut down or fails.
func (s *server) StartServer(port uint16, certFile string, keyFile string) error {
	e := checkTLSFiles(certFile, keyFile)
	if e != nil {
		return e
	}

	addr := ":" + strconv.Itoa(int(port))
	listener, e := net.Listen("tcp", addr)
	if e != nil {
		return errors.Wrapf(e, "could not listen on address '%s'", addr)
	}
	return s.Serve(listener, certFile, keyFile)
}

// Serve serves requests on an existing listener, it takes ownership of the listener
func (s *server) Serve(listener net.Listener, certFile string, keyFile string) error {
	var e error
	if certFile != "" && keyFile != "" {
		e = s.httpServer.ServeTLS(listener, certFile, keyFile)
	} else {
		e = s.httpServer.Serve(listener)
	}

	if e == http.ErrServerClosed {
		return nil
	}
	return errors.Wrap(e, "server stopped unexpectedly")
}

// Shutdown stops accepting new connections and waits for in-flight requests until ctx is done
func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func checkTLSFiles(certFile string, keyFile string) error {
	if certFile == "" && keyFile == "" {
		return nil
	}
	if certFile == "" || keyFile == "" {
		return errors.New("both the tls cert file and the tls key file need to be provided")
	}

	_, e := os.Stat(certFile)
	if e != nil {
		return errors.Wrap(e, "provided tls cert file cannot be found")
	}
	_, e = os.Stat(keyFile)
	if e != nil {
		return errors.Wrap(e, "provided tls key file cannot be found")
	}
	return nil
}
