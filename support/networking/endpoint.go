package networking

import "net/http"

// Endpoint represents an API endpoint that implements GetHandlerFunc
// which returns a http.HandlerFunc specifying the behavior when this
// endpoint is hit. GetPath returns the path that routes to this endpoint.
type Endpoint interface {
	GetHandlerFunc() http.HandlerFunc
	GetPath() string
}
