package backend

import (
	"net/http"

	"github.com/go-chi/chi"
)

// SetRoutes registers every route served by s. A known path requested with another method is reported as not found.
func SetRoutes(r chi.Router, s *APIServer) {
	r.Get("/ping", http.HandlerFunc(s.ping))

	r.NotFound(http.NotFound)
	r.MethodNotAllowed(http.NotFound)
}
