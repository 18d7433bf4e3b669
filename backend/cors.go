package backend

import (
	"net/http"

	"github.com/rs/cors"
)

const headerAllowCredentials = "Access-Control-Allow-Credentials"

// allowCredentials stamps the credentials header on every response, including 404s and preflights
func allowCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerAllowCredentials, "true")
		next.ServeHTTP(w, r)
	})
}

// makeCORSHandler returns the CORS policy for a single allowed origin with credentials enabled
func makeCORSHandler(allowedOrigin string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowCredentials: true,
	}).Handler
}
