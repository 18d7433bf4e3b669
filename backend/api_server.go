package backend

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/stellar/pingd/support/logger"
)

// requestTimeout bounds a single request, the ping route finishes long before it
const requestTimeout = 60 * time.Second

// APIServer is an instance of the API service
type APIServer struct {
	l             logger.Logger
	allowedOrigin string
	rateLimiter   *ipRateLimiter
}

// MakeAPIServer is a factory method
func MakeAPIServer(l logger.Logger, cfg Config) *APIServer {
	var limiter *ipRateLimiter
	if cfg.RateLimit > 0 {
		limiter = makeIPRateLimiter(cfg.RateLimit, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	}

	return &APIServer{
		l:             l,
		allowedOrigin: cfg.AllowedOrigin,
		rateLimiter:   limiter,
	}
}

// MakeRouter builds the route table once; extra middleware sees every request, including preflights answered by the CORS policy
func (s *APIServer) MakeRouter(extraMiddleware ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(allowCredentials)
	r.Use(extraMiddleware...)
	r.Use(makeCORSHandler(s.allowedOrigin))
	s.setMiddleware(r)
	SetRoutes(r, s)
	return r
}

func (s *APIServer) setMiddleware(r *chi.Mux) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  accessLogger{l: s.l},
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	if s.rateLimiter != nil {
		r.Use(s.rateLimiter.Handler)
	}
	r.Use(middleware.Timeout(requestTimeout))
}

// accessLogger hands chi's access lines to the configured logger
type accessLogger struct {
	l logger.Logger
}

// Print impl of chi's middleware.LoggerInterface
func (a accessLogger) Print(v ...interface{}) {
	a.l.Info(fmt.Sprint(v...))
}
