package monitoring

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stellar/pingd/support/networking"
)

// RequestMetrics counts the requests handled by the public router
type RequestMetrics struct {
	requests *prometheus.CounterVec
}

// MakeRequestMetrics registers the request counter and the build info gauge with registry
func MakeRequestMetrics(registry prometheus.Registerer, namespace string, version string, gitHash string) (*RequestMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests handled, by method and status code, including CORS preflights.",
	}, []string{"code", "method"})
	e := registry.Register(requests)
	if e != nil {
		return nil, errors.Wrap(e, "could not register request counter")
	}

	buildInfo := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Build information",
		ConstLabels: prometheus.Labels{"version": version, "git_hash": gitHash},
	}, func() float64 { return 1 })
	e = registry.Register(buildInfo)
	if e != nil {
		return nil, errors.Wrap(e, "could not register build info")
	}

	return &RequestMetrics{requests: requests}, nil
}

// Middleware counts every request that passes through next
func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.requests, next)
}

// prometheusEndpoint serves the prometheus exposition format for a gatherer
type prometheusEndpoint struct {
	path    string
	handler http.Handler
}

// MakePrometheusEndpoint creates an Endpoint for the monitoring server that exposes everything gathered by gatherer
func MakePrometheusEndpoint(path string, gatherer prometheus.Gatherer) (networking.Endpoint, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("endpoint path must begin with /")
	}
	return &prometheusEndpoint{
		path:    path,
		handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}, nil
}

func (p *prometheusEndpoint) GetPath() string {
	return p.path
}

func (p *prometheusEndpoint) GetHandlerFunc() http.HandlerFunc {
	return p.handler.ServeHTTP
}
