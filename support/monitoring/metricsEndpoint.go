package monitoring

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/stellar/pingd/support/logger"
	"github.com/stellar/pingd/support/networking"
)

// metricsEndpoint represents a monitoring API endpoint that always responds with a JSON
// encoding of the provided metrics.
type metricsEndpoint struct {
	path    string
	metrics Metrics
	l       logger.Logger
}

// MakeMetricsEndpoint creates an Endpoint for the monitoring server.
// The endpoint's response is always a JSON dump of the provided metrics.
func MakeMetricsEndpoint(path string, metrics Metrics, l logger.Logger) (networking.Endpoint, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("endpoint path must begin with /")
	}
	s := &metricsEndpoint{
		path:    path,
		metrics: metrics,
		l:       l,
	}
	return s, nil
}

func (m *metricsEndpoint) GetPath() string {
	return m.path
}

// GetHandlerFunc returns a HandlerFunc that writes the JSON representation of the metrics
// that's passed into the endpoint.
func (m *metricsEndpoint) GetHandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json, e := m.metrics.MarshalJSON()
		if e != nil {
			m.l.Errorf("error marshalling metrics json: %s", e)
			http.Error(w, e.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, e = w.Write(json)
		if e != nil {
			m.l.Errorf("error writing to the response writer: %s", e)
		}
	}
}
