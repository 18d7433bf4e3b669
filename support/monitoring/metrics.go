package monitoring

// Metrics is an interface that allows a client to pass in key value pairs (keys must be strings)
// and it can dump the metrics as JSON. Implementations are safe for concurrent use.
type Metrics interface {
	UpdateMetrics(metrics map[string]interface{})
	MarshalJSON() ([]byte, error)
}
