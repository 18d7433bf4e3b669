package monitoring

import (
	"encoding/json"
	"sync"
)

// metricsRecorder uses a map to store metrics and implements the Metrics interface.
type metricsRecorder struct {
	records map[string]interface{}
	lock    *sync.RWMutex
}

var _ Metrics = &metricsRecorder{}

// MakeMetricsRecorder makes a metrics recorder with a copy of records as the starting values. If records
// is nil, then an empty map will be initialized for you.
func MakeMetricsRecorder(records map[string]interface{}) (Metrics, error) {
	m := &metricsRecorder{
		records: map[string]interface{}{},
		lock:    &sync.RWMutex{},
	}
	m.UpdateMetrics(records)
	return m, nil
}

// UpdateMetrics updates (or adds if non-existent) metrics in the records for all key-value
// pairs in the provided map of metrics.
func (m *metricsRecorder) UpdateMetrics(metrics map[string]interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for k, v := range metrics {
		m.records[k] = v
	}
}

// MarshalJSON gives the JSON representation of the records.
func (m *metricsRecorder) MarshalJSON() ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return json.Marshal(m.records)
}
