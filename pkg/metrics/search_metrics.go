package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// SearchMetrics instruments search execution across backends. It
// registers its collectors once on the service registry; ForBackend
// derives views that share those collectors while reporting durations
// under a different backend label.
//
// SearchMetrics satisfies the executor observer interfaces, so an
// instance plugs straight into postgres.WithSearchObserver.
type SearchMetrics struct {
	backend       string
	compileTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// NewSearchMetrics builds the search collectors and registers them on
// the given registry. The backend names the executor the durations are
// attributed to, for example "postgres" or "qdrant".
func NewSearchMetrics(m *Metrics, backend string) *SearchMetrics {
	s := &SearchMetrics{
		backend: backend,
		compileTotal: createCounterVec(m.namespace, "search_compile_total",
			"Search requests compiled, partitioned by outcome status.", []string{"status"}),
		queryDuration: createHistogramVec(m.namespace, "search_query_duration_seconds",
			"End to end search duration in seconds, partitioned by backend.", []string{"backend"}, prometheus.DefBuckets),
	}
	m.registerer.MustRegister(s.compileTotal, s.queryDuration)
	return s
}

// ForBackend returns a view that reports durations under the given
// backend label. The collectors stay shared, so the view can be handed
// to another executor without registering anything twice.
func (s *SearchMetrics) ForBackend(backend string) *SearchMetrics {
	view := *s
	view.backend = backend
	return &view
}

// ObserveSearch records one finished search call: the compile counter
// by outcome status and the duration histogram under the configured
// backend. Failed compilations count as errors.
func (s *SearchMetrics) ObserveSearch(elapsed time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	s.compileTotal.WithLabelValues(status).Inc()
	s.queryDuration.WithLabelValues(s.backend).Observe(elapsed.Seconds())
}
