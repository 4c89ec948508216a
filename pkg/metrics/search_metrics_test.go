package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Aleph-Alpha/searchspec/pkg/postgres"
)

var _ postgres.SearchObserver = (*SearchMetrics)(nil)

func TestObserveSearchCountsOutcomes(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "searchspec-test"})
	searchMetrics := NewSearchMetrics(m, "postgres")

	searchMetrics.ObserveSearch(150*time.Millisecond, nil)
	searchMetrics.ObserveSearch(90*time.Millisecond, nil)
	searchMetrics.ObserveSearch(10*time.Millisecond, errors.New("key flavour not found"))

	if got := testutil.ToFloat64(searchMetrics.compileTotal.WithLabelValues(statusSuccess)); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(searchMetrics.compileTotal.WithLabelValues(statusError)); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(searchMetrics.queryDuration); got != 1 {
		t.Errorf("duration series count = %d, want 1", got)
	}
}

func TestForBackendSharesCollectors(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "searchspec-test"})
	postgresMetrics := NewSearchMetrics(m, "postgres")
	qdrantMetrics := postgresMetrics.ForBackend("qdrant")

	postgresMetrics.ObserveSearch(20*time.Millisecond, nil)
	qdrantMetrics.ObserveSearch(30*time.Millisecond, nil)

	if got := testutil.ToFloat64(postgresMetrics.compileTotal.WithLabelValues(statusSuccess)); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(postgresMetrics.queryDuration); got != 2 {
		t.Errorf("duration series count = %d, want 2", got)
	}
}

func TestSearchMetricsExposition(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "searchspec-test"})
	searchMetrics := NewSearchMetrics(m, "postgres")
	searchMetrics.ObserveSearch(25*time.Millisecond, nil)

	body := scrapeMetrics(t, m)
	for _, want := range []string{
		`search_compile_total{service="searchspec-test",status="success"} 1`,
		`search_query_duration_seconds_count{backend="postgres",service="searchspec-test"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}
