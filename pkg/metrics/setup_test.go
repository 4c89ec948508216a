package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// scrapeMetrics serves one scrape from the configured handler and
// returns the exposition text.
func scrapeMetrics(t *testing.T, m *Metrics) string {
	t.Helper()

	endpoint := httptest.NewServer(m.Server.Handler)
	defer endpoint.Close()

	resp, err := http.Get(endpoint.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scrape status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading scrape body failed: %v", err)
	}
	return string(body)
}

func TestNewMetricsAppliesAddressDefault(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "searchspec"})
	if m.Server.Addr != DefaultMetricsAddress {
		t.Errorf("address = %q, want %q", m.Server.Addr, DefaultMetricsAddress)
	}

	m = NewMetrics(Config{Address: "127.0.0.1:9100", ServiceName: "searchspec"})
	if m.Server.Addr != "127.0.0.1:9100" {
		t.Errorf("address = %q, want %q", m.Server.Addr, "127.0.0.1:9100")
	}
}

func TestFactoriesRegisterWithServiceLabelAndNamespace(t *testing.T) {
	m := NewMetrics(Config{Namespace: "searchspec", ServiceName: "searchspec-test"})

	counter := m.CreateCounter("requests_total", "Total number of processed requests.", []string{"status"})
	counter.WithLabelValues("success").Inc()
	counter.WithLabelValues("success").Inc()

	histogram := m.CreateHistogram("request_duration_seconds", "Request duration in seconds.", []string{"endpoint"}, prometheus.DefBuckets)
	histogram.WithLabelValues("/search").Observe(0.042)

	gauge := m.CreateGauge("queue_depth", "Current depth of the ingest queue.", []string{"queue"})
	gauge.WithLabelValues("ingest").Set(7)

	if got := testutil.ToFloat64(counter.WithLabelValues("success")); got != 2 {
		t.Errorf("counter value = %v, want 2", got)
	}
	if got := testutil.ToFloat64(gauge.WithLabelValues("ingest")); got != 7 {
		t.Errorf("gauge value = %v, want 7", got)
	}

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	gathered := make(map[string]bool, len(families))
	for _, family := range families {
		gathered[family.GetName()] = true
		for _, metric := range family.GetMetric() {
			service := ""
			for _, label := range metric.GetLabel() {
				if label.GetName() == "service" {
					service = label.GetValue()
				}
			}
			if service != "searchspec-test" {
				t.Errorf("metric %s is missing the service label", family.GetName())
			}
		}
	}
	for _, name := range []string{
		"searchspec_requests_total",
		"searchspec_request_duration_seconds",
		"searchspec_queue_depth",
	} {
		if !gathered[name] {
			t.Errorf("metric %q was not gathered", name)
		}
	}
}

func TestDefaultCollectorsRegistered(t *testing.T) {
	m := NewMetrics(Config{EnableDefaultCollectors: true, ServiceName: "searchspec-test"})

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	gathered := make(map[string]bool, len(families))
	for _, family := range families {
		gathered[family.GetName()] = true
	}
	if !gathered["go_goroutines"] {
		t.Error("go runtime collector metrics are missing")
	}
	if !gathered["process_cpu_seconds_total"] {
		t.Error("process collector metrics are missing")
	}
}

func TestHandlerServesExposition(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "searchspec-test"})
	counter := m.CreateCounter("scrapes_total", "Total number of scrape checks.", []string{"status"})
	counter.WithLabelValues("success").Inc()

	body := scrapeMetrics(t, m)
	if want := `scrapes_total{service="searchspec-test",status="success"} 1`; !strings.Contains(body, want) {
		t.Errorf("scrape output missing %q", want)
	}
}
