package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry for one service together with
// the HTTP server that exposes it for scraping. Collectors created
// through the factory methods land on the registry with a constant
// service label and the configured namespace prefix.
type Metrics struct {
	Server   *http.Server
	Registry *prometheus.Registry

	registerer  prometheus.Registerer
	namespace   string
	serviceName string
}

func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	server := &http.Server{
		Addr:    address,
		Handler: handler,
	}

	return &Metrics{
		Server:      server,
		Registry:    registry,
		registerer:  wrappedRegistry,
		namespace:   cfg.Namespace,
		serviceName: cfg.ServiceName,
	}
}
