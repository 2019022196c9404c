package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query pipeline Prometheus metrics.
var (
	// CatalogDocumentsLoadedTotal counts documents read and embedded per query.
	// Every query loads the whole collection, so this grows by the catalog size per call.
	CatalogDocumentsLoadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_documents_loaded_total",
			Help:      "Catalog documents loaded into per-query indexes",
		},
		[]string{"mode"},
	)

	CoercionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coercion_failures_total",
			Help:      "Generation outputs that did not match the expected JSON shape",
		},
		[]string{"mode", "reason"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Queries by mode and outcome",
		},
		[]string{"mode", "result"}, // ok / input / no_tags / upstream
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers query pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogDocumentsLoadedTotal)
	prometheus.MustRegister(CoercionFailuresTotal)
	prometheus.MustRegister(QueriesTotal)
	pipelineMetricsRegistered = true
}
