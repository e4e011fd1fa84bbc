package metrics

import "github.com/prometheus/client_golang/prometheus"

// Store Prometheus metrics.
var (
	DocumentWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gettajob",
			Name:      "document_writes_total",
			Help:      "Total number of documents written per collection",
		},
		[]string{"collection"},
	)

	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gettajob",
			Name:      "validation_failures_total",
			Help:      "Total number of schema validation failures per collection",
		},
		[]string{"collection"},
	)

	ReferentialWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gettajob",
			Name:      "referential_warnings_total",
			Help:      "Total number of writes referencing a missing parent document",
		},
		[]string{"collection", "parent"},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gettajob",
			Name:      "search_queries_total",
			Help:      "Total number of search queries per index",
		},
		[]string{"index"},
	)

	SeedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gettajob",
			Name:      "seed_documents_total",
			Help:      "Total number of seed documents per collection and outcome",
		},
		[]string{"collection", "status"}, // "loaded" / "rejected"
	)
)

var metricsRegistered bool

// Register registers Prometheus store metrics. Must be called once from main.
func Register() {
	if metricsRegistered {
		return
	}
	prometheus.MustRegister(DocumentWritesTotal)
	prometheus.MustRegister(ValidationFailuresTotal)
	prometheus.MustRegister(ReferentialWarningsTotal)
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SeedDocumentsTotal)
	metricsRegistered = true
}
