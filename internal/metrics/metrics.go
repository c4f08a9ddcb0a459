package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK         = "ok"
	OutcomeNoDocument = "no_document"
	OutcomeParseError = "parse_error"
	OutcomeIllegal    = "illegal_move"
	OutcomeCacheHit   = "cache_hit"
)

var (
	DocumentLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linebook_document_loads_total",
		Help: "Documents loaded, by outcome",
	}, []string{"outcome"})

	CompileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linebook_compile_duration_seconds",
		Help:    "Time to parse and compile a document",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})

	DocumentPlies = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linebook_document_plies",
		Help:    "Depth of compiled documents in plies",
		Buckets: []float64{1, 5, 10, 20, 40, 80, 160},
	})

	ShareTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linebook_share_tokens_total",
		Help: "Share tokens produced and opened, by direction and outcome",
	}, []string{"direction", "outcome"})
)
