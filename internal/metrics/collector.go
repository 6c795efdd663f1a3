package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Classification metrics
	LinesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loglens_lines_classified_total",
			Help: "Lines counted per primary severity level",
		},
		[]string{"level"},
	)
	LinesUnmatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loglens_lines_unmatched_total",
			Help: "Lines matching no severity level",
		},
	)

	// Tail metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loglens_tail_active_sessions",
			Help: "Number of active tail sessions",
		},
	)
	DeltaBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loglens_tail_delta_bytes_total",
			Help: "Total appended bytes emitted by tail sessions",
		},
	)
	Truncations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loglens_tail_truncations_total",
			Help: "Total truncation events observed on tailed files",
		},
	)
	TailErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loglens_tail_errors_total",
			Help: "Tail sessions force-stopped due to I/O errors",
		},
	)
)
