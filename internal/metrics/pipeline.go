package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and agent pipeline Prometheus metrics.
var (
	SearchRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatdock",
			Name:      "search_rows_total",
			Help:      "Total flattened rows returned by the full-text index",
		},
	)

	SearchRepairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatdock",
			Name:      "search_repairs_total",
			Help:      "Total search rows repaired due to mismatched message projections",
		},
	)

	AgentStepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatdock",
			Name:      "agent_steps_total",
			Help:      "Total agent task steps executed",
		},
	)

	AgentStepRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chatdock",
			Name:      "agent_step_retries_total",
			Help:      "Total agent step failures that were retried",
		},
	)

	AgentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chatdock",
			Name:      "agent_runs_total",
			Help:      "Total agent task runs",
		},
		[]string{"status"}, // "success" / "error"
	)

	AgentRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chatdock",
			Name:      "agent_request_duration_seconds",
			Help:      "Agent provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers the pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRowsTotal)
	prometheus.MustRegister(SearchRepairsTotal)
	prometheus.MustRegister(AgentStepsTotal)
	prometheus.MustRegister(AgentStepRetriesTotal)
	prometheus.MustRegister(AgentRunsTotal)
	prometheus.MustRegister(AgentRequestDuration)
	pipelineMetricsRegistered = true
}
