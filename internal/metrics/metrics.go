// Package metrics defines Prometheus metrics for the connection balancer:
// selection outcomes, status transitions, DNS probe results, and session
// construction attempts. Labels stay low-cardinality (cluster name, policy,
// bounded outcome enums) so per-endpoint addresses never land in a label
// value.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// selectionsTotal counts balancer selections by cluster, policy, and
	// whether the pick was policy-optimal.
	selectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_selections_total",
			Help: "Total endpoint selections by cluster, policy, and optimality",
		},
		[]string{"cluster", "policy", "optimal"},
	)
	// markTransitionsTotal counts MarkOnline/MarkOffline calls by cluster
	// and resulting status.
	markTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_mark_transitions_total",
			Help: "Total status transitions recorded by the balancer by cluster and status",
		},
		[]string{"cluster", "status"},
	)
	// resetsTotal counts the resetOffline that SelectNext performs on
	// exhaustion, as recorded by the connection loop; explicit ResetOffline
	// calls are not counted.
	resetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_resets_total",
			Help: "Total resetOffline invocations by cluster",
		},
		[]string{"cluster"},
	)
	// exhaustedTotal counts ALL_CONNECTION_TRIES_FAILED occurrences by
	// cluster and whether a DNS error was observed along the way.
	exhaustedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_exhausted_total",
			Help: "Total times every endpoint was unavailable, by cluster and dns_error_occurred",
		},
		[]string{"cluster", "dns_error_occurred"},
	)
	// dnsProbesTotal counts DNS pre-check outcomes by cluster and result.
	dnsProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_dns_probes_total",
			Help: "Total DNS pre-check outcomes by cluster and result",
		},
		[]string{"cluster", "result"},
	)
	// sessionAttemptsTotal counts session-construction outcomes by cluster
	// and result.
	sessionAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balancer_session_attempts_total",
			Help: "Total session-construction outcomes by cluster and result",
		},
		[]string{"cluster", "result"},
	)
	// connectLoopDuration observes how long CreateClient spends selecting,
	// probing, and connecting before it returns.
	connectLoopDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "balancer_connect_loop_duration_seconds",
			Help:    "Time CreateClient spends selecting, probing and connecting before returning",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cluster", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		selectionsTotal,
		markTransitionsTotal,
		resetsTotal,
		exhaustedTotal,
		dnsProbesTotal,
		sessionAttemptsTotal,
		connectLoopDuration,
	)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ObserveSelection records one balancer selection.
func ObserveSelection(cluster, policy string, optimal bool) {
	selectionsTotal.WithLabelValues(cluster, policy, boolLabel(optimal)).Inc()
}

// ObserveMarkOnline records a MarkOnline transition.
func ObserveMarkOnline(cluster string) {
	markTransitionsTotal.WithLabelValues(cluster, "online").Inc()
}

// ObserveMarkOffline records a MarkOffline transition.
func ObserveMarkOffline(cluster string) {
	markTransitionsTotal.WithLabelValues(cluster, "offline").Inc()
}

// ObserveReset records a resetOffline invocation.
func ObserveReset(cluster string) { resetsTotal.WithLabelValues(cluster).Inc() }

// ObserveExhausted records an ALL_CONNECTION_TRIES_FAILED occurrence.
func ObserveExhausted(cluster string, dnsErrorOccurred bool) {
	exhaustedTotal.WithLabelValues(cluster, boolLabel(dnsErrorOccurred)).Inc()
}

// ObserveDNSProbe records one DNS pre-check outcome ("ok", "host_not_found",
// or "transient").
func ObserveDNSProbe(cluster, result string) {
	dnsProbesTotal.WithLabelValues(cluster, result).Inc()
}

// ObserveSessionAttempt records one session-construction outcome ("ok" or
// "failed").
func ObserveSessionAttempt(cluster, result string) {
	sessionAttemptsTotal.WithLabelValues(cluster, result).Inc()
}

// ObserveConnectLoop records how long one CreateClient call took and
// whether it succeeded.
func ObserveConnectLoop(cluster, outcome string, d time.Duration) {
	connectLoopDuration.WithLabelValues(cluster, outcome).Observe(d.Seconds())
}
