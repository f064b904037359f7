package applog

import (
	"fmt"
)

// commonLabels builds the label set attached to every balancer/connection
// log line.
func commonLabels(cluster, address string, endpointID int, extra map[string]string) map[string]string {
	labels := map[string]string{
		"cluster":     cluster,
		"address":     address,
		"endpoint_id": fmt.Sprintf("%d", endpointID),
		"host":        MustHostname(),
	}
	for k, v := range extra {
		labels[k] = v
	}
	return labels
}

// SelectedEndpoint logs a successful selection before the connection loop
// attempts it.
func SelectedEndpoint(cluster string, endpointID int, address string, fallback bool) {
	line := fmt.Sprintf("SELECT cluster=%s endpoint=%d address=%s fallback_lifetime=%t", cluster, endpointID, address, fallback)
	Emit("info", "balancer", commonLabels(cluster, address, endpointID, nil), line)
}

// DNSFailure logs a DNS pre-check failure and whether it was transient.
func DNSFailure(cluster string, endpointID int, address string, transient bool, err error) {
	kind := "host_not_found"
	if transient {
		kind = "transient"
	}
	line := fmt.Sprintf("DNS_FAIL cluster=%s endpoint=%d address=%s kind=%s err=%v", cluster, endpointID, address, kind, err)
	Emit("error", "balancer", commonLabels(cluster, address, endpointID, map[string]string{"dns_kind": kind}), line)
}

// SessionFailure logs a failed session-construction attempt.
func SessionFailure(cluster string, endpointID int, address string, err error) {
	line := fmt.Sprintf("SESSION_FAIL cluster=%s endpoint=%d address=%s err=%v", cluster, endpointID, address, err)
	Emit("error", "balancer", commonLabels(cluster, address, endpointID, nil), line)
}

// SessionEstablished logs a successful session construction.
func SessionEstablished(cluster string, endpointID int, address string, optimal bool) {
	line := fmt.Sprintf("SESSION_OK cluster=%s endpoint=%d address=%s optimal=%t", cluster, endpointID, address, optimal)
	Emit("info", "balancer", commonLabels(cluster, address, endpointID, nil), line)
}

// ContinuingForBetterHost logs that the loop discarded a working session
// because a strictly preferred endpoint is available.
func ContinuingForBetterHost(cluster string, endpointID int, address string) {
	line := fmt.Sprintf("CONTINUE_FOR_BETTER cluster=%s endpoint=%d address=%s", cluster, endpointID, address)
	Emit("info", "balancer", commonLabels(cluster, address, endpointID, nil), line)
}

// Exhausted logs that every endpoint was tried and failed this round.
func Exhausted(cluster string, dnsErrorOccurred bool) {
	line := fmt.Sprintf("EXHAUSTED cluster=%s dns_error_occurred=%t", cluster, dnsErrorOccurred)
	Emit("error", "balancer", map[string]string{"cluster": cluster, "host": MustHostname()}, line)
}
