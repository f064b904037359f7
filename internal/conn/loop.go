// Package conn implements the connection-establishment loop: drive a
// balancer.Balancer to pick an endpoint, DNS-precheck it, hand it to a
// session constructor, and decide whether to keep a working session or
// discard it in favor of a strictly better endpoint.
package conn

import (
	"context"
	"errors"
	"time"

	"zk-connbalancer/internal/applog"
	"zk-connbalancer/internal/balancer"
	"zk-connbalancer/internal/coordsession"
	"zk-connbalancer/internal/dnsprobe"
	"zk-connbalancer/internal/metrics"
)

// Options configures one CreateClient call.
type Options struct {
	// Cluster names the cluster configuration, used only for logging and
	// metrics labels.
	Cluster string
	Balancer    balancer.Balancer
	DNSProber   dnsprobe.Prober
	Construct   coordsession.Constructor
	ClusterArgs any

	// FallbackMinSeconds/FallbackMaxSeconds bound the shortened session
	// lifetime requested when a non-optimal endpoint was selected.
	FallbackMinSeconds int
	FallbackMaxSeconds int

	// Policy labels metrics; it has no effect on behavior.
	Policy string
}

// CreateClient drives the connection loop until it returns a live Session
// or every endpoint has failed, in which case it returns
// ErrConnectionLossDNS (if a DNS error was observed along the way) or
// ErrConnectionLoss.
func CreateClient(ctx context.Context, opts Options) (coordsession.Session, error) {
	start := time.Now()
	sess, err := runLoop(ctx, opts)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	metrics.ObserveConnectLoop(opts.Cluster, outcome, time.Since(start))
	return sess, err
}

func runLoop(ctx context.Context, opts Options) (coordsession.Session, error) {
	dnsErrorOccurred := false

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := opts.Balancer.SelectNext()
		if err != nil {
			if errors.Is(err, balancer.ErrAllConnectionTriesFailed) {
				metrics.ObserveReset(opts.Cluster)
				metrics.ObserveExhausted(opts.Cluster, dnsErrorOccurred)
				applog.Exhausted(opts.Cluster, dnsErrorOccurred)
				if dnsErrorOccurred {
					return nil, ErrConnectionLossDNS
				}
				return nil, ErrConnectionLoss
			}
			return nil, err
		}

		metrics.ObserveSelection(opts.Cluster, opts.Policy, !info.Settings.UseFallbackSessionLifetime)
		applog.SelectedEndpoint(opts.Cluster, info.ID, info.Address, info.Settings.UseFallbackSessionLifetime)

		probe := opts.DNSProber.Probe(ctx, info.Address)
		switch {
		case probe.HostNotFound:
			metrics.ObserveDNSProbe(opts.Cluster, "host_not_found")
			applog.DNSFailure(opts.Cluster, info.ID, info.Address, false, errHostNotFound)
			opts.Balancer.MarkOffline(info.ID)
			metrics.ObserveMarkOffline(opts.Cluster)
			continue
		case probe.TransientError:
			metrics.ObserveDNSProbe(opts.Cluster, "transient")
			applog.DNSFailure(opts.Cluster, info.ID, info.Address, true, errTransientDNS)
			dnsErrorOccurred = true
			opts.Balancer.MarkOffline(info.ID)
			metrics.ObserveMarkOffline(opts.Cluster)
			continue
		}
		metrics.ObserveDNSProbe(opts.Cluster, "ok")

		sess, err := opts.Construct(ctx, coordsession.Args{
			Address:       info.Address,
			OriginalIndex: info.ID,
			Secure:        info.Secure,
		}, opts.ClusterArgs)
		if err != nil {
			metrics.ObserveSessionAttempt(opts.Cluster, "failed")
			applog.SessionFailure(opts.Cluster, info.ID, info.Address, err)
			opts.Balancer.MarkOffline(info.ID)
			metrics.ObserveMarkOffline(opts.Cluster)
			continue
		}
		metrics.ObserveSessionAttempt(opts.Cluster, "ok")

		opts.Balancer.MarkOnline(info.ID)
		metrics.ObserveMarkOnline(opts.Cluster)

		optimal := !info.Settings.UseFallbackSessionLifetime
		applog.SessionEstablished(opts.Cluster, info.ID, info.Address, optimal)

		if info.Settings.UseFallbackSessionLifetime {
			if _, err := sess.SetClientSessionDeadline(opts.FallbackMinSeconds, opts.FallbackMaxSeconds); err != nil {
				_ = sess.Close()
				continue
			}
		}

		if opts.Balancer.HasBetter(info.ID) {
			applog.ContinuingForBetterHost(opts.Cluster, info.ID, info.Address)
			_ = sess.Close()
			continue
		}

		return sess, nil
	}
}

var (
	errHostNotFound = errors.New("dns: host not found")
	errTransientDNS = errors.New("dns: transient resolution failure")
)
