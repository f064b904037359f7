// Package dnsprobe implements the DNS pre-check the connection loop runs
// before every connect attempt: resolve the endpoint's host, distinguishing
// "host not found" (permanent, for this attempt) from transient resolver
// failures.
//
// This intentionally stays a thin boolean probe, per this package's intended scope:
// full socket-address construction and connection dialing belong to the
// session constructor, not here. The standard library's net.Resolver is
// used rather than a third-party DNS client (e.g. miekg/dns, which several
// repos in the retrieval pack depend on): that library speaks the DNS wire
// protocol directly and is suited to building/answering queries, not to
// reproducing the platform resolver's behavior (hosts file, search
// domains, NSS) that a real coordination client must honor.
package dnsprobe

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Result is the outcome of one Probe call.
type Result struct {
	OK             bool
	HostNotFound   bool
	TransientError bool
}

// Prober resolves an endpoint address and reports whether the host was
// found, not found, or failed transiently.
type Prober interface {
	// Probe resolves address fresh: every call hits the resolver, so a
	// name that was just repaired (or just broke) is reflected
	// immediately.
	Probe(ctx context.Context, address string) Result
}

// ResolverProber is the default Prober, backed by net.Resolver. It holds
// no state of its own: a resolution cache has no reachable hit path here,
// since every connect attempt must re-resolve rather than trust a
// possibly-stale prior answer.
type ResolverProber struct {
	resolver *net.Resolver
}

// NewResolverProber returns a Prober using the given resolver (nil selects
// net.DefaultResolver).
func NewResolverProber(resolver *net.Resolver) *ResolverProber {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &ResolverProber{resolver: resolver}
}

// Probe resolves the host portion of address (stripping any ":port").
func (p *ResolverProber) Probe(ctx context.Context, address string) Result {
	host := address
	if h, _, err := net.SplitHostPort(address); err == nil {
		host = h
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return Result{TransientError: true}
	}

	_, err := p.resolver.LookupHost(ctx, host)
	if err == nil {
		return Result{OK: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return Result{HostNotFound: true}
		}
		return Result{TransientError: true}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Result{TransientError: true}
	}
	return Result{TransientError: true}
}
