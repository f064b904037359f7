// Package balancer implements the client-side connection balancer: the
// endpoint registry's policies, the uniform facade the connection loop
// drives, and the process-wide table of balancer instances keyed by
// cluster name.
package balancer

import (
	"fmt"
	"strings"

	"zk-connbalancer/internal/registry"
)

// Policy names one of the six configurable balancing policies. The string values
// match the configuration tokens accepted by internal/config.
type Policy string

const (
	PolicyRandom                      Policy = "RANDOM"
	PolicyNearestHostname             Policy = "NEAREST_HOSTNAME"
	PolicyHostnameLevenshteinDistance Policy = "HOSTNAME_LEVENSHTEIN_DISTANCE"
	PolicyInOrder                     Policy = "IN_ORDER"
	PolicyFirstOrRandom               Policy = "FIRST_OR_RANDOM"
	PolicyRoundRobin                  Policy = "ROUND_ROBIN"
)

// SessionSettings accompanies a selection and tells the connection loop how
// to size the resulting session's lifetime.
type SessionSettings struct {
	// UseFallbackSessionLifetime is true when the selected endpoint is not
	// policy-optimal: the caller should shorten the session so the
	// balancer is re-consulted sooner.
	UseFallbackSessionLifetime bool
}

// EndpointInfo is what a policy hands back to the connection loop: enough
// to dial the endpoint plus the session-lifetime hint.
type EndpointInfo struct {
	ID      int
	Address string
	Secure  bool
	Settings SessionSettings
}

// Balancer is the uniform interface the connection loop drives. Every
// policy implementation satisfies it; selection, marking, and introspection
// never block beyond registry bookkeeping.
type Balancer interface {
	// SelectNext returns the next endpoint to try. It returns
	// ErrAllConnectionTriesFailed, after resetting OFFLINE statuses back to
	// UNDEF, if no endpoint is ONLINE or UNDEF.
	SelectNext() (EndpointInfo, error)
	MarkOnline(id int)
	MarkOffline(id int)
	ResetOffline()
	TotalCount() int
	AvailableCount() int
	// WorthChecking returns endpoints the caller might speculatively probe
	// in the background. currentID is nil when there is no active
	// connection to compare against.
	WorthChecking(currentID *int) []EndpointInfo
	// HasBetter reports whether a strictly preferred endpoint is currently
	// ONLINE.
	HasBetter(currentID int) bool
}

// HostSpec is one parsed configuration entry.
type HostSpec struct {
	Address string
	Secure  bool
}

// ParseHostSpec splits the "secure://" prefix (if present) from a
// configured host string, matching the secure:// scheme convention.
func ParseHostSpec(raw string) HostSpec {
	const securePrefix = "secure://"
	if strings.HasPrefix(raw, securePrefix) {
		return HostSpec{Address: strings.TrimPrefix(raw, securePrefix), Secure: true}
	}
	return HostSpec{Address: raw}
}

// LocalHostnameFunc resolves the local hostname used by hostname-distance
// priority functions. It is a function, not a bare string, so callers can
// defer the (fallible) os.Hostname lookup until a priority policy actually
// needs it.
type LocalHostnameFunc func() (string, error)

// New builds a Balancer for the given policy over hosts. hosts must be
// non-empty or New returns ErrBadArguments. localHostname is only invoked
// for PolicyNearestHostname and PolicyHostnameLevenshteinDistance.
func New(policy Policy, hosts []string, localHostname LocalHostnameFunc) (Balancer, error) {
	if len(hosts) == 0 {
		return nil, ErrBadArguments
	}

	reg := registry.New()
	specs := make([]HostSpec, 0, len(hosts))
	for _, h := range hosts {
		spec := ParseHostSpec(h)
		specs = append(specs, spec)
		reg.Add(spec.Address, spec.Secure)
	}

	switch policy {
	case PolicyRandom:
		return newRandomBalancer(reg), nil
	case PolicyRoundRobin:
		return newRoundRobinBalancer(reg), nil
	case PolicyFirstOrRandom:
		return newFirstOrRandomBalancer(reg), nil
	case PolicyInOrder:
		return newPriorityBalancer(reg, inOrderPriority), nil
	case PolicyNearestHostname:
		local, err := resolveLocalHostname(localHostname)
		if err != nil {
			return nil, fmt.Errorf("resolving local hostname for %s policy: %w", policy, err)
		}
		return newPriorityBalancer(reg, nearestHostnamePriority(local)), nil
	case PolicyHostnameLevenshteinDistance:
		local, err := resolveLocalHostname(localHostname)
		if err != nil {
			return nil, fmt.Errorf("resolving local hostname for %s policy: %w", policy, err)
		}
		return newPriorityBalancer(reg, levenshteinPriority(local)), nil
	default:
		return nil, fmt.Errorf("unknown balancing policy %q", policy)
	}
}

func resolveLocalHostname(f LocalHostnameFunc) (string, error) {
	if f == nil {
		return "", fmt.Errorf("no local hostname provider configured")
	}
	return f()
}

// endpointInfo builds an EndpointInfo from a registry endpoint and the
// fallback flag.
func endpointInfo(ep registry.Endpoint, useFallback bool) EndpointInfo {
	return EndpointInfo{
		ID:      ep.ID,
		Address: ep.Address,
		Secure:  ep.Secure,
		Settings: SessionSettings{
			UseFallbackSessionLifetime: useFallback,
		},
	}
}
