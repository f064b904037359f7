package balancer

import (
	"zk-connbalancer/internal/distance"
	"zk-connbalancer/internal/registry"
)

// priorityFunc computes a non-negative priority for an endpoint. Lower
// values rank higher. It is evaluated exactly once per endpoint, at
// balancer construction.
type priorityFunc func(ep registry.Endpoint) int

func inOrderPriority(ep registry.Endpoint) int {
	return ep.ID
}

func nearestHostnamePriority(local string) priorityFunc {
	return func(ep registry.Endpoint) int {
		return distance.PrefixDistance(local, ep.Address)
	}
}

func levenshteinPriority(local string) priorityFunc {
	return func(ep registry.Endpoint) int {
		return distance.Levenshtein(local, ep.Address)
	}
}

// priorityBalancer picks endpoints by a fixed priority vector computed once
// at construction: lower values rank higher, ties broken by lowest id.
type priorityBalancer struct {
	reg        *registry.Registry
	priority   []int // priority[id]
	minPriority int
}

func newPriorityBalancer(reg *registry.Registry, fn priorityFunc) *priorityBalancer {
	endpoints := reg.All()
	priority := make([]int, len(endpoints))
	minPriority := 0
	for i, ep := range endpoints {
		p := fn(ep)
		priority[i] = p
		if i == 0 || p < minPriority {
			minPriority = p
		}
	}
	return &priorityBalancer{reg: reg, priority: priority, minPriority: minPriority}
}

// bestAmong returns the id with the lowest priority (ties broken by lowest
// id) among ids, and whether ids was non-empty.
func (b *priorityBalancer) bestAmong(ids []int) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	best := ids[0]
	for _, id := range ids[1:] {
		if b.priority[id] < b.priority[best] {
			best = id
		}
	}
	return best, true
}

func (b *priorityBalancer) SelectNext() (EndpointInfo, error) {
	if online := b.reg.IDsWithStatus(registry.StatusOnline); len(online) > 0 {
		id, _ := b.bestAmong(online)
		return b.infoFor(id), nil
	}
	if undef := b.reg.IDsWithStatus(registry.StatusUndef); len(undef) > 0 {
		id, _ := b.bestAmong(undef)
		return b.infoFor(id), nil
	}
	b.reg.ResetOffline()
	return EndpointInfo{}, ErrAllConnectionTriesFailed
}

func (b *priorityBalancer) infoFor(id int) EndpointInfo {
	ep, _ := b.reg.Get(id)
	optimal := b.priority[id] == b.minPriority
	return endpointInfo(ep, !optimal)
}

func (b *priorityBalancer) MarkOnline(id int)  { b.reg.MarkOnline(id) }
func (b *priorityBalancer) MarkOffline(id int) { b.reg.MarkOffline(id) }
func (b *priorityBalancer) ResetOffline()      { b.reg.ResetOffline() }
func (b *priorityBalancer) TotalCount() int    { return b.reg.Size() }
func (b *priorityBalancer) AvailableCount() int {
	return b.reg.AvailableCount()
}

// HasBetter reports whether the best-ranked ONLINE endpoint differs from
// currentID: "the best online endpoint is not current".
func (b *priorityBalancer) HasBetter(currentID int) bool {
	online := b.reg.IDsWithStatus(registry.StatusOnline)
	best, ok := b.bestAmong(online)
	return ok && best != currentID
}

// WorthChecking returns every UNDEF/OFFLINE endpoint, restricted to those
// that strictly outrank currentID when one is given: with no current
// endpoint, every not-yet-established endpoint is worth checking; with one,
// only strictly better-priority endpoints are.
func (b *priorityBalancer) WorthChecking(currentID *int) []EndpointInfo {
	var out []EndpointInfo
	candidates := append(b.reg.IDsWithStatus(registry.StatusUndef), b.reg.IDsWithStatus(registry.StatusOffline)...)
	for _, id := range candidates {
		if currentID != nil && !(b.priority[id] < b.priority[*currentID]) {
			continue
		}
		out = append(out, b.infoFor(id))
	}
	return out
}
