package balancer

import (
	"math/rand"

	"zk-connbalancer/internal/registry"
)

// randomBalancer samples uniformly from ONLINE endpoints, falling back to
// UNDEF ones. Every selection is reported as policy-optimal: the random
// policy has no notion of a "better" endpoint.
type randomBalancer struct {
	reg *registry.Registry
}

func newRandomBalancer(reg *registry.Registry) *randomBalancer {
	return &randomBalancer{reg: reg}
}

func (b *randomBalancer) SelectNext() (EndpointInfo, error) {
	if ids := b.reg.IDsWithStatus(registry.StatusOnline); len(ids) > 0 {
		return b.pick(ids)
	}
	if ids := b.reg.IDsWithStatus(registry.StatusUndef); len(ids) > 0 {
		return b.pick(ids)
	}
	b.reg.ResetOffline()
	return EndpointInfo{}, ErrAllConnectionTriesFailed
}

func (b *randomBalancer) pick(ids []int) (EndpointInfo, error) {
	id := ids[rand.Intn(len(ids))]
	ep, _ := b.reg.Get(id)
	return endpointInfo(ep, false), nil
}

func (b *randomBalancer) MarkOnline(id int)  { b.reg.MarkOnline(id) }
func (b *randomBalancer) MarkOffline(id int) { b.reg.MarkOffline(id) }
func (b *randomBalancer) ResetOffline()      { b.reg.ResetOffline() }
func (b *randomBalancer) TotalCount() int    { return b.reg.Size() }
func (b *randomBalancer) AvailableCount() int {
	return b.reg.AvailableCount()
}
func (b *randomBalancer) WorthChecking(currentID *int) []EndpointInfo { return nil }
func (b *randomBalancer) HasBetter(currentID int) bool                { return false }
