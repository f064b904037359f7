package balancer

import (
	"math/rand"

	"zk-connbalancer/internal/registry"
)

// firstOrRandomBalancer strongly prefers endpoint 0 (the designated
// primary), falling back to a uniform pick among the rest when 0 is
// offline.
type firstOrRandomBalancer struct {
	reg *registry.Registry
}

func newFirstOrRandomBalancer(reg *registry.Registry) *firstOrRandomBalancer {
	return &firstOrRandomBalancer{reg: reg}
}

const primaryID = 0

func (b *firstOrRandomBalancer) SelectNext() (EndpointInfo, error) {
	switch b.reg.Status(primaryID) {
	case registry.StatusOnline:
		return b.infoFor(primaryID, false), nil
	}

	if online := b.reg.IDsWithStatus(registry.StatusOnline); len(online) > 0 {
		id := online[rand.Intn(len(online))]
		return b.infoFor(id, true), nil
	}

	if b.reg.Status(primaryID) == registry.StatusUndef {
		return b.infoFor(primaryID, false), nil
	}

	if undef := b.reg.IDsWithStatus(registry.StatusUndef); len(undef) > 0 {
		id := undef[rand.Intn(len(undef))]
		return b.infoFor(id, true), nil
	}

	b.reg.ResetOffline()
	return EndpointInfo{}, ErrAllConnectionTriesFailed
}

func (b *firstOrRandomBalancer) infoFor(id int, fallback bool) EndpointInfo {
	ep, _ := b.reg.Get(id)
	return endpointInfo(ep, fallback)
}

func (b *firstOrRandomBalancer) MarkOnline(id int)  { b.reg.MarkOnline(id) }
func (b *firstOrRandomBalancer) MarkOffline(id int) { b.reg.MarkOffline(id) }
func (b *firstOrRandomBalancer) ResetOffline()      { b.reg.ResetOffline() }
func (b *firstOrRandomBalancer) TotalCount() int    { return b.reg.Size() }
func (b *firstOrRandomBalancer) AvailableCount() int {
	return b.reg.AvailableCount()
}

func (b *firstOrRandomBalancer) HasBetter(currentID int) bool {
	return b.reg.Status(primaryID) == registry.StatusOnline && currentID != primaryID
}

func (b *firstOrRandomBalancer) WorthChecking(currentID *int) []EndpointInfo {
	if currentID != nil && *currentID == primaryID {
		return nil
	}
	if b.reg.Size() == 0 {
		return nil
	}
	return []EndpointInfo{b.infoFor(primaryID, false)}
}
