package balancer

import (
	"sync"

	"zk-connbalancer/internal/registry"
)

// roundRobinBalancer rotates through endpoints in id order, regardless of
// status. Every call advances the cursor past whatever it returns, so a
// repeated SelectNext/MarkOnline sequence visits every id in order before
// repeating; OFFLINE endpoints are skipped over without consuming a turn.
type roundRobinBalancer struct {
	reg *registry.Registry

	mu     sync.Mutex
	cursor int
}

func newRoundRobinBalancer(reg *registry.Registry) *roundRobinBalancer {
	return &roundRobinBalancer{reg: reg}
}

func (b *roundRobinBalancer) SelectNext() (EndpointInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.reg.Size()
	for i := 0; i < n; i++ {
		id := (b.cursor + i) % n
		if st := b.reg.Status(id); st == registry.StatusOnline || st == registry.StatusUndef {
			b.cursor = (id + 1) % n
			return b.infoFor(id), nil
		}
	}

	b.reg.ResetOffline()
	return EndpointInfo{}, ErrAllConnectionTriesFailed
}

func (b *roundRobinBalancer) infoFor(id int) EndpointInfo {
	ep, _ := b.reg.Get(id)
	return endpointInfo(ep, false)
}

func (b *roundRobinBalancer) MarkOnline(id int)  { b.reg.MarkOnline(id) }
func (b *roundRobinBalancer) MarkOffline(id int) { b.reg.MarkOffline(id) }
func (b *roundRobinBalancer) ResetOffline()      { b.reg.ResetOffline() }
func (b *roundRobinBalancer) TotalCount() int    { return b.reg.Size() }
func (b *roundRobinBalancer) AvailableCount() int {
	return b.reg.AvailableCount()
}
func (b *roundRobinBalancer) WorthChecking(currentID *int) []EndpointInfo { return nil }
func (b *roundRobinBalancer) HasBetter(currentID int) bool                { return false }
