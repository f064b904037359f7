package balancer

import (
	"fmt"
	"sync"
)

// Table is the process-wide registry of balancer instances keyed by
// cluster configuration name. Instances are constructed eagerly by
// Register rather than lazily on first lookup, so there is no first-use
// initialization race to guard against; Table only needs to serialize
// access to the underlying map.
type Table struct {
	mu        sync.Mutex
	instances map[string]Balancer
}

// NewTable returns an empty table, meant to be populated once at process
// startup.
func NewTable() *Table {
	return &Table{instances: make(map[string]Balancer)}
}

// Register eagerly constructs the balancer for name and stores it. It
// returns an error if name is already registered or if New fails.
func (t *Table) Register(name string, policy Policy, hosts []string, localHostname LocalHostnameFunc) (Balancer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.instances[name]; exists {
		return nil, fmt.Errorf("balancer table: cluster %q already registered", name)
	}
	b, err := New(policy, hosts, localHostname)
	if err != nil {
		return nil, fmt.Errorf("balancer table: registering cluster %q: %w", name, err)
	}
	t.instances[name] = b
	return b, nil
}

// Get returns the balancer registered for name, if any.
func (t *Table) Get(name string) (Balancer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.instances[name]
	return b, ok
}
