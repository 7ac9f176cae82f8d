package registry

import (
	"fmt"
	"sync"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

// Registry holds the set of capabilities the model may invoke. The set is
// fixed at process start; Register is only called during wiring.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]domain.Capability

	// order preserves registration order so DescribeAll is stable for the
	// process lifetime and the model's tool selection is reproducible.
	order []string
}

func New() *Registry {
	return &Registry{
		byName: make(map[string]domain.Capability),
	}
}

// Register adds a capability. Registering the same name twice is a wiring bug.
func (r *Registry) Register(c domain.Capability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCapability, name)
	}

	r.byName[name] = c
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on a duplicate name. Used at wiring time where a
// duplicate is unrecoverable.
func (r *Registry) MustRegister(caps ...domain.Capability) {
	for _, c := range caps {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the capability registered under name.
func (r *Registry) Resolve(name string) (domain.Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCapability, name)
	}
	return c, nil
}

// DescribeAll returns descriptors for every capability, in registration order.
func (r *Registry) DescribeAll() []domain.CapabilityDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CapabilityDescriptor, 0, len(r.order))
	for _, name := range r.order {
		c := r.byName[name]
		out = append(out, domain.CapabilityDescriptor{
			Name:        c.Name(),
			Description: c.Description(),
			Parameters:  c.ParameterSchema(),
		})
	}
	return out
}
