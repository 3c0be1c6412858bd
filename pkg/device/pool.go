package device

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// Pool arbitrates exclusive, time-bounded allocation of registry devices.
// All mutable state sits behind one coarse lock; allocation never blocks.
type Pool struct {
	mu          sync.Mutex
	registry    *Registry
	allocations map[string]*Allocation // device id -> allocation
}

// NewPool creates a pool over the registry.
func NewPool(registry *Registry) *Pool {
	return &Pool{
		registry:    registry,
		allocations: make(map[string]*Allocation),
	}
}

// Allocate claims the first available device matching the filter for owner.
// A non-zero timeout records an advisory absolute expiry on the allocation.
// Returns (nil, false) when nothing currently qualifies; it never waits.
func (p *Pool) Allocate(filter Filter, owner string, timeout time.Duration) (*Info, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	filter.Status = StatusAvailable
	for _, info := range p.registry.Find(filter) {
		if _, taken := p.allocations[info.ID]; taken {
			continue
		}

		now := time.Now()
		alloc := &Allocation{
			DeviceID:    info.ID,
			SessionID:   uuid.NewString(),
			Owner:       owner,
			AllocatedAt: now,
		}
		if timeout > 0 {
			alloc.ExpiresAt = now.Add(timeout)
		}
		p.allocations[info.ID] = alloc

		p.registry.UpdateStatus(info.ID, StatusBusy)
		p.registry.BindSession(info.ID, alloc.SessionID)

		claimed, _ := p.registry.Get(info.ID)
		logger.Debug("Device %s allocated to %s (session %s)", info.ID, owner, alloc.SessionID)
		return &claimed, true
	}
	return nil, false
}

// Release frees a device and marks it available again. Ownership is not
// verified. Releasing an unallocated device is a no-op.
func (p *Pool) Release(deviceID string) {
	p.mu.Lock()
	_, held := p.allocations[deviceID]
	delete(p.allocations, deviceID)
	p.mu.Unlock()

	if held {
		p.registry.BindSession(deviceID, "")
		p.registry.UpdateStatus(deviceID, StatusAvailable)
		logger.Debug("Device %s released", deviceID)
	}
}

// Allocation returns the active allocation for a device, if any.
func (p *Pool) Allocation(deviceID string) (Allocation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	alloc, ok := p.allocations[deviceID]
	if !ok {
		return Allocation{}, false
	}
	return *alloc, true
}

// Allocations returns copies of every active allocation.
func (p *Pool) Allocations() []Allocation {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Allocation, 0, len(p.allocations))
	for _, alloc := range p.allocations {
		out = append(out, *alloc)
	}
	return out
}

// Expired returns allocations whose advisory expiry has passed. Nothing in
// the pool sweeps these; callers decide whether to Release them.
func (p *Pool) Expired() []Allocation {
	now := time.Now()
	var out []Allocation
	for _, alloc := range p.Allocations() {
		if alloc.Expired(now) {
			out = append(out, alloc)
		}
	}
	return out
}
