// Package device provides the device directory, exclusive allocation and
// health tracking for automation targets.
package device

import (
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// Status is a device lifecycle state.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusBusy        Status = "busy"
	StatusOffline     Status = "offline"
	StatusError       Status = "error"
	StatusMaintenance Status = "maintenance"
)

// Info describes one known device. Status is mutated only through
// Registry.UpdateStatus.
type Info struct {
	ID           string
	Platform     core.Platform
	OSVersion    string
	Capabilities []string
	Tags         []string
	Status       Status
	LastSeen     time.Time
	SessionID    string
}

// HasCapability reports whether the device advertises the capability.
func (i Info) HasCapability(cap string) bool {
	for _, c := range i.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// HasTag reports whether the device carries the tag.
func (i Info) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter selects devices by predicate conjunction. Zero values match
// everything; PlatformAuto acts as a platform wildcard.
type Filter struct {
	Platform     core.Platform
	Status       Status
	Capabilities []string // all-of
	Tags         []string // all-of
}

// Matches reports whether the device satisfies every filter predicate.
func (f Filter) Matches(info Info) bool {
	if !f.Platform.Matches(info.Platform) {
		return false
	}
	if f.Status != "" && info.Status != f.Status {
		return false
	}
	for _, c := range f.Capabilities {
		if !info.HasCapability(c) {
			return false
		}
	}
	for _, t := range f.Tags {
		if !info.HasTag(t) {
			return false
		}
	}
	return true
}

// Allocation is an ephemeral exclusive claim on a device.
type Allocation struct {
	DeviceID    string
	SessionID   string
	Owner       string
	AllocatedAt time.Time
	// ExpiresAt is advisory: nothing sweeps expired allocations. Pool.Expired
	// exposes them for an external reaper.
	ExpiresAt time.Time
}

// Expired reports whether the allocation's advisory expiry has passed.
func (a Allocation) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

// AllocationRequest describes a caller waiting for a device. Blocking
// allocation is not implemented; Allocate returns immediately and requests
// are never enqueued.
type AllocationRequest struct {
	Filter    Filter
	Owner     string
	Timeout   time.Duration
	Result    chan *Info
	CreatedAt time.Time
}
