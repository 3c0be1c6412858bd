package device

import (
	"sync"
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// Event is a registry lifecycle notification.
type Event struct {
	Type     EventType
	DeviceID string
	Status   Status
}

// EventType discriminates registry events.
type EventType string

const (
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
	EventStatusChange EventType = "status_change"
)

// Listener receives registry events. Delivery is best-effort: a listener
// with a full channel is skipped, never blocked on.
type Listener chan Event

// Registry is a thread-safe directory of known devices.
type Registry struct {
	mu        sync.RWMutex
	devices   map[string]*Info
	listeners []Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*Info),
	}
}

// Register adds or replaces a device. New devices default to available.
func (r *Registry) Register(info Info) {
	r.mu.Lock()
	if info.Status == "" {
		info.Status = StatusAvailable
	}
	info.LastSeen = time.Now()
	r.devices[info.ID] = &info
	r.mu.Unlock()

	logger.Debug("Device registered: %s (%s)", info.ID, info.Platform)
	r.notify(Event{Type: EventConnected, DeviceID: info.ID, Status: info.Status})
}

// Unregister removes a device. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	_, known := r.devices[id]
	delete(r.devices, id)
	r.mu.Unlock()

	if known {
		logger.Debug("Device unregistered: %s", id)
		r.notify(Event{Type: EventDisconnected, DeviceID: id})
	}
}

// UpdateStatus mutates a device's status. Returns false for unknown ids.
func (r *Registry) UpdateStatus(id string, status Status) bool {
	r.mu.Lock()
	info, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	info.Status = status
	info.LastSeen = time.Now()
	r.mu.Unlock()

	r.notify(Event{Type: EventStatusChange, DeviceID: id, Status: status})
	return true
}

// BindSession records the backend session currently using the device.
func (r *Registry) BindSession(id, sessionID string) {
	r.mu.Lock()
	if info, ok := r.devices[id]; ok {
		info.SessionID = sessionID
	}
	r.mu.Unlock()
}

// Get returns a copy of the device record.
func (r *Registry) Get(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.devices[id]
	if !ok {
		return Info{}, false
	}
	return *info, true
}

// Find returns copies of every device satisfying the filter. An empty
// filter matches all devices.
func (r *Registry) Find(filter Filter) []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Info
	for _, info := range r.devices {
		if filter.Matches(*info) {
			out = append(out, *info)
		}
	}
	return out
}

// All returns copies of every registered device.
func (r *Registry) All() []Info {
	return r.Find(Filter{})
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Subscribe registers a listener channel for lifecycle events.
func (r *Registry) Subscribe(buffer int) Listener {
	l := make(Listener, buffer)
	r.mu.Lock()
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
	return l
}

// Unsubscribe removes a listener. The channel is not closed.
func (r *Registry) Unsubscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// notify fans the event out to all listeners, dropping on full channels.
func (r *Registry) notify(ev Event) {
	r.mu.RLock()
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, l := range listeners {
		select {
		case l <- ev:
		default:
		}
	}
}
