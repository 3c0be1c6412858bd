package device

import (
	"sync"

	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// HealthCheck is the per-device rolling probe state.
type HealthCheck struct {
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
	IsHealthy            bool
	LastError            string
}

// HealthMonitor demotes and promotes registry status from streaks of probe
// results. Two independent thresholds give it hysteresis: single flaky
// probes in either direction do not flip state.
type HealthMonitor struct {
	mu                 sync.Mutex
	registry           *Registry
	unhealthyThreshold int
	healthyThreshold   int
	checks             map[string]*HealthCheck
}

// DefaultUnhealthyThreshold and DefaultHealthyThreshold are the streak
// lengths used when a threshold is left at zero.
const (
	DefaultUnhealthyThreshold = 3
	DefaultHealthyThreshold   = 2
)

// NewHealthMonitor creates a monitor updating the registry.
func NewHealthMonitor(registry *Registry, unhealthyThreshold, healthyThreshold int) *HealthMonitor {
	if unhealthyThreshold <= 0 {
		unhealthyThreshold = DefaultUnhealthyThreshold
	}
	if healthyThreshold <= 0 {
		healthyThreshold = DefaultHealthyThreshold
	}
	return &HealthMonitor{
		registry:           registry,
		unhealthyThreshold: unhealthyThreshold,
		healthyThreshold:   healthyThreshold,
		checks:             make(map[string]*HealthCheck),
	}
}

// RecordResult feeds one probe outcome into the device's streaks. Reaching
// the unhealthy threshold forces registry status to error; reaching the
// healthy threshold restores it to available.
func (m *HealthMonitor) RecordResult(deviceID string, success bool, probeErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	check, ok := m.checks[deviceID]
	if !ok {
		check = &HealthCheck{IsHealthy: true}
		m.checks[deviceID] = check
	}

	if success {
		check.ConsecutiveFailures = 0
		check.ConsecutiveSuccesses++
		check.LastError = ""
		if !check.IsHealthy && check.ConsecutiveSuccesses >= m.healthyThreshold {
			check.IsHealthy = true
			m.registry.UpdateStatus(deviceID, StatusAvailable)
			logger.Info("Device %s recovered after %d consecutive successes", deviceID, check.ConsecutiveSuccesses)
		}
		return
	}

	check.ConsecutiveSuccesses = 0
	check.ConsecutiveFailures++
	if probeErr != nil {
		check.LastError = probeErr.Error()
	}
	if check.IsHealthy && check.ConsecutiveFailures >= m.unhealthyThreshold {
		check.IsHealthy = false
		m.registry.UpdateStatus(deviceID, StatusError)
		logger.Warn("Device %s marked unhealthy after %d consecutive failures: %s",
			deviceID, check.ConsecutiveFailures, check.LastError)
	}
}

// Check returns a copy of the device's health state. Devices never probed
// report healthy.
func (m *HealthMonitor) Check(deviceID string) HealthCheck {
	m.mu.Lock()
	defer m.mu.Unlock()
	if check, ok := m.checks[deviceID]; ok {
		return *check
	}
	return HealthCheck{IsHealthy: true}
}

// IsHealthy reports the device's current health.
func (m *HealthMonitor) IsHealthy(deviceID string) bool {
	return m.Check(deviceID).IsHealthy
}

// Forget drops a device's probe history, e.g. after unregistration.
func (m *HealthMonitor) Forget(deviceID string) {
	m.mu.Lock()
	delete(m.checks, deviceID)
	m.mu.Unlock()
}
