// Package core defines the platform-independent driver capability
// interface, selectors, element handles and the error taxonomy shared by
// all backend adapters.
package core

import (
	"fmt"
	"time"
)

// DriverConfig carries the transport settings common to every backend.
type DriverConfig struct {
	Host    string        // backend host, default 127.0.0.1
	Port    int           // backend port, backend-specific default
	Timeout time.Duration // per-request transport timeout, default 30s
}

// DefaultTimeout is applied when DriverConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// BaseURL returns the backend endpoint URL.
func (c DriverConfig) BaseURL() string {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}

// RequestTimeout returns the configured transport timeout or the default.
func (c DriverConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// WaitPollInterval is the fixed polling interval used by WaitForElement.
const WaitPollInterval = 100 * time.Millisecond

// Driver is the capability interface for one automation session against one
// platform's native UI automation backend. Implementations: web (ChromeDriver),
// ios (WebDriverAgent), android (Appium/UiAutomator2), macos (accessibility
// bridge), windows (WinAppDriver), linuxbridge (AT-SPI bridge).
//
// A driver exposes at most one active session. Element operations on a
// driver without a session fail with ErrNotConnected. Launching an already
// launched driver replaces the backend session; handles issued against the
// old session are not cleaned up and fail per-operation.
//
// A Driver instance is bound to one allocated device and is not designed
// for concurrent invocation by multiple workers.
type Driver interface {
	// Launch opens a backend session. Fails with ErrConnectionFailed when
	// the backend is unreachable and ErrLaunchFailed when it rejects the
	// session.
	Launch() error

	// Terminate ends the backend session. Safe to call when not connected.
	Terminate() error

	// Close terminates any active session and releases owned resources.
	Close() error

	// Connected reports whether a backend session is active.
	Connected() bool

	// SessionID returns the backend session id, empty when not connected.
	SessionID() string

	// Platform identifies the backend family.
	Platform() Platform

	// FindElement locates a single element. Absence is not an error: it
	// returns (0, false, nil) when nothing matches, reserving the error for
	// transport failures and unrepresentable selectors.
	FindElement(sel Selector) (ElementHandle, bool, error)

	// FindElements locates all matching elements.
	FindElements(sel Selector) ([]ElementHandle, error)

	// WaitForElement polls FindElement plus visibility at WaitPollInterval
	// until the timeout expires. Expiry returns (0, false); a timeout is a
	// valid outcome the caller inspects, never an error.
	WaitForElement(sel Selector, timeout time.Duration) (ElementHandle, bool)

	// Interactions
	Tap(el ElementHandle) error
	TypeText(el ElementHandle, text string) error
	ClearText(el ElementHandle) error

	// Queries
	Text(el ElementHandle) (string, error)
	Rect(el ElementHandle) (Rect, error)
	Visible(el ElementHandle) (bool, error)
	Enabled(el ElementHandle) (bool, error)

	// Screenshot captures the current screen as PNG.
	Screenshot() ([]byte, error)

	// Source returns the UI hierarchy dump.
	Source() (string, error)

	// Available probes backend liveness without a session.
	Available() bool
}

// AwaitElement implements the shared WaitForElement polling loop: find the
// element, check visibility, sleep WaitPollInterval, repeat until timeout.
// Transport failures during polling are treated as absence so a flapping
// backend degrades to a timeout rather than an error.
func AwaitElement(d Driver, sel Selector, timeout time.Duration) (ElementHandle, bool) {
	deadline := time.Now().Add(timeout)
	for {
		el, found, err := d.FindElement(sel)
		if err == nil && found {
			visible, verr := d.Visible(el)
			if verr == nil && visible {
				return el, true
			}
		}
		if time.Now().After(deadline) {
			return 0, false
		}
		time.Sleep(WaitPollInterval)
	}
}
