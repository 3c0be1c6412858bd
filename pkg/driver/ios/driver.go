// Package ios implements the Driver interface against WebDriverAgent.
package ios

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/webdriver"
)

// DefaultPort is the WebDriverAgent default.
const DefaultPort = 8100

// Config configures the iOS driver.
type Config struct {
	core.DriverConfig
	BundleID        string
	DeviceUDID      string
	DeviceName      string // simulator type, e.g. "iPhone 15 Pro"
	PlatformVersion string
}

// Driver is an iOS automation driver speaking to WebDriverAgent.
type Driver struct {
	cfg      Config
	client   *webdriver.Client
	elements *core.ElementArena
}

// New creates an unbound iOS driver. Call Launch to open a session.
func New(cfg Config) *Driver {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Driver{
		cfg:      cfg,
		client:   webdriver.NewClient(cfg.DriverConfig),
		elements: core.NewElementArena(),
	}
}

// Platform identifies the backend family.
func (d *Driver) Platform() core.Platform { return core.PlatformIOS }

// WaitReady polls WebDriverAgent's /status with exponential backoff until
// it responds or maxElapsed passes. WDA takes several seconds to boot after
// xcodebuild starts it.
func (d *Driver) WaitReady(maxElapsed time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed
	err := backoff.Retry(func() error {
		if !d.client.Available() {
			return fmt.Errorf("webdriveragent not responding")
		}
		return nil
	}, b)
	if err != nil {
		return core.ErrConnectionFailed.WithCause(err)
	}
	return nil
}

// Launch opens a WDA session against the configured app. Launching again
// replaces the session without cleaning up prior element handles.
func (d *Driver) Launch() error {
	alwaysMatch := map[string]interface{}{
		"platformName": "iOS",
	}
	if d.cfg.BundleID != "" {
		alwaysMatch["bundleId"] = d.cfg.BundleID
	}
	if d.cfg.DeviceUDID != "" {
		alwaysMatch["udid"] = d.cfg.DeviceUDID
	}
	if d.cfg.DeviceName != "" {
		alwaysMatch["deviceName"] = d.cfg.DeviceName
	}
	if d.cfg.PlatformVersion != "" {
		alwaysMatch["platformVersion"] = d.cfg.PlatformVersion
	}

	_, err := d.client.CreateSession(map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": alwaysMatch,
		},
	})
	return err
}

// Terminate ends the WDA session.
func (d *Driver) Terminate() error { return d.client.DeleteSession() }

// Close terminates any active session.
func (d *Driver) Close() error { return d.Terminate() }

// Connected reports whether a session is active.
func (d *Driver) Connected() bool { return d.client.HasSession() }

// SessionID returns the backend session id.
func (d *Driver) SessionID() string { return d.client.SessionID() }

// Available probes WebDriverAgent.
func (d *Driver) Available() bool { return d.client.Available() }

// FindElement locates a single element.
func (d *Driver) FindElement(sel core.Selector) (core.ElementHandle, bool, error) {
	return webdriver.Resolve(d.client, d.elements, sel, mapSelector)
}

// FindElements locates all matching elements.
func (d *Driver) FindElements(sel core.Selector) ([]core.ElementHandle, error) {
	return webdriver.ResolveAll(d.client, d.elements, sel, mapSelector)
}

// WaitForElement polls until the element is visible or the timeout expires.
func (d *Driver) WaitForElement(sel core.Selector, timeout time.Duration) (core.ElementHandle, bool) {
	return core.AwaitElement(d, sel, timeout)
}

// Tap taps an element.
func (d *Driver) Tap(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	return d.client.ElementClick(id)
}

// TypeText types text into an element.
func (d *Driver) TypeText(el core.ElementHandle, text string) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	return d.client.ElementSendKeys(id, text)
}

// ClearText clears an element's text.
func (d *Driver) ClearText(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	return d.client.ElementClear(id)
}

// Text returns an element's label or value.
func (d *Driver) Text(el core.ElementHandle) (string, error) {
	id, err := d.native(el)
	if err != nil {
		return "", err
	}
	return d.client.ElementText(id)
}

// Rect returns an element's bounds.
func (d *Driver) Rect(el core.ElementHandle) (core.Rect, error) {
	id, err := d.native(el)
	if err != nil {
		return core.Rect{}, err
	}
	return d.client.ElementRect(id)
}

// Visible checks if an element is displayed.
func (d *Driver) Visible(el core.ElementHandle) (bool, error) {
	id, err := d.native(el)
	if err != nil {
		return false, err
	}
	return d.client.ElementDisplayed(id)
}

// Enabled checks if an element is enabled.
func (d *Driver) Enabled(el core.ElementHandle) (bool, error) {
	id, err := d.native(el)
	if err != nil {
		return false, err
	}
	return d.client.ElementEnabled(id)
}

// Screenshot captures the screen as PNG.
func (d *Driver) Screenshot() ([]byte, error) {
	if !d.client.HasSession() {
		return nil, core.ErrNotConnected
	}
	return d.client.Screenshot()
}

// Source returns the UI hierarchy as XML.
func (d *Driver) Source() (string, error) {
	if !d.client.HasSession() {
		return "", core.ErrNotConnected
	}
	return d.client.Source()
}

func (d *Driver) native(el core.ElementHandle) (string, error) {
	if !d.client.HasSession() {
		return "", core.ErrNotConnected
	}
	id, ok := d.elements.Native(el)
	if !ok {
		return "", core.ErrElementNotFound.WithMessage("stale element handle")
	}
	return id, nil
}
