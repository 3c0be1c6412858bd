package android

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// Android hardware keycodes.
const (
	keycodeHome      = 3
	keycodeAppSwitch = 187
)

// PressBack presses the Back button.
func (d *Driver) PressBack() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/back"), map[string]interface{}{})
	return err
}

// PressHome presses the Home button.
func (d *Driver) PressHome() error {
	return d.pressKeycode(keycodeHome)
}

// PressRecentApps opens the recent apps switcher.
func (d *Driver) PressRecentApps() error {
	return d.pressKeycode(keycodeAppSwitch)
}

// OpenNotifications opens the notification shade.
func (d *Driver) OpenNotifications() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/appium/device/open_notifications"), map[string]interface{}{})
	return err
}

func (d *Driver) pressKeycode(keycode int) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/appium/device/press_keycode"), map[string]interface{}{
		"keycode": keycode,
	})
	return err
}
