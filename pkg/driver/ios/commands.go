package ios

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// WDA-specific gestures and device control beyond the generic interface.
// Gestures use the /wda element extension endpoints.

// DoubleTap double-taps an element.
func (d *Driver) DoubleTap(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.Post(d.client.SessionPath("/wda/element/"+id+"/doubleTap"), nil)
	return err
}

// TouchAndHold long-presses an element.
func (d *Driver) TouchAndHold(el core.ElementHandle, duration float64) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.Post(d.client.SessionPath("/wda/element/"+id+"/touchAndHold"), map[string]interface{}{
		"duration": duration,
	})
	return err
}

// Swipe swipes across an element in the given direction (up, down, left,
// right).
func (d *Driver) Swipe(el core.ElementHandle, direction string) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.Post(d.client.SessionPath("/wda/element/"+id+"/swipe"), map[string]interface{}{
		"direction": direction,
	})
	return err
}

// ScrollToVisible scrolls an element's container until it is visible.
func (d *Driver) ScrollToVisible(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.Post(d.client.SessionPath("/wda/element/"+id+"/scroll"), map[string]interface{}{
		"toVisible": true,
	})
	return err
}

// PressButton presses a hardware button (home, volumeUp, volumeDown).
func (d *Driver) PressButton(name string) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/wda/pressButton"), map[string]interface{}{
		"name": name,
	})
	return err
}

// Shake shakes the device.
func (d *Driver) Shake() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/wda/shake"), map[string]interface{}{})
	return err
}

// Lock locks the device for the given number of seconds (0 = stay locked).
func (d *Driver) Lock(seconds int) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/wda/lock"), map[string]interface{}{
		"seconds": seconds,
	})
	return err
}

// Unlock unlocks the device.
func (d *Driver) Unlock() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/wda/unlock"), map[string]interface{}{})
	return err
}
