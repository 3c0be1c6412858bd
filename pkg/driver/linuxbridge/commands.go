package linuxbridge

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// DoubleClick double-clicks an element.
func (d *Driver) DoubleClick(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("doubleClick", id, nil)
	return err
}

// RightClick right-clicks an element.
func (d *Driver) RightClick(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("rightClick", id, nil)
	return err
}

// Focus moves keyboard focus to an element.
func (d *Driver) Focus(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("focus", id, nil)
	return err
}

// Focused checks if an element holds keyboard focus.
func (d *Driver) Focused(el core.ElementHandle) (bool, error) {
	id, err := d.native(el)
	if err != nil {
		return false, err
	}
	v, err := d.client.value("isFocused", id)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Role returns an element's AT-SPI role name.
func (d *Driver) Role(el core.ElementHandle) (string, error) {
	id, err := d.native(el)
	if err != nil {
		return "", err
	}
	v, err := d.client.value("getRole", id)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Attribute reads a named accessibility attribute from an element.
func (d *Driver) Attribute(el core.ElementHandle, name string) (string, error) {
	id, err := d.native(el)
	if err != nil {
		return "", err
	}
	resp, err := d.client.elementCommand("getAttribute", id, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return "", err
	}
	s, _ := resp["value"].(string)
	return s, nil
}

// WindowTitle returns the session window's title.
func (d *Driver) WindowTitle() (string, error) {
	if !d.Connected() {
		return "", core.ErrNotConnected
	}
	resp, err := d.client.command("window", nil)
	if err != nil {
		return "", err
	}
	s, _ := resp["title"].(string)
	return s, nil
}

// SendKeys types a raw key sequence into the focused window.
func (d *Driver) SendKeys(keys string) error {
	if !d.Connected() {
		return core.ErrNotConnected
	}
	_, err := d.client.command("keys", map[string]interface{}{"keys": keys})
	return err
}
