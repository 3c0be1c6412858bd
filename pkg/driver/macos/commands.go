package macos

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// WindowInfo describes one application window.
type WindowInfo struct {
	ID     string
	Title  string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Windows lists the application's windows.
func (d *Driver) Windows() ([]WindowInfo, error) {
	if !d.client.HasSession() {
		return nil, core.ErrNotConnected
	}
	resp, err := d.client.Get(d.client.SessionPath("/windows"))
	if err != nil {
		return nil, err
	}

	var windows []WindowInfo
	values, _ := resp["value"].([]interface{})
	for _, v := range values {
		m, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		var w WindowInfo
		if id, ok := m["id"].(string); ok {
			w.ID = id
		}
		if title, ok := m["title"].(string); ok {
			w.Title = title
		}
		if x, ok := m["x"].(float64); ok {
			w.X = x
		}
		if y, ok := m["y"].(float64); ok {
			w.Y = y
		}
		if width, ok := m["width"].(float64); ok {
			w.Width = width
		}
		if height, ok := m["height"].(float64); ok {
			w.Height = height
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// ActivateWindow focuses a window by id.
func (d *Driver) ActivateWindow(windowID string) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/window/"+windowID+"/activate"), map[string]interface{}{})
	return err
}

// PressKey presses a key with optional modifiers (command, control,
// option, shift, fn).
func (d *Driver) PressKey(key string, modifiers ...string) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	if modifiers == nil {
		modifiers = []string{}
	}
	_, err := d.client.Post(d.client.SessionPath("/keys"), map[string]interface{}{
		"key":       key,
		"modifiers": modifiers,
	})
	return err
}

// TypeString types text into the focused element.
func (d *Driver) TypeString(text string) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/type"), map[string]interface{}{
		"text": text,
	})
	return err
}
