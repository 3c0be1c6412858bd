package windows

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// WinAppDriver has no gesture extension endpoints; gestures are expressed
// as generic W3C Actions pointer/wheel sequences.

// DoubleTap double-clicks an element by pointer actions at its center.
func (d *Driver) DoubleTap(el core.ElementHandle) error {
	rect, err := d.Rect(el)
	if err != nil {
		return err
	}
	x, y := rect.Center()

	press := []interface{}{
		map[string]interface{}{"type": "pointerDown", "button": 0},
		map[string]interface{}{"type": "pointerUp", "button": 0},
	}
	actions := append([]interface{}{
		map[string]interface{}{"type": "pointerMove", "x": x, "y": y},
	}, append(press, press...)...)

	return d.client.PerformActions(pointerSequence(actions))
}

// LongPress presses an element for durationMs milliseconds.
func (d *Driver) LongPress(el core.ElementHandle, durationMs int) error {
	rect, err := d.Rect(el)
	if err != nil {
		return err
	}
	x, y := rect.Center()

	return d.client.PerformActions(pointerSequence([]interface{}{
		map[string]interface{}{"type": "pointerMove", "x": x, "y": y},
		map[string]interface{}{"type": "pointerDown", "button": 0},
		map[string]interface{}{"type": "pause", "duration": durationMs},
		map[string]interface{}{"type": "pointerUp", "button": 0},
	}))
}

// Swipe drags the pointer between two points over durationMs milliseconds.
func (d *Driver) Swipe(fromX, fromY, toX, toY, durationMs int) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	return d.client.PerformActions(pointerSequence([]interface{}{
		map[string]interface{}{"type": "pointerMove", "x": fromX, "y": fromY},
		map[string]interface{}{"type": "pointerDown", "button": 0},
		map[string]interface{}{"type": "pointerMove", "x": toX, "y": toY, "duration": durationMs},
		map[string]interface{}{"type": "pointerUp", "button": 0},
	}))
}

// Scroll turns the mouse wheel at the element's center.
func (d *Driver) Scroll(el core.ElementHandle, deltaX, deltaY int) error {
	rect, err := d.Rect(el)
	if err != nil {
		return err
	}
	x, y := rect.Center()

	return d.client.PerformActions([]interface{}{
		map[string]interface{}{
			"type": "wheel",
			"id":   "wheel1",
			"actions": []interface{}{
				map[string]interface{}{
					"type": "scroll", "x": x, "y": y,
					"deltaX": deltaX, "deltaY": deltaY,
				},
			},
		},
	})
}

// pointerSequence wraps raw pointer actions into a W3C touch sequence.
func pointerSequence(actions []interface{}) []interface{} {
	return []interface{}{
		map[string]interface{}{
			"type":       "pointer",
			"id":         "finger1",
			"parameters": map[string]interface{}{"pointerType": "touch"},
			"actions":    actions,
		},
	}
}
