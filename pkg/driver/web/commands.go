package web

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// Browser-specific commands beyond the generic Driver interface.

// NavigateTo loads a URL.
func (d *Driver) NavigateTo(url string) error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/url"), map[string]interface{}{
		"url": url,
	})
	return err
}

// URL returns the current page URL.
func (d *Driver) URL() (string, error) {
	if !d.client.HasSession() {
		return "", core.ErrNotConnected
	}
	resp, err := d.client.Get(d.client.SessionPath("/url"))
	if err != nil {
		return "", err
	}
	if value, ok := resp["value"].(string); ok {
		return value, nil
	}
	return "", nil
}

// Title returns the current page title.
func (d *Driver) Title() (string, error) {
	if !d.client.HasSession() {
		return "", core.ErrNotConnected
	}
	resp, err := d.client.Get(d.client.SessionPath("/title"))
	if err != nil {
		return "", err
	}
	if value, ok := resp["value"].(string); ok {
		return value, nil
	}
	return "", nil
}

// ExecuteScript runs JavaScript in the page and returns its result.
func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	if !d.client.HasSession() {
		return nil, core.ErrNotConnected
	}
	if args == nil {
		args = []interface{}{}
	}
	resp, err := d.client.Post(d.client.SessionPath("/execute/sync"), map[string]interface{}{
		"script": script,
		"args":   args,
	})
	if err != nil {
		return nil, err
	}
	return resp["value"], nil
}

// Back navigates back in browser history.
func (d *Driver) Back() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/back"), map[string]interface{}{})
	return err
}

// Forward navigates forward in browser history.
func (d *Driver) Forward() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/forward"), map[string]interface{}{})
	return err
}

// Refresh reloads the current page.
func (d *Driver) Refresh() error {
	if !d.client.HasSession() {
		return core.ErrNotConnected
	}
	_, err := d.client.Post(d.client.SessionPath("/refresh"), map[string]interface{}{})
	return err
}
