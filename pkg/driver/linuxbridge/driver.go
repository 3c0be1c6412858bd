package linuxbridge

import (
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// Config configures the Linux driver. Launch starts the application given
// by DesktopFile or Executable; if neither is set and an attach target
// (AttachPID, AppName or WindowName) is present, Launch attaches to the
// running application instead.
type Config struct {
	core.DriverConfig
	DesktopFile string
	Executable  string
	Args        []string
	WorkingDir  string

	AttachPID  int
	AppName    string
	WindowName string
}

// Driver is a Linux automation driver speaking to the AT-SPI bridge.
type Driver struct {
	cfg      Config
	client   *client
	elements *core.ElementArena
}

// New creates an unbound Linux driver. Call Launch to open a session.
func New(cfg Config) *Driver {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Driver{
		cfg:      cfg,
		client:   newClient(cfg.DriverConfig),
		elements: core.NewElementArena(),
	}
}

// Platform identifies the backend family.
func (d *Driver) Platform() core.Platform { return core.PlatformLinux }

// Launch starts or attaches to the configured application. Launching again
// replaces the session without cleaning up prior element handles.
func (d *Driver) Launch() error {
	if d.cfg.DesktopFile != "" || d.cfg.Executable != "" {
		body := map[string]interface{}{}
		if d.cfg.DesktopFile != "" {
			body["desktopFile"] = d.cfg.DesktopFile
		}
		if d.cfg.Executable != "" {
			body["executable"] = d.cfg.Executable
		}
		if len(d.cfg.Args) > 0 {
			body["args"] = d.cfg.Args
		}
		if d.cfg.WorkingDir != "" {
			body["workingDir"] = d.cfg.WorkingDir
		}
		return d.client.launch(body)
	}

	body := map[string]interface{}{}
	if d.cfg.AttachPID != 0 {
		body["pid"] = d.cfg.AttachPID
	}
	if d.cfg.AppName != "" {
		body["appName"] = d.cfg.AppName
	}
	if d.cfg.WindowName != "" {
		body["windowName"] = d.cfg.WindowName
	}
	if len(body) == 0 {
		return core.ErrLaunchFailed.WithMessage("no launch or attach target configured")
	}
	return d.client.attach(body)
}

// Terminate closes the session, which also kills a launched process.
func (d *Driver) Terminate() error { return d.client.closeSession() }

// Close terminates any active session.
func (d *Driver) Close() error { return d.Terminate() }

// Connected reports whether a session is active.
func (d *Driver) Connected() bool { return d.client.sessionID != "" }

// SessionID returns the backend session id.
func (d *Driver) SessionID() string { return d.client.sessionID }

// Available probes the bridge.
func (d *Driver) Available() bool { return d.client.available() }

// FindElement locates a single element.
func (d *Driver) FindElement(sel core.Selector) (core.ElementHandle, bool, error) {
	if !d.Connected() {
		return 0, false, core.ErrNotConnected
	}
	strategy, value, err := mapSelector(sel)
	if err != nil {
		return 0, false, err
	}

	parentID := ""
	if sel.Parent != nil {
		id, found, err := d.FindElement(*sel.Parent)
		if err != nil {
			return 0, false, err
		}
		if !found {
			return 0, false, nil
		}
		parentID, _ = d.elements.Native(id)
	}

	// Fast path: no index and no state filters.
	if sel.Index == 0 && !sel.OnlyEnabled && !sel.OnlyVisible {
		id, found, err := d.client.findElement(strategy, value, parentID)
		if err != nil || !found {
			return 0, false, err
		}
		return d.elements.Issue(id), true, nil
	}

	ids, err := d.client.findElements(strategy, value)
	if err != nil {
		return 0, false, err
	}
	ids = d.filterByState(ids, sel)
	if sel.Index >= len(ids) {
		return 0, false, nil
	}
	return d.elements.Issue(ids[sel.Index]), true, nil
}

// FindElements locates all matching elements.
func (d *Driver) FindElements(sel core.Selector) ([]core.ElementHandle, error) {
	if !d.Connected() {
		return nil, core.ErrNotConnected
	}
	strategy, value, err := mapSelector(sel)
	if err != nil {
		return nil, err
	}
	ids, err := d.client.findElements(strategy, value)
	if err != nil {
		return nil, err
	}
	ids = d.filterByState(ids, sel)

	handles := make([]core.ElementHandle, 0, len(ids))
	for _, id := range ids {
		handles = append(handles, d.elements.Issue(id))
	}
	return handles, nil
}

// filterByState drops elements failing the selector's enabled/visible
// filters. Elements whose state cannot be queried are treated as non-matching.
func (d *Driver) filterByState(ids []string, sel core.Selector) []string {
	if !sel.OnlyEnabled && !sel.OnlyVisible {
		return ids
	}
	var kept []string
	for _, id := range ids {
		if sel.OnlyEnabled {
			v, err := d.client.value("isEnabled", id)
			if ok, _ := v.(bool); err != nil || !ok {
				continue
			}
		}
		if sel.OnlyVisible {
			v, err := d.client.value("isVisible", id)
			if ok, _ := v.(bool); err != nil || !ok {
				continue
			}
		}
		kept = append(kept, id)
	}
	return kept
}

// WaitForElement polls until the element is visible or the timeout expires.
func (d *Driver) WaitForElement(sel core.Selector, timeout time.Duration) (core.ElementHandle, bool) {
	return core.AwaitElement(d, sel, timeout)
}

// Tap clicks an element.
func (d *Driver) Tap(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("click", id, nil)
	return err
}

// TypeText types text into an element.
func (d *Driver) TypeText(el core.ElementHandle, text string) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("type", id, map[string]interface{}{"text": text})
	return err
}

// ClearText clears an element's text.
func (d *Driver) ClearText(el core.ElementHandle) error {
	id, err := d.native(el)
	if err != nil {
		return err
	}
	_, err = d.client.elementCommand("clear", id, nil)
	return err
}

// Text returns an element's text, falling back to its accessible name.
func (d *Driver) Text(el core.ElementHandle) (string, error) {
	id, err := d.native(el)
	if err != nil {
		return "", err
	}
	v, err := d.client.value("getText", id)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	v, err = d.client.value("getName", id)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// Rect returns an element's bounds.
func (d *Driver) Rect(el core.ElementHandle) (core.Rect, error) {
	id, err := d.native(el)
	if err != nil {
		return core.Rect{}, err
	}
	return d.client.bounds(id)
}

// Visible checks if an element is showing on screen.
func (d *Driver) Visible(el core.ElementHandle) (bool, error) {
	id, err := d.native(el)
	if err != nil {
		return false, err
	}
	v, err := d.client.value("isVisible", id)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Enabled checks if an element is enabled.
func (d *Driver) Enabled(el core.ElementHandle) (bool, error) {
	id, err := d.native(el)
	if err != nil {
		return false, err
	}
	v, err := d.client.value("isEnabled", id)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// Screenshot captures the session window as PNG.
func (d *Driver) Screenshot() ([]byte, error) {
	if !d.Connected() {
		return nil, core.ErrNotConnected
	}
	return d.client.screenshot()
}

// Source is not provided by the AT-SPI bridge; there is no serialized
// accessibility tree endpoint.
func (d *Driver) Source() (string, error) {
	if !d.Connected() {
		return "", core.ErrNotConnected
	}
	return "", core.ErrActionFailed.WithMessage("ui source not supported on linux")
}

func (d *Driver) native(el core.ElementHandle) (string, error) {
	if !d.Connected() {
		return "", core.ErrNotConnected
	}
	id, ok := d.elements.Native(el)
	if !ok {
		return "", core.ErrElementNotFound.WithMessage("stale element handle")
	}
	return id, nil
}
