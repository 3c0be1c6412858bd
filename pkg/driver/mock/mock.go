// Package mock provides a scriptable in-memory driver for testing without
// a real automation backend.
package mock

import (
	"strings"
	"sync"
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// Element describes one scripted element in the mock UI.
type Element struct {
	TestID          string
	AccessibilityID string
	Text            string
	Visible         bool
	Enabled         bool
	Bounds          core.Rect
}

// Config configures mock driver behavior.
type Config struct {
	// Elements is the scripted UI the driver resolves selectors against.
	Elements []Element
	// FailLaunch makes Launch return a connection error.
	FailLaunch bool
	// OpDelay adds artificial latency to every element operation.
	OpDelay time.Duration
	// Platform to report. Defaults to "mock".
	Platform core.Platform
}

// Driver is an in-memory implementation of core.Driver.
type Driver struct {
	mu        sync.Mutex
	cfg       Config
	connected bool
	sessionID string
	elements  *core.ElementArena
	typed     map[core.ElementHandle]string
	tapCount  map[core.ElementHandle]int
}

// New creates a mock driver over the scripted elements.
func New(cfg Config) *Driver {
	if cfg.Platform == "" {
		cfg.Platform = core.Platform("mock")
	}
	return &Driver{
		cfg:      cfg,
		elements: core.NewElementArena(),
		typed:    make(map[core.ElementHandle]string),
		tapCount: make(map[core.ElementHandle]int),
	}
}

// Platform identifies the backend family.
func (d *Driver) Platform() core.Platform { return d.cfg.Platform }

// Launch opens a fake session.
func (d *Driver) Launch() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.FailLaunch {
		return core.ErrLaunchFailed.WithMessage("mock launch failure")
	}
	d.connected = true
	d.sessionID = "mock-session"
	return nil
}

// Terminate ends the fake session.
func (d *Driver) Terminate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	d.sessionID = ""
	return nil
}

// Close terminates any active session.
func (d *Driver) Close() error { return d.Terminate() }

// Connected reports whether a session is active.
func (d *Driver) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// SessionID returns the fake session id.
func (d *Driver) SessionID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sessionID
}

// Available always reports true.
func (d *Driver) Available() bool { return true }

// FindElement resolves a selector against the scripted elements.
func (d *Driver) FindElement(sel core.Selector) (core.ElementHandle, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return 0, false, core.ErrNotConnected
	}
	d.delay()

	matches := d.match(sel)
	if sel.Index >= len(matches) {
		return 0, false, nil
	}
	return d.handleFor(matches[sel.Index]), true, nil
}

// FindElements resolves all matching scripted elements.
func (d *Driver) FindElements(sel core.Selector) ([]core.ElementHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, core.ErrNotConnected
	}
	d.delay()

	var handles []core.ElementHandle
	for _, idx := range d.match(sel) {
		handles = append(handles, d.handleFor(idx))
	}
	return handles, nil
}

// WaitForElement polls until the element is visible or the timeout expires.
func (d *Driver) WaitForElement(sel core.Selector, timeout time.Duration) (core.ElementHandle, bool) {
	return core.AwaitElement(d, sel, timeout)
}

// Tap records a tap on the element.
func (d *Driver) Tap(el core.ElementHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check(el); err != nil {
		return err
	}
	d.delay()
	d.tapCount[el]++
	return nil
}

// TypeText appends text to the element's typed buffer.
func (d *Driver) TypeText(el core.ElementHandle, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check(el); err != nil {
		return err
	}
	d.delay()
	d.typed[el] += text
	return nil
}

// ClearText resets the element's typed buffer.
func (d *Driver) ClearText(el core.ElementHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.check(el); err != nil {
		return err
	}
	d.typed[el] = ""
	return nil
}

// Text returns typed text if present, else the scripted text.
func (d *Driver) Text(el core.ElementHandle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.scripted(el)
	if err != nil {
		return "", err
	}
	if typed, ok := d.typed[el]; ok && typed != "" {
		return typed, nil
	}
	return e.Text, nil
}

// Rect returns the scripted bounds.
func (d *Driver) Rect(el core.ElementHandle) (core.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.scripted(el)
	if err != nil {
		return core.Rect{}, err
	}
	return e.Bounds, nil
}

// Visible returns the scripted visibility.
func (d *Driver) Visible(el core.ElementHandle) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.scripted(el)
	if err != nil {
		return false, err
	}
	return e.Visible, nil
}

// Enabled returns the scripted enabled state.
func (d *Driver) Enabled(el core.ElementHandle) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, err := d.scripted(el)
	if err != nil {
		return false, err
	}
	return e.Enabled, nil
}

// Screenshot returns a minimal valid PNG (1x1 transparent pixel).
func (d *Driver) Screenshot() ([]byte, error) {
	if !d.Connected() {
		return nil, core.ErrNotConnected
	}
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}, nil
}

// Source returns a fixed XML hierarchy of the scripted elements.
func (d *Driver) Source() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return "", core.ErrNotConnected
	}
	var sb strings.Builder
	sb.WriteString("<Root>")
	for _, e := range d.cfg.Elements {
		sb.WriteString(`<Element testId="` + e.TestID + `" text="` + e.Text + `"/>`)
	}
	sb.WriteString("</Root>")
	return sb.String(), nil
}

// TapCount reports how many taps the element received. Test helper.
func (d *Driver) TapCount(el core.ElementHandle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tapCount[el]
}

// SetVisible flips an element's scripted visibility. Test helper.
func (d *Driver) SetVisible(testID string, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.cfg.Elements {
		if d.cfg.Elements[i].TestID == testID {
			d.cfg.Elements[i].Visible = visible
		}
	}
}

func (d *Driver) delay() {
	if d.cfg.OpDelay > 0 {
		time.Sleep(d.cfg.OpDelay)
	}
}

// match returns indexes of scripted elements satisfying the selector,
// in declaration order.
func (d *Driver) match(sel core.Selector) []int {
	var out []int
	for i, e := range d.cfg.Elements {
		if !selectorMatches(sel, e) {
			continue
		}
		if sel.OnlyEnabled && !e.Enabled {
			continue
		}
		if sel.OnlyVisible && !e.Visible {
			continue
		}
		out = append(out, i)
	}
	return out
}

func selectorMatches(sel core.Selector, e Element) bool {
	switch {
	case sel.TestID != "":
		return e.TestID == sel.TestID
	case sel.AccessibilityID != "":
		return e.AccessibilityID == sel.AccessibilityID
	case sel.Text != "":
		return e.Text == sel.Text
	case sel.TextContains != "":
		return strings.Contains(e.Text, sel.TextContains)
	default:
		return false
	}
}

// handleFor issues one stable handle per scripted element index.
func (d *Driver) handleFor(idx int) core.ElementHandle {
	native := "mock-" + d.cfg.Elements[idx].TestID
	if d.cfg.Elements[idx].TestID == "" {
		native = "mock-" + d.cfg.Elements[idx].Text
	}
	// Reuse an existing handle when the same native id was issued before.
	for h := core.ElementHandle(1); ; h++ {
		n, ok := d.elements.Native(h)
		if !ok {
			break
		}
		if n == native {
			return h
		}
	}
	return d.elements.Issue(native)
}

func (d *Driver) check(el core.ElementHandle) error {
	if !d.connected {
		return core.ErrNotConnected
	}
	if _, ok := d.elements.Native(el); !ok {
		return core.ErrElementNotFound.WithMessage("stale element handle")
	}
	return nil
}

func (d *Driver) scripted(el core.ElementHandle) (Element, error) {
	if err := d.check(el); err != nil {
		return Element{}, err
	}
	native, _ := d.elements.Native(el)
	for _, e := range d.cfg.Elements {
		id := "mock-" + e.TestID
		if e.TestID == "" {
			id = "mock-" + e.Text
		}
		if id == native {
			return e, nil
		}
	}
	return Element{}, core.ErrElementNotFound
}
