package webdriver

import (
	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// MapSelectorFunc converts a generic selector into a backend strategy and
// value. Each adapter supplies its own with a fixed priority order.
type MapSelectorFunc func(core.Selector) (using, value string, err error)

// Resolve locates a single element for an adapter: maps the selector,
// applies parent scoping, index and state filters, and issues a handle in
// the adapter's arena. Absence is (0, false, nil), never an error.
func Resolve(c *Client, arena *core.ElementArena, sel core.Selector, mapSel MapSelectorFunc) (core.ElementHandle, bool, error) {
	if !c.HasSession() {
		return 0, false, core.ErrNotConnected
	}

	using, value, err := mapSel(sel)
	if err != nil {
		return 0, false, err
	}

	scope, ok, err := resolveParent(c, sel, mapSel)
	if err != nil || !ok {
		return 0, false, err
	}

	// Fast path: a bare selector needs only one wire round trip.
	if sel.Index == 0 && !sel.OnlyEnabled && !sel.OnlyVisible {
		var id string
		var found bool
		if scope != "" {
			id, found, err = c.FindChildElement(scope, using, value)
		} else {
			id, found, err = c.FindElement(using, value)
		}
		if err != nil || !found {
			return 0, false, err
		}
		return arena.Issue(id), true, nil
	}

	ids, err := findAll(c, scope, using, value)
	if err != nil {
		return 0, false, err
	}

	matches := filterByState(c, ids, sel)
	if sel.Index >= len(matches) {
		return 0, false, nil
	}
	return arena.Issue(matches[sel.Index]), true, nil
}

// ResolveAll locates every matching element and issues handles for them.
func ResolveAll(c *Client, arena *core.ElementArena, sel core.Selector, mapSel MapSelectorFunc) ([]core.ElementHandle, error) {
	if !c.HasSession() {
		return nil, core.ErrNotConnected
	}

	using, value, err := mapSel(sel)
	if err != nil {
		return nil, err
	}

	scope, ok, err := resolveParent(c, sel, mapSel)
	if err != nil || !ok {
		return nil, err
	}

	ids, err := findAll(c, scope, using, value)
	if err != nil {
		return nil, err
	}

	var handles []core.ElementHandle
	for _, id := range filterByState(c, ids, sel) {
		handles = append(handles, arena.Issue(id))
	}
	return handles, nil
}

// resolveParent locates the parent scope element when the selector has one.
// A missing parent means the child is absent, not an error.
func resolveParent(c *Client, sel core.Selector, mapSel MapSelectorFunc) (string, bool, error) {
	if sel.Parent == nil {
		return "", true, nil
	}
	using, value, err := mapSel(*sel.Parent)
	if err != nil {
		return "", false, err
	}
	id, found, err := c.FindElement(using, value)
	if err != nil {
		return "", false, err
	}
	return id, found, nil
}

func findAll(c *Client, scope, using, value string) ([]string, error) {
	if scope != "" {
		return c.FindChildElements(scope, using, value)
	}
	return c.FindElements(using, value)
}

// filterByState drops candidates failing the selector's enabled/visible
// filters. Query failures count as non-matches so one bad element does not
// poison the whole lookup.
func filterByState(c *Client, ids []string, sel core.Selector) []string {
	if !sel.OnlyEnabled && !sel.OnlyVisible {
		return ids
	}
	var matches []string
	for _, id := range ids {
		if sel.OnlyEnabled {
			enabled, err := c.ElementEnabled(id)
			if err != nil || !enabled {
				continue
			}
		}
		if sel.OnlyVisible {
			visible, err := c.ElementDisplayed(id)
			if err != nil || !visible {
				continue
			}
		}
		matches = append(matches, id)
	}
	return matches
}
