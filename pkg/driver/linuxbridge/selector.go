package linuxbridge

import "github.com/devicelab-dev/zylix-runner/pkg/core"

// mapSelector converts a generic selector into an AT-SPI search strategy.
// The bridge matches on accessible name, role, description or application;
// test ids and accessibility ids both surface as the accessible name.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.AccessibilityID != "":
		return "name", sel.AccessibilityID, nil
	case sel.TestID != "":
		return "name", sel.TestID, nil
	case sel.Text != "":
		return "name", sel.Text, nil
	case sel.Role != "":
		return "role", sel.Role, nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no AT-SPI strategy")
	}
}
