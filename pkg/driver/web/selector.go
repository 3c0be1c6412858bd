package web

import (
	"fmt"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mapSelector converts a generic selector into a WebDriver strategy/value
// pair. Priority: test id > css > accessibility id > text > xpath. Mobile
// and desktop strategies are not representable in a browser.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.TestID != "":
		return "css selector", fmt.Sprintf(`[data-testid=%q]`, sel.TestID), nil
	case sel.CSS != "":
		return "css selector", sel.CSS, nil
	case sel.AccessibilityID != "":
		return "css selector", fmt.Sprintf(`[aria-label=%q]`, sel.AccessibilityID), nil
	case sel.Text != "":
		return "xpath", fmt.Sprintf(`//*[text()=%q]`, sel.Text), nil
	case sel.TextContains != "":
		return "xpath", fmt.Sprintf(`//*[contains(text(), %q)]`, sel.TextContains), nil
	case sel.XPath != "":
		return "xpath", sel.XPath, nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no web strategy")
	}
}
