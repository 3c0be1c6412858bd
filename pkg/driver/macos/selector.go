package macos

import (
	"fmt"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mapSelector converts a generic selector into a bridge strategy/value
// pair. Priority: accessibility id / test id > text > xpath > role.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.AccessibilityID != "":
		return "accessibility id", sel.AccessibilityID, nil
	case sel.TestID != "":
		return "accessibility id", sel.TestID, nil
	case sel.Text != "":
		return "xpath", fmt.Sprintf(`//*[@AXTitle=%q or @AXValue=%q]`, sel.Text, sel.Text), nil
	case sel.TextContains != "":
		return "xpath", fmt.Sprintf(`//*[contains(@AXTitle, %q)]`, sel.TextContains), nil
	case sel.XPath != "":
		return "xpath", sel.XPath, nil
	case sel.Role != "":
		return "xpath", fmt.Sprintf(`//*[@AXRole=%q]`, sel.Role), nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no macOS strategy")
	}
}
