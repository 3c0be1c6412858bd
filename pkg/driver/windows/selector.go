package windows

import (
	"fmt"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mapSelector converts a generic selector into a WinAppDriver strategy and
// value. Priority: accessibility id / test id (automation id) > text (name)
// > xpath > class name.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.AccessibilityID != "":
		return "accessibility id", sel.AccessibilityID, nil
	case sel.TestID != "":
		// Test ids surface as automation ids on Windows.
		return "accessibility id", sel.TestID, nil
	case sel.Text != "":
		return "name", sel.Text, nil
	case sel.TextContains != "":
		return "xpath", fmt.Sprintf(`//*[contains(@Name, %q)]`, sel.TextContains), nil
	case sel.XPath != "":
		return "xpath", sel.XPath, nil
	case sel.ClassName != "":
		return "class name", sel.ClassName, nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no Windows strategy")
	}
}
