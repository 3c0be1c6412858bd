package ios

import (
	"fmt"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mapSelector converts a generic selector into a WDA strategy/value pair.
// Priority: accessibility id / test id > text > xpath > class chain >
// predicate. CSS and Android strategies are not representable.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.AccessibilityID != "":
		return "accessibility id", sel.AccessibilityID, nil
	case sel.TestID != "":
		// Test ids surface as accessibility identifiers on iOS.
		return "accessibility id", sel.TestID, nil
	case sel.Text != "":
		return "xpath", fmt.Sprintf(`//*[@label=%q or @value=%q]`, sel.Text, sel.Text), nil
	case sel.TextContains != "":
		return "-ios predicate string", fmt.Sprintf(`label CONTAINS %q`, sel.TextContains), nil
	case sel.XPath != "":
		return "xpath", sel.XPath, nil
	case sel.ClassChain != "":
		return "-ios class chain", sel.ClassChain, nil
	case sel.Predicate != "":
		return "-ios predicate string", sel.Predicate, nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no iOS strategy")
	}
}
