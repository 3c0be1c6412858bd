package android

import (
	"fmt"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mapSelector converts a generic selector into an Appium strategy/value
// pair. Priority: accessibility id / test id > text > xpath > uiautomator.
// CSS and iOS strategies are not representable.
func mapSelector(sel core.Selector) (string, string, error) {
	switch {
	case sel.AccessibilityID != "":
		return "accessibility id", sel.AccessibilityID, nil
	case sel.TestID != "":
		// Test ids surface as resource ids on Android.
		return "-android uiautomator",
			fmt.Sprintf(`new UiSelector().resourceId(%q)`, sel.TestID), nil
	case sel.Text != "":
		return "xpath", fmt.Sprintf(`//*[@text=%q]`, sel.Text), nil
	case sel.TextContains != "":
		return "-android uiautomator",
			fmt.Sprintf(`new UiSelector().textContains(%q)`, sel.TextContains), nil
	case sel.XPath != "":
		return "xpath", sel.XPath, nil
	case sel.UIAutomator != "":
		return "-android uiautomator", sel.UIAutomator, nil
	default:
		return "", "", core.ErrInvalidSelector.WithMessage(
			"selector " + sel.Describe() + " has no Android strategy")
	}
}
