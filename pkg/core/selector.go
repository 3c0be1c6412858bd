package core

import "fmt"

// Selector describes element-locating criteria independent of any backend.
// Selectors are immutable values: every chaining method returns a modified
// copy, never mutates the receiver. Each adapter maps the populated fields
// to its own strategy/value pair in a fixed priority order.
type Selector struct {
	// Primary strategies
	TestID          string
	AccessibilityID string
	Text            string
	TextContains    string
	XPath           string

	// Backend-specific strategies
	CSS         string // web
	Predicate   string // ios
	ClassChain  string // ios
	UIAutomator string // android
	Role        string // macos, linux
	ClassName   string // windows

	// Refinements
	Index  int // match position within FindElements results
	Parent *Selector

	// State filters applied after location
	OnlyEnabled bool
	OnlyVisible bool
}

// ByTestID selects by test id (data-testid attribute on web).
func ByTestID(id string) Selector { return Selector{TestID: id} }

// ByAccessibilityID selects by accessibility identifier.
func ByAccessibilityID(id string) Selector { return Selector{AccessibilityID: id} }

// ByText selects by exact text match.
func ByText(text string) Selector { return Selector{Text: text} }

// ByTextContains selects by partial text match.
func ByTextContains(text string) Selector { return Selector{TextContains: text} }

// ByXPath selects by XPath expression.
func ByXPath(xpath string) Selector { return Selector{XPath: xpath} }

// ByCSS selects by CSS selector (web only).
func ByCSS(css string) Selector { return Selector{CSS: css} }

// ByPredicate selects by iOS predicate string.
func ByPredicate(predicate string) Selector { return Selector{Predicate: predicate} }

// ByClassChain selects by iOS class chain expression.
func ByClassChain(chain string) Selector { return Selector{ClassChain: chain} }

// ByUIAutomator selects by Android UIAutomator expression.
func ByUIAutomator(expr string) Selector { return Selector{UIAutomator: expr} }

// ByRole selects by accessibility role (macOS, Linux).
func ByRole(role string) Selector { return Selector{Role: role} }

// ByClassName selects by native class name (Windows).
func ByClassName(name string) Selector { return Selector{ClassName: name} }

// WithIndex returns a copy matching the i-th element when multiple match.
func (s Selector) WithIndex(i int) Selector {
	s.Index = i
	return s
}

// WithinParent returns a copy scoped under the given parent selector.
func (s Selector) WithinParent(parent Selector) Selector {
	s.Parent = &parent
	return s
}

// EnabledOnly returns a copy that only matches enabled elements.
func (s Selector) EnabledOnly() Selector {
	s.OnlyEnabled = true
	return s
}

// VisibleOnly returns a copy that only matches visible elements.
func (s Selector) VisibleOnly() Selector {
	s.OnlyVisible = true
	return s
}

// IsEmpty returns true if no locating strategy is set.
func (s Selector) IsEmpty() bool {
	return s.TestID == "" &&
		s.AccessibilityID == "" &&
		s.Text == "" &&
		s.TextContains == "" &&
		s.XPath == "" &&
		s.CSS == "" &&
		s.Predicate == "" &&
		s.ClassChain == "" &&
		s.UIAutomator == "" &&
		s.Role == "" &&
		s.ClassName == ""
}

// Describe returns a short human-readable description for logs and errors.
func (s Selector) Describe() string {
	switch {
	case s.TestID != "":
		return fmt.Sprintf("testId=%q", s.TestID)
	case s.AccessibilityID != "":
		return fmt.Sprintf("accessibilityId=%q", s.AccessibilityID)
	case s.Text != "":
		return fmt.Sprintf("text=%q", s.Text)
	case s.TextContains != "":
		return fmt.Sprintf("textContains=%q", s.TextContains)
	case s.XPath != "":
		return fmt.Sprintf("xpath=%q", s.XPath)
	case s.CSS != "":
		return fmt.Sprintf("css=%q", s.CSS)
	case s.Predicate != "":
		return fmt.Sprintf("predicate=%q", s.Predicate)
	case s.ClassChain != "":
		return fmt.Sprintf("classChain=%q", s.ClassChain)
	case s.UIAutomator != "":
		return fmt.Sprintf("uiAutomator=%q", s.UIAutomator)
	case s.Role != "":
		return fmt.Sprintf("role=%q", s.Role)
	case s.ClassName != "":
		return fmt.Sprintf("className=%q", s.ClassName)
	default:
		return "<empty>"
	}
}
