package core

import "testing"

func TestSelectorBuilders(t *testing.T) {
	tests := []struct {
		name     string
		selector Selector
		describe string
	}{
		{"test id", ByTestID("login-btn"), `testId="login-btn"`},
		{"accessibility id", ByAccessibilityID("Login"), `accessibilityId="Login"`},
		{"text", ByText("Sign In"), `text="Sign In"`},
		{"text contains", ByTextContains("Sign"), `textContains="Sign"`},
		{"xpath", ByXPath("//button"), `xpath="//button"`},
		{"css", ByCSS("#login"), `css="#login"`},
		{"predicate", ByPredicate(`label == "Login"`), `predicate="label == \"Login\""`},
		{"class chain", ByClassChain("**/XCUIElementTypeButton"), `classChain="**/XCUIElementTypeButton"`},
		{"ui automator", ByUIAutomator(`new UiSelector().text("Login")`), `uiAutomator="new UiSelector().text(\"Login\")"`},
		{"role", ByRole("push button"), `role="push button"`},
		{"class name", ByClassName("Button"), `className="Button"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.selector.IsEmpty() {
				t.Error("expected non-empty selector")
			}
			if got := tt.selector.Describe(); got != tt.describe {
				t.Errorf("Describe() = %q, want %q", got, tt.describe)
			}
		})
	}
}

func TestSelectorChainingDoesNotMutate(t *testing.T) {
	base := ByTestID("submit")

	refined := base.WithIndex(2).EnabledOnly().VisibleOnly()

	if base.Index != 0 || base.OnlyEnabled || base.OnlyVisible {
		t.Errorf("base selector mutated by chaining: %+v", base)
	}
	if refined.Index != 2 {
		t.Errorf("got Index=%d, want 2", refined.Index)
	}
	if !refined.OnlyEnabled || !refined.OnlyVisible {
		t.Error("expected enabled and visible filters set")
	}
	if refined.TestID != "submit" {
		t.Errorf("got TestID=%q, want submit", refined.TestID)
	}
}

func TestSelectorWithinParent(t *testing.T) {
	parent := ByRole("dialog")
	child := ByText("OK").WithinParent(parent)

	if child.Parent == nil {
		t.Fatal("expected parent selector")
	}
	if child.Parent.Role != "dialog" {
		t.Errorf("got parent Role=%q, want dialog", child.Parent.Role)
	}
	if parent.Parent != nil {
		t.Error("parent selector must not be mutated")
	}
}

func TestSelectorIsEmpty(t *testing.T) {
	var s Selector
	if !s.IsEmpty() {
		t.Error("zero selector should be empty")
	}
	if s.Describe() != "<empty>" {
		t.Errorf("got %q, want <empty>", s.Describe())
	}

	// State filters alone do not make a selector non-empty.
	filtered := s.EnabledOnly().VisibleOnly()
	if !filtered.IsEmpty() {
		t.Error("filters without a strategy should still be empty")
	}
}
