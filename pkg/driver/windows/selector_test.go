package windows

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// TestMapSelector tests the Windows strategy priority order
func TestMapSelector(t *testing.T) {
	tests := []struct {
		name      string
		sel       core.Selector
		wantUsing string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "accessibility id is the automation id",
			sel:       core.ByAccessibilityID("SaveButton"),
			wantUsing: "accessibility id",
			wantValue: "SaveButton",
		},
		{
			name:      "test id surfaces as automation id",
			sel:       core.ByTestID("save-btn"),
			wantUsing: "accessibility id",
			wantValue: "save-btn",
		},
		{
			name:      "text becomes name lookup",
			sel:       core.ByText("Save"),
			wantUsing: "name",
			wantValue: "Save",
		},
		{
			name:      "text contains becomes Name xpath",
			sel:       core.ByTextContains("Sav"),
			wantUsing: "xpath",
			wantValue: `//*[contains(@Name, "Sav")]`,
		},
		{
			name:      "class name",
			sel:       core.ByClassName("Button"),
			wantUsing: "class name",
			wantValue: "Button",
		},
		{
			name:    "css has no Windows strategy",
			sel:     core.ByCSS("#save"),
			wantErr: true,
		},
		{
			name:    "predicate has no Windows strategy",
			sel:     core.ByPredicate("name == 'ok'"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			using, value, err := mapSelector(tt.sel)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidSelector) {
					t.Fatalf("expected ErrInvalidSelector, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if using != tt.wantUsing || value != tt.wantValue {
				t.Errorf("got (%s, %s), want (%s, %s)", using, value, tt.wantUsing, tt.wantValue)
			}
		})
	}
}
