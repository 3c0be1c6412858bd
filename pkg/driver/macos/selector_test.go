package macos

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// TestMapSelector tests the macOS strategy priority order
func TestMapSelector(t *testing.T) {
	tests := []struct {
		name      string
		sel       core.Selector
		wantUsing string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "accessibility id",
			sel:       core.ByAccessibilityID("saveButton"),
			wantUsing: "accessibility id",
			wantValue: "saveButton",
		},
		{
			name:      "test id surfaces as accessibility id",
			sel:       core.ByTestID("save-btn"),
			wantUsing: "accessibility id",
			wantValue: "save-btn",
		},
		{
			name:      "text matches AXTitle or AXValue",
			sel:       core.ByText("Save"),
			wantUsing: "xpath",
			wantValue: `//*[@AXTitle="Save" or @AXValue="Save"]`,
		},
		{
			name:      "text contains",
			sel:       core.ByTextContains("Sav"),
			wantUsing: "xpath",
			wantValue: `//*[contains(@AXTitle, "Sav")]`,
		},
		{
			name:      "role becomes AXRole xpath",
			sel:       core.ByRole("AXButton"),
			wantUsing: "xpath",
			wantValue: `//*[@AXRole="AXButton"]`,
		},
		{
			name:    "css has no macOS strategy",
			sel:     core.ByCSS("#save"),
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
