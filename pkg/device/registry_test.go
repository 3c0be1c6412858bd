package device

import (
	"testing"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

func testDevices() []Info {
	return []Info{
		{
			ID: "pixel-7", Platform: core.PlatformAndroid,
			Capabilities: []string{"uiautomator2", "camera"},
			Tags:         []string{"physical", "fast"},
		},
		{
			ID: "iphone-15", Platform: core.PlatformIOS,
			Capabilities: []string{"wda"},
			Tags:         []string{"simulator"},
		},
		{
			ID: "chrome-1", Platform: core.PlatformWeb,
			Capabilities: []string{"headless"},
		},
	}
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	for _, d := range testDevices() {
		r.Register(d)
	}
	return r
}

func TestRegister_DefaultsToAvailable(t *testing.T) {
	r := NewRegistry()
	r.Register(Info{ID: "d1", Platform: core.PlatformAndroid})

	info, ok := r.Get("d1")
	if !ok {
		t.Fatal("expected device to be registered")
	}
	if info.Status != StatusAvailable {
		t.Errorf("expected available, got %s", info.Status)
	}
	if info.LastSeen.IsZero() {
		t.Error("expected LastSeen to be set")
	}
}

func TestUnregister(t *testing.T) {
	r := newTestRegistry()
	r.Unregister("pixel-7")

	if _, ok := r.Get("pixel-7"); ok {
		t.Error("expected device to be gone")
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 devices, got %d", r.Len())
	}

	// Unknown id is a no-op
	r.Unregister("nope")
}

func TestUpdateStatus(t *testing.T) {
	r := newTestRegistry()

	if !r.UpdateStatus("pixel-7", StatusBusy) {
		t.Fatal("expected update to succeed")
	}
	info, _ := r.Get("pixel-7")
	if info.Status != StatusBusy {
		t.Errorf("expected busy, got %s", info.Status)
	}

	if r.UpdateStatus("nope", StatusBusy) {
		t.Error("expected update of unknown device to fail")
	}
}

// TestFind_FilterPredicates verifies that Find returns exactly the devices
// satisfying every filter predicate.
func TestFind_FilterPredicates(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty filter matches all",
			filter: Filter{},
			want:   []string{"pixel-7", "iphone-15", "chrome-1"},
		},
		{
			name:   "auto platform is a wildcard",
			filter: Filter{Platform: core.PlatformAuto},
			want:   []string{"pixel-7", "iphone-15", "chrome-1"},
		},
		{
			name:   "platform filter",
			filter: Filter{Platform: core.PlatformAndroid},
			want:   []string{"pixel-7"},
		},
		{
			name:   "single capability",
			filter: Filter{Capabilities: []string{"camera"}},
			want:   []string{"pixel-7"},
		},
		{
			name:   "all capabilities must match",
			filter: Filter{Capabilities: []string{"uiautomator2", "headless"}},
			want:   nil,
		},
		{
			name:   "all tags must match",
			filter: Filter{Tags: []string{"physical", "fast"}},
			want:   []string{"pixel-7"},
		},
		{
			name:   "tag subset mismatch",
			filter: Filter{Tags: []string{"physical", "slow"}},
			want:   nil,
		},
		{
			name:   "status filter",
			filter: Filter{Status: StatusBusy},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Find(tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d devices, got %d (%v)", len(tt.want), len(got), got)
			}
			found := make(map[string]bool)
			for _, d := range got {
				found[d.ID] = true
			}
			for _, id := range tt.want {
				if !found[id] {
					t.Errorf("expected %s in result", id)
				}
			}
		})
	}
}

func TestFind_ReturnsCopies(t *testing.T) {
	r := newTestRegistry()

	devices := r.Find(Filter{Platform: core.PlatformAndroid})
	devices[0].Status = StatusError

	info, _ := r.Get("pixel-7")
	if info.Status == StatusError {
		t.Error("mutating a Find result should not affect the registry")
	}
}

func TestSubscribe_ReceivesLifecycleEvents(t *testing.T) {
	r := NewRegistry()
	l := r.Subscribe(8)

	r.Register(Info{ID: "d1", Platform: core.PlatformWeb})
	r.UpdateStatus("d1", StatusBusy)
	r.Unregister("d1")

	want := []EventType{EventConnected, EventStatusChange, EventDisconnected}
	for i, wantType := range want {
		select {
		case ev := <-l:
			if ev.Type != wantType || ev.DeviceID != "d1" {
				t.Errorf("event %d: expected %s for d1, got %+v", i, wantType, ev)
			}
		default:
			t.Fatalf("expected %d events, got %d", len(want), i)
		}
	}
}

// TestSubscribe_FullListenerIsSkipped verifies best-effort delivery: a full
// listener drops events instead of blocking the registry.
func TestSubscribe_FullListenerIsSkipped(t *testing.T) {
	r := NewRegistry()
	l := r.Subscribe(1)

	r.Register(Info{ID: "d1", Platform: core.PlatformWeb})
	r.Register(Info{ID: "d2", Platform: core.PlatformWeb}) // dropped

	if len(l) != 1 {
		t.Fatalf("expected 1 buffered event, got %d", len(l))
	}
	ev := <-l
	if ev.DeviceID != "d1" {
		t.Errorf("expected first event kept, got %+v", ev)
	}
}

func TestUnsubscribe(t *testing.T) {
	r := NewRegistry()
	l := r.Subscribe(8)
	r.Unsubscribe(l)

	r.Register(Info{ID: "d1", Platform: core.PlatformWeb})
	if len(l) != 0 {
		t.Error("expected no events after unsubscribe")
	}
}
