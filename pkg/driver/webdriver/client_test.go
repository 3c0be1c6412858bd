package webdriver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// mockBackend creates a mock WebDriver backend for testing
func mockBackend(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// testClient builds a client pointed at the mock server
func testClient(server *httptest.Server) *Client {
	return &Client{
		baseURL:    server.URL,
		httpClient: http.DefaultClient,
	}
}

// TestNewClient tests client creation with default config
func TestNewClient(t *testing.T) {
	client := NewClient(core.DriverConfig{Port: 9515})

	if client.baseURL != "http://127.0.0.1:9515" {
		t.Errorf("Expected baseURL 'http://127.0.0.1:9515', got '%s'", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}
}

// TestCreateSession tests W3C session creation
func TestCreateSession(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/session" {
			t.Errorf("Expected POST /session, got %s %s", r.Method, r.URL.Path)
		}
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"sessionId": "test-session-123",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	id, err := client.CreateSession(map[string]interface{}{})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if id != "test-session-123" {
		t.Errorf("Expected sessionID 'test-session-123', got '%s'", id)
	}
	if !client.HasSession() {
		t.Error("Expected HasSession to be true after CreateSession")
	}
}

// TestCreateSessionLegacyFormat tests the top-level session id shape
func TestCreateSessionLegacyFormat(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"sessionId": "legacy-session-456",
		})
	})
	defer server.Close()

	client := testClient(server)
	id, err := client.CreateSession(map[string]interface{}{})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if id != "legacy-session-456" {
		t.Errorf("Expected sessionID 'legacy-session-456', got '%s'", id)
	}
}

// TestCreateSessionRejected tests session rejection mapping to launch failure
func TestCreateSessionRejected(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"error":   "session not created",
				"message": "no devices attached",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	_, err := client.CreateSession(map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected error for rejected session")
	}
	if !errors.Is(err, core.ErrLaunchFailed) {
		t.Errorf("Expected ErrLaunchFailed, got %v", err)
	}
}

// TestDeleteSession tests session deletion
func TestDeleteSession(t *testing.T) {
	deleted := false
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "DELETE" && r.URL.Path == "/session/sess-1" {
			deleted = true
		}
		jsonResponse(w, map[string]interface{}{"value": nil})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	if err := client.DeleteSession(); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if !deleted {
		t.Error("Expected DELETE /session/sess-1 to be called")
	}
	if client.HasSession() {
		t.Error("Expected session to be cleared")
	}
}

// TestFindElementFound tests element resolution with the W3C key
func TestFindElementFound(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"element-6066-11e4-a52e-4f735466cecf": "elem-1",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	id, found, err := client.FindElement("css selector", "#login")
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	if !found || id != "elem-1" {
		t.Errorf("Expected (elem-1, true), got (%s, %v)", id, found)
	}
}

// TestFindElementLegacyKey tests element resolution with the legacy key
func TestFindElementLegacyKey(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"ELEMENT": "elem-legacy",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	id, found, err := client.FindElement("xpath", "//button")
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	if !found || id != "elem-legacy" {
		t.Errorf("Expected (elem-legacy, true), got (%s, %v)", id, found)
	}
}

// TestFindElementAbsent tests that no-such-element is absence, not an error
func TestFindElementAbsent(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"error":   "no such element",
				"message": "unable to locate element",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	id, found, err := client.FindElement("css selector", "#missing")
	if err != nil {
		t.Fatalf("Expected nil error for absence, got %v", err)
	}
	if found || id != "" {
		t.Errorf("Expected absence, got (%s, %v)", id, found)
	}
}

// TestFindElementTransportFailure tests that transport errors are surfaced
func TestFindElementTransportFailure(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // refuse connections

	client := testClient(server)
	client.sessionID = "sess-1"

	_, _, err := client.FindElement("css selector", "#login")
	if err == nil {
		t.Fatal("Expected error for unreachable backend")
	}
	if !errors.Is(err, core.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed, got %v", err)
	}
}

// TestFindElements tests multi-element resolution
func TestFindElements(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": []interface{}{
				map[string]interface{}{"element-6066-11e4-a52e-4f735466cecf": "e1"},
				map[string]interface{}{"ELEMENT": "e2"},
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	ids, err := client.FindElements("css selector", ".item")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "e1" || ids[1] != "e2" {
		t.Errorf("Expected [e1 e2], got %v", ids)
	}
}

// TestElementClick tests the click verb path
func TestElementClick(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/sess-1/element/e1/click" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		jsonResponse(w, map[string]interface{}{"value": nil})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	if err := client.ElementClick("e1"); err != nil {
		t.Fatalf("ElementClick failed: %v", err)
	}
}

// TestElementClickRejected tests action rejection mapping
func TestElementClickRejected(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"error":   "element not interactable",
				"message": "element is obscured",
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	err := client.ElementClick("e1")
	if !errors.Is(err, core.ErrActionFailed) {
		t.Errorf("Expected ErrActionFailed, got %v", err)
	}
}

// TestElementText tests the text query
func TestElementText(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{"value": "Sign In"})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	text, err := client.ElementText("e1")
	if err != nil {
		t.Fatalf("ElementText failed: %v", err)
	}
	if text != "Sign In" {
		t.Errorf("Expected 'Sign In', got '%s'", text)
	}
}

// TestElementRect tests bounds parsing
func TestElementRect(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": map[string]interface{}{
				"x": 10.0, "y": 20.0, "width": 100.0, "height": 40.0,
			},
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	rect, err := client.ElementRect("e1")
	if err != nil {
		t.Fatalf("ElementRect failed: %v", err)
	}
	want := core.Rect{X: 10, Y: 20, Width: 100, Height: 40}
	if rect != want {
		t.Errorf("Expected %+v, got %+v", want, rect)
	}
}

// TestScreenshot tests base64 decoding
func TestScreenshot(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, map[string]interface{}{
			"value": base64.StdEncoding.EncodeToString(payload),
		})
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	data, err := client.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot failed: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("Expected %d bytes, got %d", len(payload), len(data))
	}
}

// TestMalformedResponse tests that non-JSON bodies are connection errors
func TestMalformedResponse(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})
	defer server.Close()

	client := testClient(server)
	client.sessionID = "sess-1"

	_, err := client.Get(client.SessionPath("/source"))
	if !errors.Is(err, core.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed for malformed body, got %v", err)
	}
}

// TestAvailable tests the liveness probe
func TestAvailable(t *testing.T) {
	server := mockBackend(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("Expected GET /status, got %s", r.URL.Path)
		}
		jsonResponse(w, map[string]interface{}{"value": map[string]interface{}{"ready": true}})
	})
	defer server.Close()

	client := testClient(server)
	if !client.Available() {
		t.Error("Expected Available to be true")
	}

	server.Close()
	if client.Available() {
		t.Error("Expected Available to be false after server close")
	}
}
