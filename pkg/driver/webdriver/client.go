// Package webdriver implements the WebDriver-style JSON/HTTP protocol
// shared by the web, ios, android, macos and windows backends. Adapters own
// a Client each and layer their backend-specific endpoints on the raw
// Get/Post/Delete helpers.
package webdriver

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
)

// w3cElementKey is the W3C WebDriver element identifier key. Legacy
// backends use "ELEMENT" instead; responses are checked for both.
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// BackendError is a protocol-level error reported by the backend in a
// well-formed response body. Transport failures are reported separately.
type BackendError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	}
	return "backend error " + e.Code
}

// NoSuchElement reports whether the backend signalled element absence.
func (e *BackendError) NoSuchElement() bool {
	return e.Code == "no such element"
}

// Client is an HTTP client for a WebDriver-style automation backend.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint config.
func NewClient(cfg core.DriverConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

// Session management

// CreateSession opens a backend session with the given capabilities
// payload and records the returned session id. An existing session id is
// overwritten without cleanup.
func (c *Client) CreateSession(capabilities map[string]interface{}) (string, error) {
	resp, err := c.Post("/session", capabilities)
	if err != nil {
		if _, ok := err.(*BackendError); ok {
			return "", core.ErrLaunchFailed.WithCause(err)
		}
		return "", err
	}

	sessionID := ""
	if value, ok := resp["value"].(map[string]interface{}); ok {
		if id, ok := value["sessionId"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		// Legacy shape puts the id at the top level.
		if id, ok := resp["sessionId"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		return "", core.ErrLaunchFailed.WithMessage("backend returned no session id")
	}

	c.sessionID = sessionID
	return sessionID, nil
}

// DeleteSession ends the current session.
func (c *Client) DeleteSession() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.Delete("/session/" + c.sessionID)
	c.sessionID = ""
	return err
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// SessionID returns the current session id.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Available probes backend liveness via GET /status.
func (c *Client) Available() bool {
	probe := &http.Client{Timeout: 5 * time.Second}
	resp, err := probe.Get(c.baseURL + "/status")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Element verbs

// FindElement resolves one element to its backend-native id. Absence is
// reported as found=false with a nil error; the error is reserved for
// transport failures.
func (c *Client) FindElement(using, value string) (string, bool, error) {
	resp, err := c.Post(c.SessionPath("/element"), map[string]interface{}{
		"using": using,
		"value": value,
	})
	if err != nil {
		if be, ok := err.(*BackendError); ok && be.NoSuchElement() {
			return "", false, nil
		}
		return "", false, err
	}

	id := extractElementID(resp["value"])
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// FindElements resolves all matching elements to backend-native ids.
func (c *Client) FindElements(using, value string) ([]string, error) {
	resp, err := c.Post(c.SessionPath("/elements"), map[string]interface{}{
		"using": using,
		"value": value,
	})
	if err != nil {
		if be, ok := err.(*BackendError); ok && be.NoSuchElement() {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	if values, ok := resp["value"].([]interface{}); ok {
		for _, v := range values {
			if id := extractElementID(v); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// FindChildElement resolves one element scoped under a parent element.
func (c *Client) FindChildElement(parentID, using, value string) (string, bool, error) {
	resp, err := c.Post(c.SessionPath("/element/"+parentID+"/element"), map[string]interface{}{
		"using": using,
		"value": value,
	})
	if err != nil {
		if be, ok := err.(*BackendError); ok && be.NoSuchElement() {
			return "", false, nil
		}
		return "", false, err
	}

	id := extractElementID(resp["value"])
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}

// FindChildElements resolves all matching elements under a parent element.
func (c *Client) FindChildElements(parentID, using, value string) ([]string, error) {
	resp, err := c.Post(c.SessionPath("/element/"+parentID+"/elements"), map[string]interface{}{
		"using": using,
		"value": value,
	})
	if err != nil {
		if be, ok := err.(*BackendError); ok && be.NoSuchElement() {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	if values, ok := resp["value"].([]interface{}); ok {
		for _, v := range values {
			if id := extractElementID(v); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ElementClick clicks an element.
func (c *Client) ElementClick(elementID string) error {
	_, err := c.Post(c.SessionPath("/element/"+elementID+"/click"), nil)
	return normalizeAction(err)
}

// ElementSendKeys types text into an element.
func (c *Client) ElementSendKeys(elementID, text string) error {
	_, err := c.Post(c.SessionPath("/element/"+elementID+"/value"), map[string]interface{}{
		"text": text,
	})
	return normalizeAction(err)
}

// ElementClear clears an element's text.
func (c *Client) ElementClear(elementID string) error {
	_, err := c.Post(c.SessionPath("/element/"+elementID+"/clear"), nil)
	return normalizeAction(err)
}

// ElementText returns an element's text.
func (c *Client) ElementText(elementID string) (string, error) {
	resp, err := c.Get(c.SessionPath("/element/" + elementID + "/text"))
	if err != nil {
		return "", normalizeAction(err)
	}
	if value, ok := resp["value"].(string); ok {
		return value, nil
	}
	return "", nil
}

// ElementRect returns an element's bounds.
func (c *Client) ElementRect(elementID string) (core.Rect, error) {
	resp, err := c.Get(c.SessionPath("/element/" + elementID + "/rect"))
	if err != nil {
		return core.Rect{}, normalizeAction(err)
	}

	var rect core.Rect
	if value, ok := resp["value"].(map[string]interface{}); ok {
		if v, ok := value["x"].(float64); ok {
			rect.X = int(v)
		}
		if v, ok := value["y"].(float64); ok {
			rect.Y = int(v)
		}
		if v, ok := value["width"].(float64); ok {
			rect.Width = int(v)
		}
		if v, ok := value["height"].(float64); ok {
			rect.Height = int(v)
		}
	}
	return rect, nil
}

// ElementDisplayed checks if an element is visible.
func (c *Client) ElementDisplayed(elementID string) (bool, error) {
	resp, err := c.Get(c.SessionPath("/element/" + elementID + "/displayed"))
	if err != nil {
		return false, normalizeAction(err)
	}
	if value, ok := resp["value"].(bool); ok {
		return value, nil
	}
	return false, nil
}

// ElementEnabled checks if an element is enabled.
func (c *Client) ElementEnabled(elementID string) (bool, error) {
	resp, err := c.Get(c.SessionPath("/element/" + elementID + "/enabled"))
	if err != nil {
		return false, normalizeAction(err)
	}
	if value, ok := resp["value"].(bool); ok {
		return value, nil
	}
	return false, nil
}

// Screen

// Screenshot captures the screen as PNG.
func (c *Client) Screenshot() ([]byte, error) {
	resp, err := c.Get(c.SessionPath("/screenshot"))
	if err != nil {
		return nil, normalizeAction(err)
	}
	if value, ok := resp["value"].(string); ok {
		return base64.StdEncoding.DecodeString(value)
	}
	return nil, core.ErrActionFailed.WithMessage("invalid screenshot response")
}

// Source returns the UI hierarchy dump.
func (c *Client) Source() (string, error) {
	resp, err := c.Get(c.SessionPath("/source"))
	if err != nil {
		return "", normalizeAction(err)
	}
	if value, ok := resp["value"].(string); ok {
		return value, nil
	}
	return "", core.ErrActionFailed.WithMessage("invalid source response")
}

// PerformActions posts a W3C Actions payload (pointer/key/wheel sequences).
func (c *Client) PerformActions(actions []interface{}) error {
	_, err := c.Post(c.SessionPath("/actions"), map[string]interface{}{
		"actions": actions,
	})
	return normalizeAction(err)
}

// HTTP helpers

// SessionPath prefixes a path with the current session scope.
func (c *Client) SessionPath(path string) string {
	if c.sessionID != "" {
		return "/session/" + c.sessionID + path
	}
	return path
}

// Get sends a GET request and parses the JSON response.
func (c *Client) Get(path string) (map[string]interface{}, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

// Post sends a POST request with a JSON body and parses the response.
func (c *Client) Post(path string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, core.ErrActionFailed.WithCause(err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reqBody)
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

// Delete sends a DELETE request and parses the JSON response.
func (c *Client) Delete(path string) (map[string]interface{}, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, core.ErrActionFailed.WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

// parseResponse decodes the body and surfaces protocol errors embedded in
// the value object. Missing fields are never fatal; callers treat them as
// absent.
func (c *Client) parseResponse(resp *http.Response) (map[string]interface{}, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, core.ErrConnectionFailed.
			WithMessage("malformed backend response").
			WithCause(fmt.Errorf("%w (body: %s)", err, string(body)))
	}

	if value, ok := result["value"].(map[string]interface{}); ok {
		if code, ok := value["error"].(string); ok {
			message := code
			if msg, ok := value["message"].(string); ok {
				message = msg
			}
			return nil, &BackendError{Code: code, Message: message}
		}
	}

	return result, nil
}

// extractElementID pulls a backend-native element id out of a response
// value, accepting both the W3C and the legacy key.
func extractElementID(value interface{}) string {
	m, ok := value.(map[string]interface{})
	if !ok {
		return ""
	}
	if id, ok := m[w3cElementKey].(string); ok {
		return id
	}
	if id, ok := m["ELEMENT"].(string); ok {
		return id
	}
	return ""
}

// normalizeAction maps protocol errors onto the narrow driver error set.
// Transport failures pass through already normalized.
func normalizeAction(err error) error {
	if err == nil {
		return nil
	}
	if be, ok := err.(*BackendError); ok {
		return core.ErrActionFailed.WithMessage(be.Message).WithCause(be)
	}
	return err
}
