// Package linuxbridge implements the Driver interface against the Linux
// AT-SPI bridge. The bridge speaks a bespoke verb/path JSON vocabulary
// (POST /session/{id}/findElement, /click, /getText, ...) rather than the
// standard JSON Wire Protocol, so it carries its own client.
package linuxbridge

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

// DefaultPort is the AT-SPI bridge default.
const DefaultPort = 8300

// client is an HTTP client for the AT-SPI bridge. Every command is a POST
// with a JSON body; errors come back as {"error": "..."} in a 200 response.
type client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

func newClient(cfg core.DriverConfig) *client {
	return &client{
		baseURL: cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

// post sends a bridge command and returns the decoded response body.
// Bridge-level errors are normalized into the driver error set.
func (c *client) post(path string, body map[string]interface{}) (map[string]interface{}, error) {
	if body == nil {
		body = map[string]interface{}{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, core.ErrActionFailed.WithCause(err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.ErrConnectionFailed.WithCause(err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, core.ErrConnectionFailed.
			WithMessage("malformed bridge response").
			WithCause(fmt.Errorf("%w (body: %s)", err, string(raw)))
	}

	if msg, ok := result["error"].(string); ok && msg != "" {
		return nil, core.ErrActionFailed.WithMessage(msg)
	}
	return result, nil
}

// command posts a session-scoped command.
func (c *client) command(verb string, body map[string]interface{}) (map[string]interface{}, error) {
	if c.sessionID == "" {
		return nil, core.ErrNotConnected
	}
	return c.post("/session/"+c.sessionID+"/"+verb, body)
}

// launch starts an application and opens a session for it.
func (c *client) launch(body map[string]interface{}) error {
	resp, err := c.post("/session/new/launch", body)
	if err != nil {
		if be, ok := err.(*core.DriverError); ok && be.Kind == core.ErrKindAction {
			return core.ErrLaunchFailed.WithMessage(be.Message)
		}
		return err
	}
	id, _ := resp["sessionId"].(string)
	if id == "" {
		return core.ErrLaunchFailed.WithMessage("bridge returned no session id")
	}
	c.sessionID = id
	return nil
}

// attach opens a session against an already running application.
func (c *client) attach(body map[string]interface{}) error {
	resp, err := c.post("/session/new/attach", body)
	if err != nil {
		if be, ok := err.(*core.DriverError); ok && be.Kind == core.ErrKindAction {
			return core.ErrLaunchFailed.WithMessage(be.Message)
		}
		return err
	}
	id, _ := resp["sessionId"].(string)
	if id == "" {
		return core.ErrLaunchFailed.WithMessage("bridge returned no session id")
	}
	c.sessionID = id
	return nil
}

// closeSession ends the session, terminating the launched process.
func (c *client) closeSession() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.command("close", nil)
	c.sessionID = ""
	return err
}

// findElement resolves one element to a bridge element id. Absence is
// ("", false, nil): the bridge reports it as {"elementId": null}.
func (c *client) findElement(strategy, value, parentID string) (string, bool, error) {
	body := map[string]interface{}{
		"strategy": strategy,
		"value":    value,
	}
	if parentID != "" {
		body["parentId"] = parentID
	}
	resp, err := c.command("findElement", body)
	if err != nil {
		return "", false, err
	}
	if id, ok := resp["elementId"].(string); ok && id != "" {
		return id, true, nil
	}
	return "", false, nil
}

// findElements resolves all matching elements.
func (c *client) findElements(strategy, value string) ([]string, error) {
	resp, err := c.command("findElements", map[string]interface{}{
		"strategy": strategy,
		"value":    value,
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	if values, ok := resp["elements"].([]interface{}); ok {
		for _, v := range values {
			if id, ok := v.(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// elementCommand posts a command targeting one element.
func (c *client) elementCommand(verb, elementID string, extra map[string]interface{}) (map[string]interface{}, error) {
	body := map[string]interface{}{"elementId": elementID}
	for k, v := range extra {
		body[k] = v
	}
	return c.command(verb, body)
}

// value runs an element query verb and returns the "value" field.
func (c *client) value(verb, elementID string) (interface{}, error) {
	resp, err := c.elementCommand(verb, elementID, nil)
	if err != nil {
		return nil, err
	}
	return resp["value"], nil
}

// bounds returns an element's screen rect.
func (c *client) bounds(elementID string) (core.Rect, error) {
	resp, err := c.elementCommand("getBounds", elementID, nil)
	if err != nil {
		return core.Rect{}, err
	}

	var rect core.Rect
	if v, ok := resp["x"].(float64); ok {
		rect.X = int(v)
	}
	if v, ok := resp["y"].(float64); ok {
		rect.Y = int(v)
	}
	if v, ok := resp["width"].(float64); ok {
		rect.Width = int(v)
	}
	if v, ok := resp["height"].(float64); ok {
		rect.Height = int(v)
	}
	return rect, nil
}

// screenshot captures the session window as PNG.
func (c *client) screenshot() ([]byte, error) {
	resp, err := c.command("screenshot", nil)
	if err != nil {
		return nil, err
	}
	if data, ok := resp["data"].(string); ok {
		return base64.StdEncoding.DecodeString(data)
	}
	return nil, core.ErrActionFailed.WithMessage("invalid screenshot response")
}

// available probes bridge liveness. The bridge has no /status endpoint;
// an invalid-path command still answers with a well-formed error body.
func (c *client) available() bool {
	probe := &http.Client{Timeout: 5 * time.Second}
	resp, err := probe.Post(c.baseURL+"/session/probe/window", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
