// Package client provides a Go client for the Wayfind kiosk API.
//
// It covers the full navigation surface: destination resolution, route and
// plan computation, playback session lifecycle, and the static map dumps
// the renderer needs. The client handles HTTP communication, JSON
// serialization and standardized error handling.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/campuskiosk/wayfind/pkg/engine"
)

// APIError represents an error returned by the Wayfind API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// ResolveResult is the outcome of a destination lookup.
type ResolveResult struct {
	Found bool         `json:"found"`
	Node  *engine.Node `json:"node,omitempty"`
}

// RouteResult is the outcome of a shortest-path request.
type RouteResult struct {
	Found bool         `json:"found"`
	Path  *engine.Path `json:"path,omitempty"`
}

// PlanResult adds the renderer decomposition to a route.
type PlanResult struct {
	Found bool              `json:"found"`
	Path  *engine.Path      `json:"path,omitempty"`
	Plan  *engine.RoutePlan `json:"plan,omitempty"`
}

// Session is a playback session created on the server.
type Session struct {
	SessionID string                   `json:"session_id,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	Result    *engine.NavigationResult `json:"result"`
}

// SessionState is the live playback state for one poll.
type SessionState struct {
	SessionID string                  `json:"session_id"`
	Playback  engine.PlaybackSnapshot `json:"playback"`
}

// Client is the Go client for the Wayfind kiosk API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New creates a client for the given base URL (e.g. "http://localhost:9091").
// token may be empty when the server runs with auth disabled.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		authToken:  token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// jsonRequest executes one API call: JSON serialization, auth header,
// error mapping.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil && errResp["error"] != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// Resolve maps a free-text query to a location.
func (c *Client) Resolve(query string) (*ResolveResult, error) {
	body, err := c.jsonRequest(http.MethodPost, "/navigation/resolve", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	var out ResolveResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Route computes the shortest path from startID (empty for the kiosk
// origin) to destinationID.
func (c *Client) Route(startID, destinationID string) (*RouteResult, error) {
	body, err := c.jsonRequest(http.MethodPost, "/navigation/route", map[string]string{
		"start_id":       startID,
		"destination_id": destinationID,
	})
	if err != nil {
		return nil, err
	}
	var out RouteResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plan computes a route and its renderer decomposition.
func (c *Client) Plan(startID, destinationID string) (*PlanResult, error) {
	body, err := c.jsonRequest(http.MethodPost, "/navigation/plan", map[string]string{
		"start_id":       startID,
		"destination_id": destinationID,
	})
	if err != nil {
		return nil, err
	}
	var out PlanResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartSession resolves a query, computes the route and starts playback.
func (c *Client) StartSession(query string) (*Session, error) {
	body, err := c.jsonRequest(http.MethodPost, "/navigation/sessions", map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	var out Session
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSessionState polls the live playback state.
func (c *Client) GetSessionState(id string) (*SessionState, error) {
	body, err := c.jsonRequest(http.MethodGet, "/navigation/sessions/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out SessionState
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CloseSession ends a playback session.
func (c *Client) CloseSession(id string) error {
	_, err := c.jsonRequest(http.MethodDelete, "/navigation/sessions/"+id, nil)
	return err
}

// Floors fetches the floor plans (metadata plus opaque geometry).
func (c *Client) Floors() ([]engine.FloorPlan, error) {
	body, err := c.jsonRequest(http.MethodGet, "/map/floors", nil)
	if err != nil {
		return nil, err
	}
	var out []engine.FloorPlan
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Nodes fetches the full node table in ascending id order.
func (c *Client) Nodes() ([]engine.Node, error) {
	body, err := c.jsonRequest(http.MethodGet, "/map/nodes", nil)
	if err != nil {
		return nil, err
	}
	var out []engine.Node
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
