package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the panel API. The panel authenticates via
// cookies; the client replays the stored session and credential cookies and
// captures updates from Set-Cookie headers so they survive between commands.
type Client struct {
	baseURL    string
	session    string
	credential string
	httpClient *http.Client
}

// NewClient creates a new panel API client.
func NewClient(baseURL, session, credential string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    session,
		credential: credential,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Session returns the current session cookie value.
func (c *Client) Session() string {
	return c.session
}

// Credential returns the current credential cookie value.
func (c *Client) Credential() string {
	return c.credential
}

// errorResponse is the panel's error envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Do performs an HTTP request against the panel API.
func (c *Client) Do(method, path string, query url.Values, body, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "panel_session", Value: c.session})
	}
	if c.credential != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: c.credential})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.captureCookies(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request.
func (c *Client) Get(path string, query url.Values, result any) error {
	return c.Do(http.MethodGet, path, query, nil, result)
}

// Post performs a POST request.
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, nil, body, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(path string, result any) error {
	return c.Do(http.MethodDelete, path, nil, nil, result)
}

// captureCookies records session and credential cookies set by the server.
// A MaxAge < 0 clears the stored value.
func (c *Client) captureCookies(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		value := cookie.Value
		if cookie.MaxAge < 0 {
			value = ""
		}
		switch cookie.Name {
		case "panel_session":
			c.session = value
		case "jwt":
			c.credential = value
		}
	}
}
