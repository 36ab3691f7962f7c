package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	entity "skillswap/internal/domain"
)

// APIError is a response the server actually produced (4xx/5xx with a body).
// Anything else (timeout, DNS, connection refused) surfaces as a plain
// error and is treated as transient by the coordinator.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// APIClient talks to the exchange server, carrying the session cookie across
// calls the way the browser client does.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &APIClient{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetSessionCookie injects a previously saved session token, so the CLI can
// reuse a login across invocations.
func (c *APIClient) SetSessionCookie(rawCookie string) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	c.http.Jar.SetCookies(req.URL, []*http.Cookie{{Name: "session", Value: rawCookie, Path: "/"}})
	return nil
}

// Login authenticates and returns the session cookie value for persistence.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.postJSON(ctx, "/api/login", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("login response carried no session cookie")
}

// CreateExchangeRequest submits one exchange request. A non-2xx response
// comes back as *APIError; transport failures come back as plain errors.
func (c *APIClient) CreateExchangeRequest(ctx context.Context, entry PendingEntry) error {
	resp, err := c.postJSON(ctx, "/api/exchange/request", entry)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

func (c *APIClient) Received(ctx context.Context) ([]entity.ExchangeView, error) {
	return c.getViews(ctx, "/api/exchange/received")
}

func (c *APIClient) Sent(ctx context.Context) ([]entity.ExchangeView, error) {
	return c.getViews(ctx, "/api/exchange/sent")
}

func (c *APIClient) SetStatus(ctx context.Context, exchangeID int64, status entity.Status) error {
	payload, err := json.Marshal(map[string]entity.Status{"status": status})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/exchange/%d/status", c.baseURL, exchangeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

// Online probes connectivity with a cheap session check. The result mirrors
// what navigator.onLine gives the browser client: reachable or not, nothing
// about being logged in.
func (c *APIClient) Online(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/api/session", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *APIClient) postJSON(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func (c *APIClient) getViews(ctx context.Context, path string) ([]entity.ExchangeView, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var views []entity.ExchangeView
	if err := json.NewDecoder(resp.Body).Decode(&views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *APIClient) apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error string `json:"error"`
	}
	message := ""
	if json.Unmarshal(raw, &body) == nil {
		message = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
