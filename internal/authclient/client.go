package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleet-inspector/internal/domain"
)

// Error is a login failure with the backend-provided detail when one was
// parseable, or the generic status text otherwise.
type Error struct {
	StatusCode int
	Detail     string
	Err        error
}

// Error formats the failure for notices and logs.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return fmt.Sprintf("login failed: %v", e.Err)
	}
	return "login failed"
}

// Unwrap exposes the underlying transport error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Client exchanges credentials for a bearer token at the auth endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a login client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// loginRequest is the wire body of the login exchange.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the wire body of a successful login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Login posts the credentials and returns the authenticated session. All
// failure modes come back as *Error; nothing panics or escapes unhandled.
func (c *Client) Login(ctx context.Context, username, password string) (domain.AuthSession, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return domain.AuthSession{}, &Error{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/login", bytes.NewReader(body))
	if err != nil {
		return domain.AuthSession{}, &Error{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AuthSession{}, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.AuthSession{}, &Error{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(resp),
		}
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.AuthSession{}, &Error{Err: fmt.Errorf("decode login response: %w", err)}
	}
	if payload.AccessToken == "" {
		return domain.AuthSession{}, &Error{Err: fmt.Errorf("login response is missing access token")}
	}

	return domain.AuthSession{
		Token:     payload.AccessToken,
		TokenType: payload.TokenType,
		Role:      payload.Role,
	}, nil
}

// decodeDetail extracts the backend's human-readable detail message from a
// non-success response, falling back to the generic status text.
func decodeDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return http.StatusText(resp.StatusCode)
}
