package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestLoginParsesSession verifies the happy path and the request shape.
func TestLoginParsesSession(t *testing.T) {
	var gotBody loginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-123",
			"token_type":   "bearer",
			"role":         "inspector",
		})
	}))
	defer server.Close()

	session, err := New(server.URL).Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotBody.Username != "alice" || gotBody.Password != "secret" {
		t.Fatalf("request body = %+v", gotBody)
	}
	if session.Token != "tok-123" || session.TokenType != "bearer" || session.Role != "inspector" {
		t.Fatalf("session = %+v", session)
	}
	if !session.Authenticated() {
		t.Fatal("session with a token must report authenticated")
	}
}

// TestLoginSurfacesBackendDetail verifies the detail message from a rejected
// login reaches the caller verbatim.
func TestLoginSurfacesBackendDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))
	defer server.Close()

	_, err := New(server.URL).Login(context.Background(), "alice", "wrong")
	var loginErr *Error
	if !errors.As(err, &loginErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if loginErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", loginErr.StatusCode)
	}
	if loginErr.Error() != "Incorrect username or password" {
		t.Fatalf("message = %q, want the backend detail", loginErr.Error())
	}
}

// TestLoginFallsBackToStatusText covers non-success responses with no
// parseable detail body.
func TestLoginFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Login(context.Background(), "alice", "secret")
	var loginErr *Error
	if !errors.As(err, &loginErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if loginErr.Error() != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("message = %q, want status text fallback", loginErr.Error())
	}
}

// TestLoginReportsTransportFailure verifies an unreachable server yields a
// wrapped error, not a panic.
func TestLoginReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := New(server.URL).Login(context.Background(), "alice", "secret")
	var loginErr *Error
	if !errors.As(err, &loginErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if loginErr.Unwrap() == nil {
		t.Fatal("transport failure must carry the underlying error")
	}
}

// TestLoginRejectsMissingToken verifies a 200 without a token is a failure.
func TestLoginRejectsMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer server.Close()

	if _, err := New(server.URL).Login(context.Background(), "alice", "secret"); err == nil {
		t.Fatal("expected error for a response without an access token")
	}
}
