package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"fleet-inspector/internal/domain"
	"fleet-inspector/internal/inspection"
)

// ErrNotAuthenticated is returned when submission is attempted without a
// credential. No network I/O happens in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrSessionClosed is returned when the session is no longer in progress.
var ErrSessionClosed = errors.New("inspection session is closed")

// RejectedError is a non-success response from the persistence endpoint,
// carrying the backend's detail message when one was parseable.
type RejectedError struct {
	StatusCode int
	Detail     string
}

// Error returns the backend detail, or the generic status text.
func (e *RejectedError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

// TransportError wraps network faults and malformed responses. It is always
// reported to the caller, never propagated as an unhandled fault.
type TransportError struct {
	Err error
}

// Error formats the transport failure.
func (e *TransportError) Error() string {
	return fmt.Sprintf("submission transport failed: %v", e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Ack is the opaque acknowledgment body of a successful submission.
type Ack struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body,omitempty"`
}

// Coordinator serializes a session into the wire payload, performs the
// submission call, and interprets the result. Concurrent submissions of the
// same session collapse into one request: a double-tapped submit shares the
// in-flight call instead of double-processing the report.
type Coordinator struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// New creates a coordinator for the given server base URL.
func New(baseURL string) *Coordinator {
	return NewWithClient(baseURL, &http.Client{Timeout: 60 * time.Second})
}

// NewWithClient creates a coordinator with an injectable HTTP client.
func NewWithClient(baseURL string, client *http.Client) *Coordinator {
	return &Coordinator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Submit sends the report. An absent credential fails immediately with
// ErrNotAuthenticated before any transport work. On success the session
// transitions to submitted; on any failure it stays in progress and fully
// editable so the user can retry without re-entering data.
func (c *Coordinator) Submit(ctx context.Context, session *inspection.Session, auth domain.AuthSession) (Ack, error) {
	if !auth.Authenticated() {
		return Ack{}, ErrNotAuthenticated
	}
	if session.State() != domain.ReportStateInProgress {
		return Ack{}, ErrSessionClosed
	}

	result, err, _ := c.group.Do(session.ID(), func() (interface{}, error) {
		return c.send(ctx, session, auth)
	})
	if err != nil {
		return Ack{}, err
	}
	return result.(Ack), nil
}

// send performs the single POST and interprets the response.
func (c *Coordinator) send(ctx context.Context, session *inspection.Session, auth domain.AuthSession) (Ack, error) {
	body, err := json.Marshal(buildPayload(session))
	if err != nil {
		return Ack{}, &TransportError{Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/vehicle-inspection-reports/", bytes.NewReader(body))
	if err != nil {
		return Ack{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth.AuthorizationValue())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Ack{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Ack{}, &RejectedError{
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(resp.Body),
		}
	}

	ackBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Ack{}, &TransportError{Err: fmt.Errorf("read acknowledgment: %w", err)}
	}

	if err := session.MarkSubmitted(); err != nil {
		return Ack{}, err
	}

	return Ack{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(ackBody),
	}, nil
}

// decodeDetail extracts the backend's detail message from a failure body.
// Unparsable bodies yield empty, letting RejectedError fall back to the
// status text.
func decodeDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
