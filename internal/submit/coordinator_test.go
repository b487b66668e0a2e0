package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fleet-inspector/internal/domain"
	"fleet-inspector/internal/inspection"
)

// testAuth is a valid credential for submission tests.
var testAuth = domain.AuthSession{Token: "tok-123", TokenType: "Bearer", Role: "inspector"}

// TestSubmitRequiresCredential verifies the pre-transport auth gate: no
// request leaves the client without a token.
func TestSubmitRequiresCredential(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	session := startedSession(t)
	_, err := New(server.URL).Submit(context.Background(), session, domain.AuthSession{})
	if err != ErrNotAuthenticated {
		t.Fatalf("error = %v, want %v", err, ErrNotAuthenticated)
	}
	if atomic.LoadInt32(&requests) != 0 {
		t.Fatal("unauthenticated submit must not reach the network")
	}
	if session.State() != domain.ReportStateInProgress {
		t.Fatalf("state = %s, want in_progress after refused submit", session.State())
	}
}

// TestSubmitRejectsClosedSession verifies terminal sessions cannot be sent.
func TestSubmitRejectsClosedSession(t *testing.T) {
	session := startedSession(t)
	if err := session.Abandon(); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	if _, err := New("http://localhost:1").Submit(context.Background(), session, testAuth); err != ErrSessionClosed {
		t.Fatalf("error = %v, want %v", err, ErrSessionClosed)
	}
}

// TestSubmitSendsAssembledPayload drives a populated session end to end and
// asserts the exact wire body the server receives.
func TestSubmitSendsAssembledPayload(t *testing.T) {
	var (
		gotAuth string
		gotBody reportPayload
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/vehicle-inspection-reports/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int{"id": 77})
	}))
	defer server.Close()

	session := startedSession(t)
	if err := session.SetCarrier("ACME Freight"); err != nil {
		t.Fatalf("SetCarrier: %v", err)
	}
	if err := session.SetAddress("Lat: 19.4, Lng: -99.1"); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if _, err := session.SetOdometer(120500); err != nil {
		t.Fatalf("SetOdometer: %v", err)
	}
	for _, kv := range []struct {
		key   domain.ItemKey
		value domain.Verdict
	}{
		{"brake_service", domain.VerdictPass},
		{"tires", domain.VerdictFail},
		{"horn", domain.VerdictNotApplicable},
	} {
		if err := session.Truck().SetValue(kv.key, kv.value); err != nil {
			t.Fatalf("SetValue(%s): %v", kv.key, err)
		}
	}
	for _, id := range []string{"TR-1", "TR-2"} {
		if _, err := session.AddTrailer(id); err != nil {
			t.Fatalf("AddTrailer(%s): %v", id, err)
		}
	}
	first, err := session.Trailer(0)
	if err != nil {
		t.Fatalf("Trailer(0): %v", err)
	}
	if err := first.SetValue("brakes", domain.VerdictFail); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	ack, err := New(server.URL).Submit(context.Background(), session, testAuth)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotBody.Carrier != "ACME Freight" || gotBody.TruckNumber != "TK-1" || gotBody.OdometerReading != 120500 {
		t.Fatalf("header fields = %+v", gotBody)
	}
	if gotBody.InspectionDate != session.InspectedAt() {
		t.Fatalf("inspection_date = %q, want %q", gotBody.InspectionDate, session.InspectedAt())
	}
	if v := gotBody.TruckInspectionItems["brake_service"]; v == nil || *v != domain.VerdictPass {
		t.Fatalf("brake_service = %v, want pass", v)
	}
	if v := gotBody.TruckInspectionItems["engine"]; v != nil {
		t.Fatalf("engine = %v, want null for unset", *v)
	}
	if len(gotBody.Trailers) != 2 {
		t.Fatalf("trailer count = %d, want 2", len(gotBody.Trailers))
	}
	if gotBody.Trailers[0].ReportID != 0 || gotBody.Trailers[0].TrailerNumber != "TR-1" {
		t.Fatalf("first trailer = %+v", gotBody.Trailers[0])
	}
	if v := gotBody.Trailers[0].InspectionItems["brakes"]; v == nil || *v != domain.VerdictFail {
		t.Fatalf("trailer brakes = %v, want fail", v)
	}
	if v := gotBody.Trailers[1].InspectionItems["brakes"]; v != nil {
		t.Fatalf("second trailer brakes = %v, want null", *v)
	}

	if ack.StatusCode != http.StatusCreated {
		t.Fatalf("ack status = %d, want 201", ack.StatusCode)
	}
	if session.State() != domain.ReportStateSubmitted {
		t.Fatalf("state = %s, want submitted", session.State())
	}
}

// TestSubmitSurfacesBackendDetail verifies a rejection keeps the session
// editable and carries the server's message verbatim.
func TestSubmitSurfacesBackendDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid carrier"})
	}))
	defer server.Close()

	session := startedSession(t)
	_, err := New(server.URL).Submit(context.Background(), session, testAuth)
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("error = %v, want *RejectedError", err)
	}
	if rejected.Error() != "invalid carrier" {
		t.Fatalf("message = %q, want the backend detail", rejected.Error())
	}
	if session.State() != domain.ReportStateInProgress {
		t.Fatalf("state = %s, want in_progress after rejection", session.State())
	}
}

// TestSubmitReportsTransportFailure verifies network faults come back as
// *TransportError and leave the session editable.
func TestSubmitReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	session := startedSession(t)
	_, err := New(server.URL).Submit(context.Background(), session, testAuth)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if session.State() != domain.ReportStateInProgress {
		t.Fatalf("state = %s, want in_progress after transport failure", session.State())
	}
}

// TestSubmitAllowsEditsWhileInFlight keeps writing truck verdicts for the
// whole duration of a slow submission. The report stays editable while the
// request is outstanding, so serialization and edits must not trample each
// other. Run with the race detector.
func TestSubmitAllowsEditsWhileInFlight(t *testing.T) {
	var requests int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		<-release
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	session := startedSession(t)

	stop := make(chan struct{})
	var editors sync.WaitGroup
	editors.Add(1)
	go func() {
		defer editors.Done()
		for {
			select {
			case <-stop:
				return
			default:
				session.Truck().SetValue("engine", domain.VerdictPass)
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		_, err := New(server.URL).Submit(context.Background(), session, testAuth)
		done <- err
	}()

	for atomic.LoadInt32(&requests) == 0 {
		time.Sleep(time.Millisecond)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}
	close(stop)
	editors.Wait()

	if session.State() != domain.ReportStateSubmitted {
		t.Fatalf("state = %s, want submitted", session.State())
	}
}

// TestConcurrentSubmitsCollapse verifies a double-tapped submit produces one
// server request shared by both callers.
func TestConcurrentSubmitsCollapse(t *testing.T) {
	var requests int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		<-release
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	session := startedSession(t)
	coordinator := New(server.URL)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	submit := func(i int) {
		defer wg.Done()
		_, errs[i] = coordinator.Submit(context.Background(), session, testAuth)
	}

	wg.Add(1)
	go submit(0)

	// Park the first request in the handler, then send the second submit so
	// it joins the in-flight call before the handler is released.
	for atomic.LoadInt32(&requests) == 0 {
		time.Sleep(time.Millisecond)
	}
	wg.Add(1)
	go submit(1)
	time.Sleep(50 * time.Millisecond)

	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("server saw %d requests, want 1", got)
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if session.State() != domain.ReportStateSubmitted {
		t.Fatalf("state = %s, want submitted", session.State())
	}
}

// startedSession builds an in-progress session for submission tests.
func startedSession(t *testing.T) *inspection.Session {
	t.Helper()
	session, err := inspection.New("TK-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := session.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return session
}
