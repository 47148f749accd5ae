package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// INTEGRATION TEST SUITE
//
// These tests validate the service end-to-end:
//
//   Client → HTTP API → Auth → Postgres → Response
//
// The service must already be running (for example via docker compose).
//
// Optional environment overrides:
//
//   BASE_URL     default http://localhost:8080
//   ADMIN_EMAIL  an email present in the service's ADMIN_EMAILS list;
//                admin-only tests are skipped when unset
//
////////////////////////////////////////////////////////////////////////////////

func baseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// unique generates a unique string so tests never collide with previous runs.
func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

////////////////////////////////////////////////////////////////////////////////
// SERVICE READINESS HELPER
//
// waitReady polls /ready until DB + server are ready.
// Prevents flaky failures when containers are still booting.
////////////////////////////////////////////////////////////////////////////////

func waitReady(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(30 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL() + "/ready")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(300 * time.Millisecond)
	}

	t.Fatalf("service not ready after 30s")
}

////////////////////////////////////////////////////////////////////////////////
// GENERIC HTTP HELPERS
////////////////////////////////////////////////////////////////////////////////

// httpGet performs a GET request with an optional bearer token.
func httpGet(t *testing.T, token, path string) (int, []byte) {
	t.Helper()

	req, _ := http.NewRequest("GET", baseURL()+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

// doJSON performs a request with a JSON body and optional bearer token.
func doJSON(t *testing.T, method, token, path string, payload any) (int, []byte) {
	t.Helper()

	b, _ := json.Marshal(payload)

	req, _ := http.NewRequest(method, baseURL()+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func postJSON(t *testing.T, token, path string, payload any) (int, []byte) {
	t.Helper()
	return doJSON(t, "POST", token, path, payload)
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// signup registers a fresh account and returns the session token and role.
func signup(t *testing.T, email, password string) authResponse {
	t.Helper()

	s, b := postJSON(t, "", "/api/auth/signup", map[string]any{
		"email":    email,
		"password": password,
	})
	if s != http.StatusCreated {
		t.Fatalf("signup expected 201 got %d: %s", s, b)
	}

	var out authResponse
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("invalid signup JSON: %v", err)
	}
	if out.Token == "" {
		t.Fatal("signup returned empty token")
	}
	return out
}

// adminToken signs in (or up) as the configured admin email.
// Skips the calling test when ADMIN_EMAIL is not set or the account does
// not come back with the admin role.
func adminToken(t *testing.T) string {
	t.Helper()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		t.Skip("ADMIN_EMAIL not set")
	}

	const password = "integration-admin-pass"

	s, b := postJSON(t, "", "/api/auth/signin", map[string]any{
		"email":    email,
		"password": password,
	})
	if s != http.StatusOK {
		s, b = postJSON(t, "", "/api/auth/signup", map[string]any{
			"email":    email,
			"password": password,
		})
		if s != http.StatusCreated {
			t.Fatalf("admin signup expected 201 got %d: %s", s, b)
		}
	}

	var out authResponse
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("invalid auth JSON: %v", err)
	}
	if out.User.Role != "admin" {
		t.Skipf("account %s has role %q, not admin", email, out.User.Role)
	}
	return out.Token
}

// createEvent creates an event through the admin API and returns its id.
func createEvent(t *testing.T, token, title string, maxAttendees int) string {
	t.Helper()

	payload := map[string]any{
		"title":       title,
		"description": "integration test event",
		"date":        time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"venue":       "Test Hall",
	}
	if maxAttendees > 0 {
		payload["max_attendees"] = maxAttendees
	}

	s, b := postJSON(t, token, "/api/events", payload)
	if s != http.StatusCreated {
		t.Fatalf("create event expected 201 got %d: %s", s, b)
	}

	var ev struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &ev); err != nil {
		t.Fatalf("invalid event JSON: %v", err)
	}
	return ev.ID
}

////////////////////////////////////////////////////////////////////////////////
// HEALTH & READINESS TESTS
////////////////////////////////////////////////////////////////////////////////

// Health endpoint = liveness check (server process running).
func TestHealth_ReturnsOK(t *testing.T) {
	s, _ := httpGet(t, "", "/health")
	if s != http.StatusOK {
		t.Fatalf("health expected 200 got %d", s)
	}
}

// Ready endpoint = dependency readiness (DB reachable).
func TestReady_ReturnsOK(t *testing.T) {
	waitReady(t)
	s, _ := httpGet(t, "", "/ready")
	if s != http.StatusOK {
		t.Fatalf("ready expected 200 got %d", s)
	}
}

////////////////////////////////////////////////////////////////////////////////
// AUTH CONTRACT TESTS
////////////////////////////////////////////////////////////////////////////////

func TestAuth_SignupThenSignin(t *testing.T) {
	waitReady(t)

	email := unique("member") + "@example.com"
	signup(t, email, "hunter2hunter2")

	s, b := postJSON(t, "", "/api/auth/signin", map[string]any{
		"email":    email,
		"password": "hunter2hunter2",
	})
	if s != http.StatusOK {
		t.Fatalf("signin expected 200 got %d: %s", s, b)
	}
}

func TestAuth_SigninWrongPasswordRejected(t *testing.T) {
	waitReady(t)

	email := unique("member") + "@example.com"
	signup(t, email, "hunter2hunter2")

	s, _ := postJSON(t, "", "/api/auth/signin", map[string]any{
		"email":    email,
		"password": "wrong-password",
	})
	if s != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", s)
	}
}

// Request without a token must be rejected.
func TestRSVP_UnauthorizedWithoutToken(t *testing.T) {
	waitReady(t)

	s, _ := postJSON(t, "", "/api/rsvps", map[string]any{"event_id": "whatever"})
	if s != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", s)
	}
}

////////////////////////////////////////////////////////////////////////////////
// CORE SYSTEM BEHAVIOR TESTS
////////////////////////////////////////////////////////////////////////////////

// Submitting the same RSVP twice must return the same ticket, not a second one.
func TestRSVP_IdempotentResubmit(t *testing.T) {
	waitReady(t)

	admin := adminToken(t)
	eventID := createEvent(t, admin, unique("idem-event"), 0)

	member := signup(t, unique("member")+"@example.com", "hunter2hunter2")

	s1, b1 := postJSON(t, member.Token, "/api/rsvps", map[string]any{"event_id": eventID})
	if s1 != http.StatusCreated {
		t.Fatalf("first RSVP expected 201 got %d: %s", s1, b1)
	}
	s2, b2 := postJSON(t, member.Token, "/api/rsvps", map[string]any{"event_id": eventID})
	if s2 != http.StatusOK {
		t.Fatalf("second RSVP expected 200 got %d: %s", s2, b2)
	}

	var r1, r2 struct {
		TicketID string `json:"ticket_id"`
	}
	if err := json.Unmarshal(b1, &r1); err != nil {
		t.Fatalf("invalid RSVP JSON: %v", err)
	}
	if err := json.Unmarshal(b2, &r2); err != nil {
		t.Fatalf("invalid RSVP JSON: %v", err)
	}
	if r1.TicketID == "" || r1.TicketID != r2.TicketID {
		t.Fatalf("resubmit minted a new ticket: %q vs %q", r1.TicketID, r2.TicketID)
	}
}

// A full event must reject new attendees but still accept resubmits.
func TestRSVP_CapacityEnforced(t *testing.T) {
	waitReady(t)

	admin := adminToken(t)
	eventID := createEvent(t, admin, unique("full-event"), 1)

	first := signup(t, unique("first")+"@example.com", "hunter2hunter2")
	second := signup(t, unique("second")+"@example.com", "hunter2hunter2")

	if s, b := postJSON(t, first.Token, "/api/rsvps", map[string]any{"event_id": eventID}); s != http.StatusCreated {
		t.Fatalf("first RSVP expected 201 got %d: %s", s, b)
	}
	if s, _ := postJSON(t, second.Token, "/api/rsvps", map[string]any{"event_id": eventID}); s != http.StatusBadRequest {
		t.Fatalf("over-capacity RSVP expected 400 got %d", s)
	}
	if s, _ := postJSON(t, first.Token, "/api/rsvps", map[string]any{"event_id": eventID}); s != http.StatusOK {
		t.Fatalf("resubmit at capacity expected 200 got %d", s)
	}
}

// The ticket endpoint must return a PDF to the owner and hide it from others.
func TestTicket_DownloadAndOwnership(t *testing.T) {
	waitReady(t)

	admin := adminToken(t)
	eventID := createEvent(t, admin, unique("ticket-event"), 0)

	owner := signup(t, unique("owner")+"@example.com", "hunter2hunter2")
	other := signup(t, unique("other")+"@example.com", "hunter2hunter2")

	s, b := postJSON(t, owner.Token, "/api/rsvps", map[string]any{"event_id": eventID})
	if s != http.StatusCreated {
		t.Fatalf("RSVP expected 201 got %d: %s", s, b)
	}
	var r struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("invalid RSVP JSON: %v", err)
	}

	s, pdf := httpGet(t, owner.Token, "/api/rsvps/"+r.ID+"/ticket")
	if s != http.StatusOK {
		t.Fatalf("ticket download expected 200 got %d", s)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("ticket response is not a PDF")
	}

	if s, _ := httpGet(t, other.Token, "/api/rsvps/"+r.ID+"/ticket"); s != http.StatusForbidden {
		t.Fatalf("foreign ticket download expected 403 got %d", s)
	}
}
