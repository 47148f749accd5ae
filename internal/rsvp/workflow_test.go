package rsvp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// fakeStore is an in-memory Store. Entry keys are "eventID|userID".
type fakeStore struct {
	users   map[string]*models.User
	events  map[string]*models.Event
	entries map[string]*models.RSVP

	// rival, when set, is inserted for the submitted pair inside
	// CreateRSVP, before the uniqueness check. It simulates a concurrent
	// writer winning the race after the workflow's existence check.
	rival *models.RSVP
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]*models.User{},
		events:  map[string]*models.Event{},
		entries: map[string]*models.RSVP{},
	}
}

func key(eventID, userID string) string { return eventID + "|" + userID }

func (f *fakeStore) addUser(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{ID: "user-" + email, Email: email, Name: strings.Split(email, "@")[0]}
	f.users[email] = u
	return u
}

func (f *fakeStore) addEvent(t *testing.T, id string, capacity *int, deadline *time.Time) *models.Event {
	t.Helper()
	e := &models.Event{
		ID:           id,
		Title:        "Event " + id,
		Date:         time.Now().Add(24 * time.Hour),
		Venue:        "Club HQ",
		MaxAttendees: capacity,
		RSVPDeadline: deadline,
	}
	f.events[id] = e
	return e
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) EventByID(_ context.Context, id string) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateRSVP(_ context.Context, r *models.RSVP, capacity *int) (bool, error) {
	if _, ok := f.events[r.EventID]; !ok {
		return false, store.ErrNotFound
	}
	if f.rival != nil {
		f.entries[key(f.rival.EventID, f.rival.UserID)] = f.rival
		f.rival = nil
	}
	if _, ok := f.entries[key(r.EventID, r.UserID)]; ok {
		return false, nil
	}
	if capacity != nil {
		count := 0
		for _, e := range f.entries {
			if e.EventID == r.EventID {
				count++
			}
		}
		if count >= *capacity {
			return false, store.ErrCapacityFull
		}
	}
	stored := *r
	stored.CreatedAt = time.Now()
	f.entries[key(r.EventID, r.UserID)] = &stored
	return true, nil
}

func (f *fakeStore) RSVPByEventAndUser(_ context.Context, eventID, userID string) (*models.RSVP, error) {
	if r, ok := f.entries[key(eventID, userID)]; ok {
		return r, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) RSVPByID(_ context.Context, id string) (*models.RSVP, error) {
	for _, r := range f.entries {
		if r.ID == id {
			out := *r
			for _, u := range f.users {
				if u.ID == r.UserID {
					out.User = u
				}
			}
			if e, ok := f.events[r.EventID]; ok {
				out.Event = e
			}
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListRSVPsForUser(_ context.Context, userID string) ([]*models.RSVP, error) {
	var out []*models.RSVP
	for _, r := range f.entries {
		if r.UserID != userID {
			continue
		}
		// Inner join with events: dangling entries are dropped.
		e, ok := f.events[r.EventID]
		if !ok {
			continue
		}
		c := *r
		c.Event = e
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeStore) ListRSVPsForEvent(_ context.Context, eventID string) ([]*models.RSVP, error) {
	var out []*models.RSVP
	for _, r := range f.entries {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestWorkflow(fs *fakeStore) *Workflow {
	w := New(fs)
	w.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return w
}

func TestSubmitIsIdempotent(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "alice@example.com")
	fs.addEvent(t, "ev1", nil, nil)
	w := newTestWorkflow(fs)

	first, created, err := w.Submit(context.Background(), "alice@example.com", "ev1")
	if err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if !created {
		t.Fatal("first Submit() created = false, want true")
	}
	if first.TicketID == "" {
		t.Fatal("first Submit() minted no ticket id")
	}

	second, created, err := w.Submit(context.Background(), "alice@example.com", "ev1")
	if err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if created {
		t.Fatal("second Submit() created = true, want false")
	}
	if second.ID != first.ID || second.TicketID != first.TicketID {
		t.Fatalf("second Submit() returned a different entry: got (%s, %s), want (%s, %s)",
			second.ID, second.TicketID, first.ID, first.TicketID)
	}
	if len(fs.entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(fs.entries))
	}
}

func TestSubmitUnknownCaller(t *testing.T) {
	fs := newFakeStore()
	fs.addEvent(t, "ev1", nil, nil)
	w := newTestWorkflow(fs)

	_, _, err := w.Submit(context.Background(), "ghost@example.com", "ev1")
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("Submit() error = %v, want ErrAuthRequired", err)
	}
}

func TestSubmitMissingEvent(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "alice@example.com")
	w := newTestWorkflow(fs)

	_, _, err := w.Submit(context.Background(), "alice@example.com", "nope")
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Submit() error = %v, want ErrEventNotFound", err)
	}
	if len(fs.entries) != 0 {
		t.Fatal("failed Submit() created a ledger entry")
	}
}

func TestSubmitAfterDeadline(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "alice@example.com")
	yesterday := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	fs.addEvent(t, "old-talk", nil, &yesterday)
	w := newTestWorkflow(fs)

	_, _, err := w.Submit(context.Background(), "alice@example.com", "old-talk")
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("Submit() error = %v, want ErrDeadlinePassed", err)
	}
	if len(fs.entries) != 0 {
		t.Fatal("failed Submit() created a ledger entry")
	}
}

// Capacity 1, no deadline: A gets in, A retries and gets the same ticket,
// B is turned away.
func TestSubmitCapacity(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "a@example.com")
	fs.addUser(t, "b@example.com")
	one := 1
	fs.addEvent(t, "hack-night", &one, nil)
	w := newTestWorkflow(fs)

	first, created, err := w.Submit(context.Background(), "a@example.com", "hack-night")
	if err != nil || !created {
		t.Fatalf("Submit(A) = (created=%v, err=%v), want created", created, err)
	}

	again, created, err := w.Submit(context.Background(), "a@example.com", "hack-night")
	if err != nil || created {
		t.Fatalf("Submit(A) retry = (created=%v, err=%v), want idempotent return", created, err)
	}
	if again.TicketID != first.TicketID {
		t.Fatalf("retry ticket = %s, want %s", again.TicketID, first.TicketID)
	}

	_, _, err = w.Submit(context.Background(), "b@example.com", "hack-night")
	if !errors.Is(err, ErrEventFull) {
		t.Fatalf("Submit(B) error = %v, want ErrEventFull", err)
	}
	if len(fs.entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(fs.entries))
	}
}

// A concurrent writer wins the race between the workflow's existence check
// and its insert. The duplicate must resolve to the existing entry, not an
// error.
func TestSubmitLostRaceReturnsExistingEntry(t *testing.T) {
	fs := newFakeStore()
	alice := fs.addUser(t, "alice@example.com")
	fs.addEvent(t, "ev1", nil, nil)
	fs.rival = &models.RSVP{
		ID:       "rival-entry",
		EventID:  "ev1",
		UserID:   alice.ID,
		TicketID: "TCK-RIVAL",
	}
	w := newTestWorkflow(fs)

	entry, created, err := w.Submit(context.Background(), "alice@example.com", "ev1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if created {
		t.Fatal("Submit() created = true after lost race, want false")
	}
	if entry.ID != "rival-entry" || entry.TicketID != "TCK-RIVAL" {
		t.Fatalf("Submit() = (%s, %s), want the rival's entry", entry.ID, entry.TicketID)
	}
	if len(fs.entries) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(fs.entries))
	}
}

func TestListForUserFiltersDeletedEvents(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "alice@example.com")
	fs.addEvent(t, "kept", nil, nil)
	fs.addEvent(t, "doomed", nil, nil)
	w := newTestWorkflow(fs)

	if _, _, err := w.Submit(context.Background(), "alice@example.com", "kept"); err != nil {
		t.Fatalf("Submit(kept) error = %v", err)
	}
	if _, _, err := w.Submit(context.Background(), "alice@example.com", "doomed"); err != nil {
		t.Fatalf("Submit(doomed) error = %v", err)
	}

	delete(fs.events, "doomed")

	entries, err := w.ListForUser(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListForUser() returned %d entries, want 1", len(entries))
	}
	if entries[0].EventID != "kept" {
		t.Fatalf("ListForUser() kept entry for %s, want kept", entries[0].EventID)
	}
}

func TestListForEventCounts(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "a@example.com")
	fs.addUser(t, "b@example.com")
	fs.addEvent(t, "ev1", nil, nil)
	w := newTestWorkflow(fs)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, _, err := w.Submit(context.Background(), email, "ev1"); err != nil {
			t.Fatalf("Submit(%s) error = %v", email, err)
		}
	}

	list, err := w.ListForEvent(context.Background(), "ev1")
	if err != nil {
		t.Fatalf("ListForEvent() error = %v", err)
	}
	if list.Stats.Attending != 2 || list.Stats.Total != 2 {
		t.Fatalf("stats = %+v, want attending=2 total=2", list.Stats)
	}

	if _, err := w.ListForEvent(context.Background(), "nope"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("ListForEvent(nope) error = %v, want ErrEventNotFound", err)
	}
}

func TestTicketEntryAccess(t *testing.T) {
	fs := newFakeStore()
	fs.addUser(t, "owner@example.com")
	fs.addUser(t, "other@example.com")
	fs.addEvent(t, "ev1", nil, nil)
	w := newTestWorkflow(fs)

	entry, _, err := w.Submit(context.Background(), "owner@example.com", "ev1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := w.TicketEntry(context.Background(), entry.ID, "owner@example.com", false); err != nil {
		t.Fatalf("owner TicketEntry() error = %v", err)
	}
	if _, err := w.TicketEntry(context.Background(), entry.ID, "other@example.com", false); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("stranger TicketEntry() error = %v, want ErrNotOwner", err)
	}
	if _, err := w.TicketEntry(context.Background(), entry.ID, "other@example.com", true); err != nil {
		t.Fatalf("admin TicketEntry() error = %v", err)
	}
	if _, err := w.TicketEntry(context.Background(), "missing", "owner@example.com", false); !errors.Is(err, ErrRSVPNotFound) {
		t.Fatalf("missing TicketEntry() error = %v, want ErrRSVPNotFound", err)
	}

	// Orphaned entry: event deleted after the RSVP. No ticket to render.
	delete(fs.events, "ev1")
	if _, err := w.TicketEntry(context.Background(), entry.ID, "owner@example.com", false); !errors.Is(err, ErrRSVPNotFound) {
		t.Fatalf("orphaned TicketEntry() error = %v, want ErrRSVPNotFound", err)
	}
}
