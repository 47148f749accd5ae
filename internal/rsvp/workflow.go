// Package rsvp implements ticket issuance: one ledger entry per
// (event, user), minted at most once, with capacity and deadline
// enforcement. The storage-level uniqueness constraint is the safety
// mechanism; every check in here is an early exit, not the guarantee.
package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
	"github.com/epochclub/club-api/internal/ticket"
)

var (
	// ErrAuthRequired means the caller identity resolved to no account.
	ErrAuthRequired = errors.New("authentication required")
	// ErrEventNotFound means the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrDeadlinePassed means the event's RSVP deadline is in the past.
	ErrDeadlinePassed = errors.New("rsvp deadline has passed")
	// ErrEventFull means the event has reached its attendee limit.
	ErrEventFull = errors.New("event is full")
	// ErrRSVPNotFound means the requested ledger entry does not exist.
	ErrRSVPNotFound = errors.New("rsvp not found")
	// ErrNotOwner means the caller is neither the entry's owner nor an admin.
	ErrNotOwner = errors.New("not your rsvp")
)

// Store is the slice of persistence the workflow needs.
type Store interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	EventByID(ctx context.Context, id string) (*models.Event, error)
	CreateRSVP(ctx context.Context, r *models.RSVP, capacity *int) (bool, error)
	RSVPByEventAndUser(ctx context.Context, eventID, userID string) (*models.RSVP, error)
	RSVPByID(ctx context.Context, id string) (*models.RSVP, error)
	ListRSVPsForUser(ctx context.Context, userID string) ([]*models.RSVP, error)
	ListRSVPsForEvent(ctx context.Context, eventID string) ([]*models.RSVP, error)
}

// Workflow enforces attendance eligibility and uniqueness.
type Workflow struct {
	store Store
	now   func() time.Time
}

// New builds a workflow over the given store.
func New(st Store) *Workflow {
	return &Workflow{store: st, now: time.Now}
}

// Submit creates the caller's ledger entry for an event, or returns the
// existing one. The boolean reports whether a new entry was created.
//
// Safe to retry: a duplicate submission, sequential or concurrent, always
// resolves to the single existing entry. Capacity is enforced only on the
// creation path, inside the store's transaction.
func (w *Workflow) Submit(ctx context.Context, callerEmail, eventID string) (*models.RSVP, bool, error) {
	user, err := w.store.UserByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, ErrAuthRequired
		}
		return nil, false, err
	}

	event, err := w.store.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, ErrEventNotFound
		}
		return nil, false, err
	}

	if event.RSVPDeadline != nil && w.now().After(*event.RSVPDeadline) {
		return nil, false, ErrDeadlinePassed
	}

	// Fast path: already attending. No capacity check here.
	existing, err := w.store.RSVPByEventAndUser(ctx, event.ID, user.ID)
	if err == nil {
		return w.attach(existing, event, user), false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	entry := &models.RSVP{
		ID:       uuid.NewString(),
		EventID:  event.ID,
		UserID:   user.ID,
		TicketID: ticket.NewTicketID(),
	}
	created, err := w.store.CreateRSVP(ctx, entry, event.MaxAttendees)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCapacityFull):
			return nil, false, ErrEventFull
		case errors.Is(err, store.ErrNotFound):
			// Event deleted between lookup and insert.
			return nil, false, ErrEventNotFound
		}
		return nil, false, err
	}
	if !created {
		// Lost a race with a concurrent submission for the same pair.
		// The constraint kept the ledger single-entry; report success.
		entry, err = w.store.RSVPByEventAndUser(ctx, event.ID, user.ID)
		if err != nil {
			return nil, false, fmt.Errorf("fetch entry after conflict: %w", err)
		}
		return w.attach(entry, event, user), false, nil
	}

	entry.CreatedAt = w.now()
	return w.attach(entry, event, user), true, nil
}

// attach fills the display joins on an entry from already-loaded records.
func (w *Workflow) attach(r *models.RSVP, event *models.Event, user *models.User) *models.RSVP {
	r.Event = event
	r.User = user
	return r
}

// ListForUser returns the caller's entries with event display fields,
// newest first. Entries whose event has been deleted are excluded.
func (w *Workflow) ListForUser(ctx context.Context, callerEmail string) ([]*models.RSVP, error) {
	user, err := w.store.UserByEmail(ctx, callerEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}
	return w.store.ListRSVPsForUser(ctx, user.ID)
}

// ListForEvent returns every entry for an event with user display fields
// and the attending total. Admin-only; access control is the caller's job.
func (w *Workflow) ListForEvent(ctx context.Context, eventID string) (*models.EventRSVPList, error) {
	if _, err := w.store.EventByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	rsvps, err := w.store.ListRSVPsForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	list := &models.EventRSVPList{RSVPs: rsvps}
	list.Stats.Attending = len(rsvps)
	list.Stats.Total = len(rsvps)
	return list, nil
}

// TicketEntry fetches an entry for ticket rendering, enforcing that the
// caller owns it or is an admin. Entries whose event has been deleted
// cannot be rendered and report ErrRSVPNotFound.
func (w *Workflow) TicketEntry(ctx context.Context, rsvpID, callerEmail string, callerIsAdmin bool) (*models.RSVP, error) {
	entry, err := w.store.RSVPByID(ctx, rsvpID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	if entry.User.Email != callerEmail && !callerIsAdmin {
		return nil, ErrNotOwner
	}
	if entry.Event == nil {
		return nil, ErrRSVPNotFound
	}
	return entry, nil
}
