package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/epochclub/club-api/internal/models"
)

// ErrCapacityFull is returned by CreateRSVP when the event has reached its
// attendee limit.
var ErrCapacityFull = errors.New("event capacity reached")

// CreateRSVP inserts a ledger entry, enforcing capacity inside a single
// transaction. The event row is locked first so concurrent submissions for
// the same event serialize; the count-then-insert is therefore race-free.
//
// Returns created=false when an entry for (event, user) already existed —
// either seen by the pre-insert conflict (DO NOTHING) or because a
// concurrent writer won. The caller must then fetch the existing entry; a
// duplicate is idempotent success, never an error.
func (p *PostgresStore) CreateRSVP(ctx context.Context, r *models.RSVP, capacity *int) (bool, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	// Lock the event row. Submissions for different events don't contend.
	var locked string
	if err := tx.QueryRow(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, r.EventID).Scan(&locked); err != nil {
		return false, notFound(err)
	}

	if capacity != nil {
		var count int64
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM rsvps WHERE event_id = $1`, r.EventID).Scan(&count); err != nil {
			return false, err
		}
		if count >= int64(*capacity) {
			// The caller's own entry may already exist; let the insert
			// below answer that before rejecting.
			var one int
			err := tx.QueryRow(ctx,
				`SELECT 1 FROM rsvps WHERE event_id = $1 AND user_id = $2`,
				r.EventID, r.UserID).Scan(&one)
			if err == nil {
				return false, tx.Commit(ctx)
			}
			if errors.Is(err, pgx.ErrNoRows) {
				return false, ErrCapacityFull
			}
			return false, err
		}
	}

	// RETURNING 1 only when inserted; a (event_id, user_id) conflict
	// returns no rows.
	var one int
	err = tx.QueryRow(ctx, `
		INSERT INTO rsvps(id, event_id, user_id, ticket_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING 1
	`, r.ID, r.EventID, r.UserID, r.TicketID).Scan(&one)

	if err == nil {
		return true, tx.Commit(ctx)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, tx.Commit(ctx)
	}
	return false, err
}

// RSVPByEventAndUser fetches the caller's entry for one event, if any.
func (p *PostgresStore) RSVPByEventAndUser(ctx context.Context, eventID, userID string) (*models.RSVP, error) {
	r := &models.RSVP{}
	err := p.pool.QueryRow(ctx, `
		SELECT id, event_id, user_id, ticket_id, created_at
		FROM rsvps WHERE event_id = $1 AND user_id = $2
	`, eventID, userID).Scan(&r.ID, &r.EventID, &r.UserID, &r.TicketID, &r.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// RSVPByID fetches one entry with user details attached. The event join is
// soft: entries outlive deleted events, so Event is nil when the reference
// dangles.
func (p *PostgresStore) RSVPByID(ctx context.Context, id string) (*models.RSVP, error) {
	r := &models.RSVP{}
	u := &models.User{}
	var (
		eventID, eventTitle, eventVenue, eventImage *string
		eventDate                                   *time.Time
	)
	err := p.pool.QueryRow(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.ticket_id, r.created_at,
		       e.id, e.title, e.date, e.venue, e.image,
		       u.name, u.email
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN events e ON e.id = r.event_id
		WHERE r.id = $1
	`, id).Scan(&r.ID, &r.EventID, &r.UserID, &r.TicketID, &r.CreatedAt,
		&eventID, &eventTitle, &eventDate, &eventVenue, &eventImage,
		&u.Name, &u.Email)
	if err != nil {
		return nil, notFound(err)
	}

	u.ID = r.UserID
	r.User = u
	if eventID != nil {
		r.Event = &models.Event{
			ID:    *eventID,
			Title: *eventTitle,
			Date:  *eventDate,
			Venue: *eventVenue,
			Image: *eventImage,
		}
	}
	return r, nil
}

// ListRSVPsForUser returns the caller's entries joined with event display
// fields, newest first. The inner join drops entries whose event has been
// deleted.
func (p *PostgresStore) ListRSVPsForUser(ctx context.Context, userID string) ([]*models.RSVP, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.ticket_id, r.created_at,
		       e.title, e.date, e.venue, e.image
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*models.RSVP
	for rows.Next() {
		r := &models.RSVP{Event: &models.Event{}}
		err := rows.Scan(&r.ID, &r.EventID, &r.UserID, &r.TicketID, &r.CreatedAt,
			&r.Event.Title, &r.Event.Date, &r.Event.Venue, &r.Event.Image)
		if err != nil {
			return nil, err
		}
		r.Event.ID = r.EventID
		rsvps = append(rsvps, r)
	}
	return rsvps, rows.Err()
}

// ListRSVPsForEvent returns every entry for one event with user display
// fields, newest first.
func (p *PostgresStore) ListRSVPsForEvent(ctx context.Context, eventID string) ([]*models.RSVP, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT r.id, r.event_id, r.user_id, r.ticket_id, r.created_at,
		       u.name, u.email, u.image
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*models.RSVP
	for rows.Next() {
		r := &models.RSVP{User: &models.User{}}
		err := rows.Scan(&r.ID, &r.EventID, &r.UserID, &r.TicketID, &r.CreatedAt,
			&r.User.Name, &r.User.Email, &r.User.Image)
		if err != nil {
			return nil, err
		}
		r.User.ID = r.UserID
		rsvps = append(rsvps, r)
	}
	return rsvps, rows.Err()
}

// CountRSVPsForEvent counts ledger entries for one event.
func (p *PostgresStore) CountRSVPsForEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM rsvps WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}
