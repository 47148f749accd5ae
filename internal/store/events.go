package store

import (
	"context"
	"time"

	"github.com/epochclub/club-api/internal/models"
)

const eventColumns = `e.id, e.title, e.description, e.date, e.venue, e.image,
	e.max_attendees, e.rsvp_deadline, e.created_by, u.name, e.created_at, e.updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Venue, &e.Image,
		&e.MaxAttendees, &e.RSVPDeadline, &e.CreatedBy, &e.CreatorName,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// CreateEvent persists a new event.
func (p *PostgresStore) CreateEvent(ctx context.Context, e *models.Event) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO events(id, title, description, date, venue, image, max_attendees, rsvp_deadline, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, e.ID, e.Title, e.Description, e.Date, e.Venue, e.Image, e.MaxAttendees, e.RSVPDeadline, e.CreatedBy)
	return err
}

// EventByID fetches one event with its creator's display name.
func (p *PostgresStore) EventByID(ctx context.Context, id string) (*models.Event, error) {
	return scanEvent(p.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e JOIN users u ON u.id = e.created_by
		WHERE e.id = $1`, id))
}

// ListEvents returns events ordered by date ascending. With upcomingOnly
// set, events whose date precedes now are excluded.
func (p *PostgresStore) ListEvents(ctx context.Context, upcomingOnly bool, now time.Time) ([]*models.Event, error) {
	q := `
		SELECT ` + eventColumns + `
		FROM events e JOIN users u ON u.id = e.created_by`
	args := []any{}
	if upcomingOnly {
		q += ` WHERE e.date >= $1`
		args = append(args, now)
	}
	q += ` ORDER BY e.date ASC`

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent rewrites an event's editable fields.
func (p *PostgresStore) UpdateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE events SET
			title = $2, description = $3, date = $4, venue = $5, image = $6,
			max_attendees = $7, rsvp_deadline = $8, updated_at = now()
		WHERE id = $1
	`, e.ID, e.Title, e.Description, e.Date, e.Venue, e.Image, e.MaxAttendees, e.RSVPDeadline)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.EventByID(ctx, e.ID)
}

// DeleteEvent removes an event. RSVP entries referencing it are kept as
// historical attendance facts and filtered out at read time.
func (p *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
