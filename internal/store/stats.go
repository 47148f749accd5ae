package store

import (
	"context"
	"time"

	"github.com/epochclub/club-api/internal/models"
)

// SiteStats gathers the admin dashboard counters in one round trip.
func (p *PostgresStore) SiteStats(ctx context.Context, now time.Time) (*models.SiteStats, error) {
	s := &models.SiteStats{}
	err := p.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM blogs),
			(SELECT COUNT(*) FROM blogs WHERE published),
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE date >= $1),
			(SELECT COUNT(*) FROM rsvps),
			(SELECT COUNT(*) FROM galleries),
			(SELECT COUNT(*) FROM podcasts),
			(SELECT COUNT(*) FROM users)
	`, now).Scan(
		&s.Blogs.Total, &s.Blogs.Published,
		&s.Projects.Total,
		&s.Events.Total, &s.Events.Upcoming,
		&s.RSVPs.Total,
		&s.Galleries.Total,
		&s.Podcasts.Total,
		&s.Users.Total,
	)
	if err != nil {
		return nil, err
	}
	s.Blogs.Draft = s.Blogs.Total - s.Blogs.Published
	s.Events.Past = s.Events.Total - s.Events.Upcoming
	return s, nil
}
