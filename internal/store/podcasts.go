package store

import (
	"context"

	"github.com/epochclub/club-api/internal/models"
)

const podcastColumns = `p.id, p.title, p.description, p.youtube_url, p.youtube_id,
	p.thumbnail, p.duration, p.published_at, p.created_by, u.name, p.created_at, p.updated_at`

func scanPodcast(row interface{ Scan(...any) error }) (*models.Podcast, error) {
	pc := &models.Podcast{}
	err := row.Scan(&pc.ID, &pc.Title, &pc.Description, &pc.YouTubeURL, &pc.YouTubeID,
		&pc.Thumbnail, &pc.Duration, &pc.PublishedAt, &pc.CreatedBy, &pc.CreatorName,
		&pc.CreatedAt, &pc.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return pc, nil
}

// CreatePodcast persists an episode.
func (p *PostgresStore) CreatePodcast(ctx context.Context, pc *models.Podcast) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO podcasts(id, title, description, youtube_url, youtube_id, thumbnail, duration, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, pc.ID, pc.Title, pc.Description, pc.YouTubeURL, pc.YouTubeID, pc.Thumbnail, pc.Duration, pc.CreatedBy)
	return err
}

// PodcastByID fetches one episode.
func (p *PostgresStore) PodcastByID(ctx context.Context, id string) (*models.Podcast, error) {
	return scanPodcast(p.pool.QueryRow(ctx, `
		SELECT `+podcastColumns+`
		FROM podcasts p JOIN users u ON u.id = p.created_by
		WHERE p.id = $1`, id))
}

// ListPodcasts returns all episodes, most recently published first.
func (p *PostgresStore) ListPodcasts(ctx context.Context) ([]*models.Podcast, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+podcastColumns+`
		FROM podcasts p JOIN users u ON u.id = p.created_by
		ORDER BY p.published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var podcasts []*models.Podcast
	for rows.Next() {
		pc, err := scanPodcast(rows)
		if err != nil {
			return nil, err
		}
		podcasts = append(podcasts, pc)
	}
	return podcasts, rows.Err()
}

// UpdatePodcast rewrites an episode's editable fields.
func (p *PostgresStore) UpdatePodcast(ctx context.Context, pc *models.Podcast) (*models.Podcast, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE podcasts SET
			title = $2, description = $3, youtube_url = $4, youtube_id = $5,
			thumbnail = $6, duration = $7, updated_at = now()
		WHERE id = $1
	`, pc.ID, pc.Title, pc.Description, pc.YouTubeURL, pc.YouTubeID, pc.Thumbnail, pc.Duration)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.PodcastByID(ctx, pc.ID)
}

// DeletePodcast removes an episode.
func (p *PostgresStore) DeletePodcast(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM podcasts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
