package store

import (
	"context"
	"encoding/json"

	"github.com/epochclub/club-api/internal/models"
)

const galleryColumns = `id, event_name, event_date, description, images, created_at, updated_at`

func scanGallery(row interface{ Scan(...any) error }) (*models.Gallery, error) {
	g := &models.Gallery{}
	var images []byte
	err := row.Scan(&g.ID, &g.EventName, &g.EventDate, &g.Description, &images,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(images, &g.Images); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateGallery persists a photo collection. Images are stored as a JSONB
// document to keep their order and captions together.
func (p *PostgresStore) CreateGallery(ctx context.Context, g *models.Gallery) error {
	images, err := json.Marshal(g.Images)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO galleries(id, event_name, event_date, description, images)
		VALUES ($1,$2,$3,$4,$5)
	`, g.ID, g.EventName, g.EventDate, g.Description, images)
	return err
}

// GalleryByID fetches one collection.
func (p *PostgresStore) GalleryByID(ctx context.Context, id string) (*models.Gallery, error) {
	return scanGallery(p.pool.QueryRow(ctx,
		`SELECT `+galleryColumns+` FROM galleries WHERE id = $1`, id))
}

// ListGalleries returns all collections, most recent event first.
func (p *PostgresStore) ListGalleries(ctx context.Context) ([]*models.Gallery, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+galleryColumns+` FROM galleries ORDER BY event_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var galleries []*models.Gallery
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		galleries = append(galleries, g)
	}
	return galleries, rows.Err()
}

// UpdateGallery rewrites a collection's editable fields.
func (p *PostgresStore) UpdateGallery(ctx context.Context, g *models.Gallery) (*models.Gallery, error) {
	images, err := json.Marshal(g.Images)
	if err != nil {
		return nil, err
	}
	tag, err := p.pool.Exec(ctx, `
		UPDATE galleries SET
			event_name = $2, event_date = $3, description = $4, images = $5, updated_at = now()
		WHERE id = $1
	`, g.ID, g.EventName, g.EventDate, g.Description, images)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.GalleryByID(ctx, g.ID)
}

// DeleteGallery removes a collection.
func (p *PostgresStore) DeleteGallery(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM galleries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
