package store

import (
	"context"

	"github.com/epochclub/club-api/internal/models"
)

const projectColumns = `id, title, description, tech_stack, github_url, live_url, image, featured, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	pr := &models.Project{}
	err := row.Scan(&pr.ID, &pr.Title, &pr.Description, &pr.TechStack,
		&pr.GithubURL, &pr.LiveURL, &pr.Image, &pr.Featured, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return pr, nil
}

// CreateProject persists a project.
func (p *PostgresStore) CreateProject(ctx context.Context, pr *models.Project) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO projects(id, title, description, tech_stack, github_url, live_url, image, featured)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, pr.ID, pr.Title, pr.Description, pr.TechStack, pr.GithubURL, pr.LiveURL, pr.Image, pr.Featured)
	return err
}

// ProjectByID fetches one project.
func (p *PostgresStore) ProjectByID(ctx context.Context, id string) (*models.Project, error) {
	return scanProject(p.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// ListProjects returns all projects, featured first, then newest first.
func (p *PostgresStore) ListProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY featured DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		pr, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, pr)
	}
	return projects, rows.Err()
}

// UpdateProject rewrites a project's editable fields.
func (p *PostgresStore) UpdateProject(ctx context.Context, pr *models.Project) (*models.Project, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE projects SET
			title = $2, description = $3, tech_stack = $4, github_url = $5,
			live_url = $6, image = $7, featured = $8, updated_at = now()
		WHERE id = $1
	`, pr.ID, pr.Title, pr.Description, pr.TechStack, pr.GithubURL, pr.LiveURL, pr.Image, pr.Featured)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.ProjectByID(ctx, pr.ID)
}

// DeleteProject removes a project.
func (p *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
