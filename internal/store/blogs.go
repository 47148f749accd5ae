package store

import (
	"context"
	"errors"

	"github.com/epochclub/club-api/internal/models"
)

// ErrSlugExists is returned when inserting a blog whose slug is taken.
var ErrSlugExists = errors.New("slug already in use")

const blogColumns = `b.id, b.title, b.slug, b.content, b.excerpt, b.featured_image,
	b.author_id, u.name, b.published, b.tags, b.created_at, b.updated_at`

func scanBlog(row interface{ Scan(...any) error }) (*models.Blog, error) {
	b := &models.Blog{}
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.FeaturedImage,
		&b.AuthorID, &b.AuthorName, &b.Published, &b.Tags, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// CreateBlog persists a post. The unique index on slug is the duplicate
// check; a violation surfaces as ErrSlugExists.
func (p *PostgresStore) CreateBlog(ctx context.Context, b *models.Blog) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO blogs(id, title, slug, content, excerpt, featured_image, author_id, published, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, b.ID, b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage, b.AuthorID, b.Published, b.Tags)
	if isUniqueViolation(err) {
		return ErrSlugExists
	}
	return err
}

// BlogByID fetches one post.
func (p *PostgresStore) BlogByID(ctx context.Context, id string) (*models.Blog, error) {
	return scanBlog(p.pool.QueryRow(ctx, `
		SELECT `+blogColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE b.id = $1`, id))
}

// BlogBySlug fetches one published post by slug.
func (p *PostgresStore) BlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return scanBlog(p.pool.QueryRow(ctx, `
		SELECT `+blogColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id
		WHERE b.slug = $1 AND b.published`, slug))
}

// SlugTaken reports whether a slug is already in use.
func (p *PostgresStore) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var one int
	err := p.pool.QueryRow(ctx,
		`SELECT 1 FROM blogs WHERE slug = $1`, slug).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(notFound(err), ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListBlogs returns one page of posts, newest first. With publishedOnly set,
// drafts are excluded. The returned total counts all matching posts, not
// just the page.
func (p *PostgresStore) ListBlogs(ctx context.Context, publishedOnly bool, offset, limit int) ([]*models.Blog, int64, error) {
	where := ``
	if publishedOnly {
		where = ` WHERE b.published`
	}

	var total int64
	if err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM blogs b`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT `+blogColumns+`
		FROM blogs b JOIN users u ON u.id = b.author_id`+where+`
		ORDER BY b.created_at DESC
		OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []*models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, total, rows.Err()
}

// UpdateBlog rewrites a post's editable fields.
func (p *PostgresStore) UpdateBlog(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE blogs SET
			title = $2, slug = $3, content = $4, excerpt = $5,
			featured_image = $6, published = $7, tags = $8, updated_at = now()
		WHERE id = $1
	`, b.ID, b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage, b.Published, b.Tags)
	if isUniqueViolation(err) {
		return nil, ErrSlugExists
	}
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.BlogByID(ctx, b.ID)
}

// DeleteBlog removes a post.
func (p *PostgresStore) DeleteBlog(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
