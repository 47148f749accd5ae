package store

import (
	"context"
	"errors"
	"time"

	"github.com/epochclub/club-api/internal/models"
)

// ErrEmailExists is returned when inserting a user whose email is already
// registered.
var ErrEmailExists = errors.New("email already registered")

const userColumns = `id, email, name, image, password_hash, role, provider, provider_id, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Image, &u.PasswordHash,
		&u.Role, &u.Provider, &u.ProviderID, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// CreateUser persists a new account. The unique index on email is the
// duplicate check; a violation surfaces as ErrEmailExists.
func (p *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users(id, email, name, image, password_hash, role, provider, provider_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, u.ID, u.Email, u.Name, u.Image, u.PasswordHash, u.Role, u.Provider, u.ProviderID)
	if isUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

// UserByEmail resolves an account by its exact email.
func (p *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// UserByID resolves an account by id.
func (p *PostgresStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// UpdateUserProfile renames the account identified by email.
func (p *PostgresStore) UpdateUserProfile(ctx context.Context, email, name string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, updated_at = now()
		WHERE email = $1
		RETURNING `+userColumns, email, name))
}

// RefreshUserOnLogin updates display fields from the identity provider and
// stamps last_login. Empty name/image leave the stored values untouched.
func (p *PostgresStore) RefreshUserOnLogin(ctx context.Context, email, name, image string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `
		UPDATE users SET
			name = CASE WHEN $2 <> '' THEN $2 ELSE name END,
			image = CASE WHEN $3 <> '' THEN $3 ELSE image END,
			last_login = now(),
			updated_at = now()
		WHERE email = $1
		RETURNING `+userColumns, email, name, image))
}

// TouchLastLogin stamps last_login for the account.
func (p *PostgresStore) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

// ListUsers returns all accounts, newest first.
func (p *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserRole changes an account's role.
func (p *PostgresStore) UpdateUserRole(ctx context.Context, id, role string) (*models.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, role))
}
