package users

import (
	"context"
	"errors"
	"fmt"

	accounts "main/internal/domain/entity/accounts"
	interfaces "main/internal/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository resolves users from the shared directory database.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Close()
}

// ByUsername resolves the identity token carried on an inbound message.
func (r *Repository) ByUsername(ctx context.Context, username string) (*accounts.User, error) {
	const query = `
		SELECT id, useruuid, username, display_name, office_id
		FROM users
		WHERE username = $1`

	row := r.pool.QueryRow(ctx, query, username)
	user := &accounts.User{}
	if err := scanUserInto(row, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interfaces.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user %s: %w", username, err)
	}
	return user, nil
}

// ByOffice lists every user belonging to the office.
func (r *Repository) ByOffice(ctx context.Context, officeID int64) ([]accounts.User, error) {
	const query = `
		SELECT id, useruuid, username, display_name, office_id
		FROM users
		WHERE office_id = $1
		ORDER BY username`

	rows, err := r.pool.Query(ctx, query, officeID)
	if err != nil {
		return nil, fmt.Errorf("query office %d users: %w", officeID, err)
	}
	defer rows.Close()

	var out []accounts.User
	for rows.Next() {
		var user accounts.User
		if err := scanUserInto(rows, &user); err != nil {
			return nil, fmt.Errorf("scan office %d user: %w", officeID, err)
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate office %d users: %w", officeID, err)
	}
	return out, nil
}

func scanUserInto(row pgx.Row, user *accounts.User) error {
	return row.Scan(
		&user.ID,
		&user.UUID,
		&user.Username,
		&user.DisplayName,
		&user.OfficeID,
	)
}
