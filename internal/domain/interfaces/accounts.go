package interfaces

import (
	"context"
	"errors"

	accounts "main/internal/domain/entity/accounts"
)

// ErrUserNotFound is returned by UserDirectory implementations when the
// identity token does not resolve to a known user.
var ErrUserNotFound = errors.New("user not found")

// UserDirectory resolves office users from the backing directory.
type UserDirectory interface {
	ByUsername(ctx context.Context, username string) (*accounts.User, error)
	ByOffice(ctx context.Context, officeID int64) ([]accounts.User, error)
}

// UserRegistry owns the office's current user set and serves consistent
// snapshots of it.
type UserRegistry interface {
	Snapshot() []accounts.User
}

// ScheduleRepository reads trading-hours configuration.
type ScheduleRepository interface {
	Active(ctx context.Context) ([]accounts.Schedule, error)
}
