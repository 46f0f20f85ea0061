package users

import (
	"context"
	"sync"
	"time"

	accounts "main/internal/domain/entity/accounts"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Registry is the single owner of the office's current user set. Other
// components read it only through Snapshot; nothing else holds the set.
type Registry struct {
	mu    sync.RWMutex
	users []accounts.User
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot returns a copy of the current user set.
func (r *Registry) Snapshot() []accounts.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]accounts.User, len(r.users))
	copy(out, r.users)
	return out
}

// Replace swaps in a freshly loaded user set.
func (r *Registry) Replace(users []accounts.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = users
}

// Refresh reloads the office's users from the directory.
func (r *Registry) Refresh(ctx context.Context, directory interfaces.UserDirectory, officeID int64) error {
	users, err := directory.ByOffice(ctx, officeID)
	if err != nil {
		return err
	}
	r.Replace(users)
	return nil
}

// Run refreshes the registry on the given interval until the context ends.
// The first refresh happens immediately so consumers never start against an
// empty set.
func (r *Registry) Run(ctx context.Context, directory interfaces.UserDirectory, officeID int64, interval time.Duration, logger *logrus.Entry) error {
	if err := r.Refresh(ctx, directory, officeID); err != nil {
		return err
	}
	logger.WithField("users", len(r.Snapshot())).Info("user registry loaded")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Refresh(ctx, directory, officeID); err != nil {
				logger.WithError(err).Warn("user registry refresh failed")
			}
		}
	}
}
