package positions

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	accounts "main/internal/domain/entity/accounts"
	trading "main/internal/domain/entity/trading"
	interfaces "main/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRegistry struct {
	users []accounts.User
}

func (r *staticRegistry) Snapshot() []accounts.User {
	return r.users
}

type recordingLocker struct {
	mu       sync.Mutex
	acquired []string
}

func (l *recordingLocker) Acquire(_ context.Context, key string, _, _ time.Duration) (interfaces.Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquired = append(l.acquired, key)
	return nopLease{}, nil
}

type nopLease struct{}

func (nopLease) Release(context.Context) error { return nil }

type snapshotSink struct {
	mu    sync.Mutex
	snaps []trading.OfficePositions
}

func (s *snapshotSink) PublishOfficePositions(_ context.Context, snap trading.OfficePositions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return nil
}

func TestDispatchPublishesOfficeSnapshot(t *testing.T) {
	userA := accounts.User{UUID: uuid.New(), Username: "alice", OfficeID: 7}
	userB := accounts.User{UUID: uuid.New(), Username: "bob", OfficeID: 7}

	store := newMemStore()
	svc := NewService(store)

	pos, err := svc.OpenPosition(context.Background(), trading.UserPositionsKey(userA.UUID), testRequest("GOLD", 1), trading.OrderTypeBuy, decimal.NewFromInt(101))
	require.NoError(t, err)

	locker := &recordingLocker{}
	sink := &snapshotSink{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewDispatcher(DispatcherConfig{
		OfficeID:    7,
		Interval:    time.Hour,
		LockAcquire: time.Second,
		LockExpiry:  time.Second,
	}, &staticRegistry{users: []accounts.User{userA, userB}}, locker, svc, sink, logger)

	d.dispatch(context.Background())

	require.Len(t, sink.snaps, 1)
	snap := sink.snaps[0]
	assert.Equal(t, int64(7), snap.OfficeID)
	require.Len(t, snap.Users, 2)
	require.Len(t, snap.Users["alice"], 1)
	assert.Equal(t, pos, snap.Users["alice"][pos.OrderID])
	assert.Empty(t, snap.Users["bob"])

	// every user's blob was read under its positions lock
	assert.ElementsMatch(t, []string{
		trading.PositionsLockKey(trading.UserPositionsKey(userA.UUID)),
		trading.PositionsLockKey(trading.UserPositionsKey(userB.UUID)),
	}, locker.acquired)
}

func TestDispatchSkipsEmptyRegistry(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sink := &snapshotSink{}
	d := NewDispatcher(DispatcherConfig{OfficeID: 7, Interval: time.Hour}, &staticRegistry{}, &recordingLocker{}, NewService(newMemStore()), sink, logger)

	d.dispatch(context.Background())
	assert.Empty(t, sink.snaps)
}
