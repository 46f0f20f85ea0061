package users

import (
	"sync"
	"testing"

	accounts "main/internal/domain/entity/accounts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegistrySnapshotIsACopy(t *testing.T) {
	registry := NewRegistry()
	registry.Replace([]accounts.User{
		{UUID: uuid.New(), Username: "alice"},
		{UUID: uuid.New(), Username: "bob"},
	})

	snap := registry.Snapshot()
	snap[0].Username = "mallory"

	again := registry.Snapshot()
	assert.Equal(t, "alice", again[0].Username, "mutating a snapshot must not leak into the registry")
}

func TestRegistryConcurrentAccess(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Replace([]accounts.User{{UUID: uuid.New(), Username: "alice"}})
				_ = registry.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, registry.Snapshot(), 1)
}
