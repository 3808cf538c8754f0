package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

func TestStore_ApplyReturnsNewSnapshot(t *testing.T) {
	s := store.New(state.New())

	snap := s.Apply(func(st state.State) state.State {
		return st.AddClient(model.Client{ID: "1", Name: "Ana"})
	})

	require.Len(t, snap.Clients.Clients, 1)
	assert.Equal(t, "Ana", snap.Clients.Clients[0].Name)
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := store.New(state.New())
	s.Apply(func(st state.State) state.State {
		return st.AddClient(model.Client{ID: "1", Name: "Ana", Tags: []string{"vip"}})
	})

	snap := s.Snapshot()
	snap.Clients.Clients[0].Name = "changed"
	snap.Clients.Clients[0].Tags[0] = "changed"

	fresh := s.Snapshot()
	assert.Equal(t, "Ana", fresh.Clients.Clients[0].Name)
	assert.Equal(t, "vip", fresh.Clients.Clients[0].Tags[0])
}

func TestStore_ApplyMultipleOpsAtomic(t *testing.T) {
	s := store.New(state.New())

	snap := s.Apply(
		func(st state.State) state.State { return st.AddProject(model.Project{ID: "p1"}) },
		func(st state.State) state.State { return st.AddTask(model.Task{ID: "t1", ProjectID: "p1"}) },
		func(st state.State) state.State { return st.DeleteProject("p1") },
	)

	assert.Empty(t, snap.Projects.Projects)
	assert.Empty(t, snap.Projects.Tasks)
}

func TestStore_ConcurrentApplies(t *testing.T) {
	s := store.New(state.New())

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			id := fmt.Sprintf("c%d", i)
			s.Apply(func(st state.State) state.State {
				return st.AddClient(model.Client{ID: id})
			})
		}()
	}

	wg.Wait()

	assert.Len(t, s.Snapshot().Clients.Clients, 50)
}
