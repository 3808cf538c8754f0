package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/client"
	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

// Mock repository with overridable funcs, recording tag writes.
type mockRepo struct {
	clients        []model.Client
	tagWrites      map[string][]string
	createFunc     func(ctx context.Context, c *model.Client) error
	updateTagsFunc func(ctx context.Context, id string, tags []string) error
}

func (m *mockRepo) ListClients(context.Context) ([]model.Client, error) { return m.clients, nil }

func (m *mockRepo) CreateClient(ctx context.Context, c *model.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}

	return nil
}

func (m *mockRepo) UpdateClient(context.Context, *model.Client) error { return nil }
func (m *mockRepo) DeleteClient(context.Context, string) error        { return nil }

func (m *mockRepo) UpdateTags(ctx context.Context, id string, tags []string) error {
	if m.updateTagsFunc != nil {
		return m.updateTagsFunc(ctx, id, tags)
	}

	if m.tagWrites == nil {
		m.tagWrites = make(map[string][]string)
	}

	m.tagWrites[id] = tags

	return nil
}

func newService(repo client.Repository) (*client.Service, *store.Store) {
	st := store.New(state.New())
	return client.NewService(st, repo), st
}

func TestService_Create(t *testing.T) {
	svc, st := newService(&mockRepo{})

	c, err := svc.Create(context.Background(), client.CreateParams{
		Name:  "Ana Souza",
		Phone: "5511999999999",
		Tags:  []string{"residencial", "vip", "residencial"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	// Duplicate tags collapse on insert.
	assert.Equal(t, []string{"residencial", "vip"}, c.Tags)

	snap := st.Snapshot()
	require.Len(t, snap.Clients.Clients, 1)
	assert.Equal(t, "Ana Souza", snap.Clients.Clients[0].Name)
}

func TestService_Create_RepoError(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(context.Context, *model.Client) error {
			return errors.New("db down")
		},
	}
	svc, st := newService(repo)

	_, err := svc.Create(context.Background(), client.CreateParams{Name: "Ana"})
	require.Error(t, err)

	// Nothing is added to the snapshot when persistence fails.
	assert.Empty(t, st.Snapshot().Clients.Clients)
}

func TestService_AddTag(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newService(repo)

	c, err := svc.Create(context.Background(), client.CreateParams{Name: "Ana"})
	require.NoError(t, err)

	require.NoError(t, svc.AddTag(context.Background(), c.ID, "residencial"))
	require.NoError(t, svc.AddTag(context.Background(), c.ID, "residencial"))

	got, ok := svc.Get(c.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"residencial"}, got.Tags)

	// The duplicate add never reaches the repository a second time.
	assert.Equal(t, []string{"residencial"}, repo.tagWrites[c.ID])

	require.NoError(t, svc.RemoveTag(context.Background(), c.ID, "residencial"))

	got, ok = svc.Get(c.ID)
	require.True(t, ok)
	assert.Empty(t, got.Tags)
}

func TestService_TagOps_UnknownClientNoOp(t *testing.T) {
	repo := &mockRepo{
		updateTagsFunc: func(context.Context, string, []string) error {
			t.Fatal("UpdateTags must not be called for an unknown client")
			return nil
		},
	}
	svc, _ := newService(repo)

	assert.NoError(t, svc.AddTag(context.Background(), "ghost", "tag"))
	assert.NoError(t, svc.RemoveTag(context.Background(), "ghost", "tag"))
}

func TestService_Load(t *testing.T) {
	repo := &mockRepo{clients: []model.Client{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Bruno"},
	}}
	svc, _ := newService(repo)

	require.NoError(t, svc.Load(context.Background()))
	assert.Len(t, svc.List(), 2)
}

func TestService_Update_MissingIDNoOp(t *testing.T) {
	svc, st := newService(&mockRepo{})

	before := st.Snapshot()
	require.NoError(t, svc.Update(context.Background(), model.Client{ID: "ghost", Name: "X"}))
	assert.Equal(t, before, st.Snapshot())
}
