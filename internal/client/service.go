package client

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

// Repository is the durable side of the client registry. The in-memory
// snapshot is the working set; every mutation writes through here first.
type Repository interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateClient(ctx context.Context, c *model.Client) error
	UpdateClient(ctx context.Context, c *model.Client) error
	DeleteClient(ctx context.Context, id string) error
	UpdateTags(ctx context.Context, id string, tags []string) error
}

type Service struct {
	store *store.Store
	repo  Repository
}

func NewService(st *store.Store, repo Repository) *Service {
	return &Service{store: st, repo: repo}
}

// Load replaces the in-memory registry with the persisted collection.
func (s *Service) Load(ctx context.Context) error {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("loading clients: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.SetClients(clients)
	})

	return nil
}

type CreateParams struct {
	Name         string
	TaxID        string
	Email        string
	Phone        string
	Address      string
	Tags         []string
	NextFollowUp *time.Time
}

// Create registers a new client under a fresh id. Tags are de-duplicated on
// insert.
func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Client, error) {
	c := model.Client{
		ID:           uuid.NewString(),
		Name:         params.Name,
		TaxID:        params.TaxID,
		Email:        params.Email,
		Phone:        params.Phone,
		Address:      params.Address,
		NextFollowUp: params.NextFollowUp,
	}

	for _, tag := range params.Tags {
		if !slices.Contains(c.Tags, tag) {
			c.Tags = append(c.Tags, tag)
		}
	}

	if err := s.repo.CreateClient(ctx, &c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddClient(c)
	})

	return &c, nil
}

// Update replaces the stored client with a matching id. Updating an id that
// does not exist is a silent no-op.
func (s *Service) Update(ctx context.Context, c model.Client) error {
	if err := s.repo.UpdateClient(ctx, &c); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateClient(c)
	})

	return nil
}

// Delete removes a client. Projects and transactions that reference it keep
// their dangling ids; readers treat those as unknown.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.DeleteClient(id)
	})

	return nil
}

// AddTag adds a tag to a client's tag set. Idempotent; no-op for an unknown
// client.
func (s *Service) AddTag(ctx context.Context, clientID, tag string) error {
	c, ok := s.store.Snapshot().FindClient(clientID)
	if !ok {
		return nil
	}

	if !slices.Contains(c.Tags, tag) {
		tags := append(slices.Clone(c.Tags), tag)
		if err := s.repo.UpdateTags(ctx, clientID, tags); err != nil {
			return fmt.Errorf("saving tags: %w", err)
		}
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddClientTag(clientID, tag)
	})

	return nil
}

// RemoveTag removes a tag from a client's tag set. No-op for an unknown
// client.
func (s *Service) RemoveTag(ctx context.Context, clientID, tag string) error {
	c, ok := s.store.Snapshot().FindClient(clientID)
	if !ok {
		return nil
	}

	tags := slices.DeleteFunc(slices.Clone(c.Tags), func(t string) bool {
		return t == tag
	})

	if len(tags) != len(c.Tags) {
		if err := s.repo.UpdateTags(ctx, clientID, tags); err != nil {
			return fmt.Errorf("saving tags: %w", err)
		}
	}

	s.store.Apply(func(st state.State) state.State {
		return st.RemoveClientTag(clientID, tag)
	})

	return nil
}

// List returns the current registry.
func (s *Service) List() []model.Client {
	return s.store.Snapshot().Clients.Clients
}

// Get looks up one client.
func (s *Service) Get(id string) (model.Client, bool) {
	return s.store.Snapshot().FindClient(id)
}
