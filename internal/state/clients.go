package state

import (
	"slices"

	"github.com/mfcruz/gestor/internal/model"
)

// SetClients replaces the whole client collection. Used for the initial
// load; applying the same list twice is equivalent to applying it once.
func (s State) SetClients(clients []model.Client) State {
	next := s
	next.Clients.Clients = cloneClients(clients)

	return next
}

// AddClient appends a client. The caller guarantees id uniqueness.
func (s State) AddClient(c model.Client) State {
	next := s
	next.Clients.Clients = append(cloneClients(s.Clients.Clients), c)

	return next
}

// UpdateClient replaces the client with a matching id. No-op when absent.
func (s State) UpdateClient(c model.Client) State {
	idx := slices.IndexFunc(s.Clients.Clients, func(existing model.Client) bool {
		return existing.ID == c.ID
	})
	if idx == -1 {
		return s
	}

	clients := cloneClients(s.Clients.Clients)
	clients[idx] = c

	next := s
	next.Clients.Clients = clients

	return next
}

// DeleteClient removes the client with the given id. Projects and
// transactions referencing it are left alone.
func (s State) DeleteClient(id string) State {
	next := s
	next.Clients.Clients = slices.DeleteFunc(cloneClients(s.Clients.Clients), func(c model.Client) bool {
		return c.ID == id
	})

	return next
}

// AddClientTag adds a tag to a client's tag set. Idempotent: adding a tag
// the client already carries changes nothing. No-op when the client is
// absent.
func (s State) AddClientTag(clientID, tag string) State {
	idx := slices.IndexFunc(s.Clients.Clients, func(c model.Client) bool {
		return c.ID == clientID
	})
	if idx == -1 {
		return s
	}

	if slices.Contains(s.Clients.Clients[idx].Tags, tag) {
		return s
	}

	clients := cloneClients(s.Clients.Clients)
	clients[idx].Tags = append(clients[idx].Tags, tag)

	next := s
	next.Clients.Clients = clients

	return next
}

// RemoveClientTag removes every occurrence of a tag from a client's tag
// set. No-op when the client is absent.
func (s State) RemoveClientTag(clientID, tag string) State {
	idx := slices.IndexFunc(s.Clients.Clients, func(c model.Client) bool {
		return c.ID == clientID
	})
	if idx == -1 {
		return s
	}

	clients := cloneClients(s.Clients.Clients)
	clients[idx].Tags = slices.DeleteFunc(clients[idx].Tags, func(t string) bool {
		return t == tag
	})

	next := s
	next.Clients.Clients = clients

	return next
}

// FindClient looks up a client by id.
func (s State) FindClient(id string) (model.Client, bool) {
	for _, c := range s.Clients.Clients {
		if c.ID == id {
			return c, true
		}
	}

	return model.Client{}, false
}
