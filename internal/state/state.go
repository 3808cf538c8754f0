// Package state holds the application snapshot and its update operations.
//
// Every operation is a pure function: it takes the current snapshot and
// returns the next one, never mutating its input and never failing. Updates
// and deletes aimed at an id that does not exist leave the snapshot
// unchanged. Callers that need atomicity across reads and writes go through
// the container in internal/store.
package state

import (
	"slices"

	"github.com/mfcruz/gestor/internal/model"
)

// State is one immutable snapshot of the four application slices.
type State struct {
	Auth     AuthState
	Clients  ClientsState
	Projects ProjectsState
	Finances FinancesState
}

// AuthState holds the logged-in user, if any.
type AuthState struct {
	User *model.User
}

// ClientsState is the customer registry.
type ClientsState struct {
	Clients []model.Client
}

// ProjectsState holds projects and the shared task collection. Tasks are
// owned by projects only through their ProjectID field.
type ProjectsState struct {
	Projects []model.Project
	Tasks    []model.Task
}

// FinancesState is the ledger plus its derived summary and category list.
type FinancesState struct {
	Transactions []model.Transaction
	Summary      *model.Summary
	Categories   []string
}

// DefaultCategories seeds the extensible category list.
var DefaultCategories = []string{
	"Materials",
	"Transport",
	"Software",
	"Consulting",
	"Equipment",
	"Maintenance",
	"Marketing",
	"Tax",
	"Other",
}

// New returns an empty snapshot with the default category list.
func New() State {
	return State{
		Finances: FinancesState{
			Categories: slices.Clone(DefaultCategories),
		},
	}
}

// Clone returns a deep copy of the snapshot. Mutating the copy never
// affects the original.
func (s State) Clone() State {
	out := s

	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}

	out.Clients.Clients = cloneClients(s.Clients.Clients)
	out.Projects.Projects = cloneProjects(s.Projects.Projects)
	out.Projects.Tasks = slices.Clone(s.Projects.Tasks)
	out.Finances.Transactions = slices.Clone(s.Finances.Transactions)
	out.Finances.Categories = slices.Clone(s.Finances.Categories)

	if s.Finances.Summary != nil {
		sum := *s.Finances.Summary
		sum.CashFlow = slices.Clone(s.Finances.Summary.CashFlow)
		out.Finances.Summary = &sum
	}

	return out
}

func cloneClients(clients []model.Client) []model.Client {
	out := slices.Clone(clients)
	for i := range out {
		out[i].Tags = slices.Clone(out[i].Tags)
		out[i].ProjectHistory = slices.Clone(out[i].ProjectHistory)
		out[i].PaymentHistory = slices.Clone(out[i].PaymentHistory)

		if out[i].NextFollowUp != nil {
			t := *out[i].NextFollowUp
			out[i].NextFollowUp = &t
		}
	}

	return out
}

func cloneProjects(projects []model.Project) []model.Project {
	out := slices.Clone(projects)
	for i := range out {
		out[i].Attachments = slices.Clone(out[i].Attachments)
	}

	return out
}
