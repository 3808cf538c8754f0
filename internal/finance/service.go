package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfcruz/gestor/internal/asaas"
	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

// ErrNotFound is returned when an operation that must read a transaction
// (as opposed to the silent store updates) targets an unknown id.
var ErrNotFound = errors.New("transaction not found")

// ErrNoMirror is returned when a remote refresh is asked of a transaction
// that was never pushed to the payments gateway.
var ErrNoMirror = errors.New("transaction has no remote payment")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=finance
type Repository interface {
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	CreateTransactions(ctx context.Context, txs []model.Transaction) error
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]string, error)
	CreateCategory(ctx context.Context, name string) error
}

// PaymentsGateway is the slice of the payments client the ledger uses to
// mirror transactions remotely.
type PaymentsGateway interface {
	CreatePayment(ctx context.Context, payment asaas.Payment) (*asaas.Payment, error)
	GetPayment(ctx context.Context, id string) (*asaas.Payment, error)
}

type Service struct {
	store    *store.Store
	repo     Repository
	payments PaymentsGateway
}

func NewService(st *store.Store, repo Repository, payments PaymentsGateway) *Service {
	return &Service{store: st, repo: repo, payments: payments}
}

// Load replaces the in-memory ledger and category list with the persisted
// collections. Persisted categories extend the defaults; they never shrink
// them.
func (s *Service) Load(ctx context.Context) error {
	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		next := st.SetTransactions(txs)
		for _, name := range categories {
			next = next.AddCategory(name)
		}

		return next
	})

	return nil
}

type CreateParams struct {
	Type          model.TransactionType
	Amount        int64
	Description   string
	Category      string
	ProjectID     string
	ClientID      string
	Date          time.Time
	Status        model.TransactionStatus
	PaymentMethod string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Transaction, error) {
	tx := newTransaction(params)

	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddTransaction(tx)
	})

	return &tx, nil
}

// CreateBatch records several transactions at once, e.g. an imported bank
// statement. Persistence is atomic: either every row lands or none do.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]model.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]model.Transaction, len(params))
	for i, p := range params {
		txs[i] = newTransaction(p)
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("creating transactions: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		next := st
		for _, tx := range txs {
			next = next.AddTransaction(tx)
		}

		return next
	})

	return txs, nil
}

// Update replaces the transaction with a matching id; silent no-op when
// absent.
func (s *Service) Update(ctx context.Context, tx model.Transaction) error {
	if err := s.repo.UpdateTransaction(ctx, &tx); err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.UpdateTransaction(tx)
	})

	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.DeleteTransaction(id)
	})

	return nil
}

type ListFilter struct {
	Type      *model.TransactionType
	Status    *model.TransactionStatus
	ProjectID *string
	ClientID  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns ledger entries matching the filter, in insertion order.
func (s *Service) List(filter ListFilter) []model.Transaction {
	var out []model.Transaction

	for _, tx := range s.store.Snapshot().Finances.Transactions {
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}

		if filter.Status != nil && tx.Status != *filter.Status {
			continue
		}

		if filter.ProjectID != nil && tx.ProjectID != *filter.ProjectID {
			continue
		}

		if filter.ClientID != nil && tx.ClientID != *filter.ClientID {
			continue
		}

		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

// Get looks up one transaction.
func (s *Service) Get(id string) (model.Transaction, bool) {
	return s.store.Snapshot().FindTransaction(id)
}

// Summary recomputes the financial summary from the full ledger, replaces
// the stored one wholesale, and returns it.
func (s *Service) Summary() model.Summary {
	snap := s.store.Apply(func(st state.State) state.State {
		return st.SetSummary(state.Summarize(st.Finances.Transactions))
	})

	return *snap.Finances.Summary
}

// Categories returns the current category list.
func (s *Service) Categories() []string {
	return s.store.Snapshot().Finances.Categories
}

// AddCategory appends a category. Idempotent; the repository is only
// touched when the name is new.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	for _, existing := range s.Categories() {
		if existing == name {
			return nil
		}
	}

	if err := s.repo.CreateCategory(ctx, name); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	s.store.Apply(func(st state.State) state.State {
		return st.AddCategory(name)
	})

	return nil
}

// MirrorPayment creates a remote payment for a transaction and records the
// returned id and status verbatim. The local Status field is left alone;
// reconciling the two is not the ledger's job.
func (s *Service) MirrorPayment(ctx context.Context, txID, customerID string) (*asaas.Payment, error) {
	tx, ok := s.Get(txID)
	if !ok {
		return nil, ErrNotFound
	}

	payment, err := s.payments.CreatePayment(ctx, asaas.PaymentFromTransaction(tx, customerID))
	if err != nil {
		return nil, fmt.Errorf("creating remote payment: %w", err)
	}

	tx.RemotePaymentID = payment.ID
	tx.RemoteStatus = string(payment.Status)

	if err := s.Update(ctx, tx); err != nil {
		return nil, err
	}

	return payment, nil
}

// RefreshMirror re-reads the remote payment status for a mirrored
// transaction.
func (s *Service) RefreshMirror(ctx context.Context, txID string) (*asaas.Payment, error) {
	tx, ok := s.Get(txID)
	if !ok {
		return nil, ErrNotFound
	}

	if tx.RemotePaymentID == "" {
		return nil, ErrNoMirror
	}

	payment, err := s.payments.GetPayment(ctx, tx.RemotePaymentID)
	if err != nil {
		return nil, fmt.Errorf("fetching remote payment: %w", err)
	}

	tx.RemoteStatus = string(payment.Status)

	if err := s.Update(ctx, tx); err != nil {
		return nil, err
	}

	return payment, nil
}

func newTransaction(params CreateParams) model.Transaction {
	status := params.Status
	if status == "" {
		status = model.StatusPending
	}

	return model.Transaction{
		ID:            uuid.NewString(),
		Type:          params.Type,
		Amount:        params.Amount,
		Description:   params.Description,
		Category:      params.Category,
		ProjectID:     params.ProjectID,
		ClientID:      params.ClientID,
		Date:          params.Date,
		Status:        status,
		PaymentMethod: params.PaymentMethod,
	}
}
