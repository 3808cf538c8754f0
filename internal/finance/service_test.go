package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfcruz/gestor/internal/asaas"
	"github.com/mfcruz/gestor/internal/finance"
	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

func newService(t *testing.T) (*finance.Service, *finance.MockRepository, *finance.MockPaymentsGateway, *store.Store) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := finance.NewMockRepository(ctrl)
	payments := finance.NewMockPaymentsGateway(ctrl)
	st := store.New(state.New())

	return finance.NewService(st, repo, payments), repo, payments, st
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    finance.CreateParams
		setupMock func(m *finance.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: finance.CreateParams{
				Type:        model.TypeIncome,
				Amount:      125000,
				Description: "Projeto estrutural",
				Category:    "Consulting",
				Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				Status:      model.StatusCompleted,
			},
			setupMock: func(m *finance.MockRepository) {
				m.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "RepoError",
			params: finance.CreateParams{Type: model.TypeExpense, Amount: 500},
			setupMock: func(m *finance.MockRepository) {
				m.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, st := newService(t)
			tt.setupMock(repo)

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, st.Snapshot().Finances.Transactions)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Len(t, st.Snapshot().Finances.Transactions, 1)
		})
	}
}

func TestService_Create_DefaultsStatusPending(t *testing.T) {
	svc, repo, _, _ := newService(t)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Create(context.Background(), finance.CreateParams{Type: model.TypeExpense, Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestService_Summary(t *testing.T) {
	svc, repo, _, st := newService(t)

	repo.EXPECT().ListTransactions(gomock.Any()).Return([]model.Transaction{
		{ID: "1", Type: model.TypeIncome, Amount: 50000, Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Type: model.TypeExpense, Amount: 15000, Date: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
	}, nil)
	repo.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	require.NoError(t, svc.Load(context.Background()))

	sum := svc.Summary()

	assert.Equal(t, int64(50000), sum.TotalIncome)
	assert.Equal(t, int64(15000), sum.TotalExpenses)
	assert.Equal(t, int64(35000), sum.NetProfit)
	assert.Len(t, sum.CashFlow, 2)

	// The snapshot holds the replaced summary.
	require.NotNil(t, st.Snapshot().Finances.Summary)
	assert.Equal(t, int64(35000), st.Snapshot().Finances.Summary.NetProfit)
}

func TestService_AddCategory_Idempotent(t *testing.T) {
	svc, repo, _, _ := newService(t)

	// A single persistence write for two identical adds.
	repo.EXPECT().CreateCategory(gomock.Any(), "Ferramentas").Return(nil).Times(1)

	require.NoError(t, svc.AddCategory(context.Background(), "Ferramentas"))
	require.NoError(t, svc.AddCategory(context.Background(), "Ferramentas"))

	assert.Contains(t, svc.Categories(), "Ferramentas")

	// Seeded defaults are already present and never re-persisted.
	require.NoError(t, svc.AddCategory(context.Background(), "Materials"))
}

func TestService_CreateBatch(t *testing.T) {
	svc, repo, _, st := newService(t)

	repo.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(2)).Return(nil)

	txs, err := svc.CreateBatch(context.Background(), []finance.CreateParams{
		{Type: model.TypeExpense, Amount: 2300, Description: "Cimento"},
		{Type: model.TypeExpense, Amount: 800, Description: "Areia"},
	})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Len(t, st.Snapshot().Finances.Transactions, 2)
}

func TestService_MirrorPayment(t *testing.T) {
	svc, repo, payments, st := newService(t)

	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := svc.Create(context.Background(), finance.CreateParams{
		Type:        model.TypeIncome,
		Amount:      125050,
		Description: "Projeto elétrico",
		Date:        time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	payments.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p asaas.Payment) (*asaas.Payment, error) {
			assert.Equal(t, tx.ID, p.ExternalReference)
			assert.InDelta(t, 1250.50, p.Value, 0.001)

			p.ID = "pay_001"
			p.Status = asaas.PaymentPending

			return &p, nil
		})
	repo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	payment, err := svc.MirrorPayment(context.Background(), tx.ID, "cus_001")
	require.NoError(t, err)
	assert.Equal(t, "pay_001", payment.ID)

	mirrored, ok := st.Snapshot().FindTransaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, "pay_001", mirrored.RemotePaymentID)
	assert.Equal(t, string(asaas.PaymentPending), mirrored.RemoteStatus)
	// Local status is never reconciled with the remote one.
	assert.Equal(t, model.StatusPending, mirrored.Status)
}

func TestService_MirrorPayment_UnknownTransaction(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.MirrorPayment(context.Background(), "ghost", "cus_001")
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestService_RefreshMirror_RequiresMirror(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := svc.Create(context.Background(), finance.CreateParams{Type: model.TypeIncome, Amount: 100})
	require.NoError(t, err)

	_, err = svc.RefreshMirror(context.Background(), tx.ID)
	assert.ErrorIs(t, err, finance.ErrNoMirror)
}

func TestService_List_Filters(t *testing.T) {
	svc, repo, _, _ := newService(t)

	income := model.TypeIncome
	completed := model.StatusCompleted

	repo.EXPECT().ListTransactions(gomock.Any()).Return([]model.Transaction{
		{ID: "1", Type: model.TypeIncome, Status: model.StatusCompleted, Amount: 100},
		{ID: "2", Type: model.TypeIncome, Status: model.StatusPending, Amount: 200},
		{ID: "3", Type: model.TypeExpense, Status: model.StatusCompleted, Amount: 300},
	}, nil)
	repo.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)

	require.NoError(t, svc.Load(context.Background()))

	got := svc.List(finance.ListFilter{Type: &income, Status: &completed})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}
