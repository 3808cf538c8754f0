package finance

import (
	"time"

	"github.com/mfcruz/gestor/internal/model"
)

type transactionResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Amount          int64     `json:"amount"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	ProjectID       string    `json:"project_id,omitempty"`
	ClientID        string    `json:"client_id,omitempty"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	RemotePaymentID string    `json:"remote_payment_id,omitempty"`
	RemoteStatus    string    `json:"remote_status,omitempty"`
}

func toResponse(tx model.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		Description:     tx.Description,
		Category:        tx.Category,
		ProjectID:       tx.ProjectID,
		ClientID:        tx.ClientID,
		Date:            tx.Date,
		Status:          string(tx.Status),
		PaymentMethod:   tx.PaymentMethod,
		RemotePaymentID: tx.RemotePaymentID,
		RemoteStatus:    tx.RemoteStatus,
	}
}

func toResponseList(txs []model.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type cashFlowPointResponse struct {
	Date     time.Time `json:"date"`
	Income   int64     `json:"income"`
	Expenses int64     `json:"expenses"`
}

type summaryResponse struct {
	TotalIncome   int64                   `json:"total_income"`
	TotalExpenses int64                   `json:"total_expenses"`
	NetProfit     int64                   `json:"net_profit"`
	CashFlow      []cashFlowPointResponse `json:"cash_flow"`
}

func toSummaryResponse(sum model.Summary) summaryResponse {
	resp := summaryResponse{
		TotalIncome:   sum.TotalIncome,
		TotalExpenses: sum.TotalExpenses,
		NetProfit:     sum.NetProfit,
		CashFlow:      make([]cashFlowPointResponse, 0, len(sum.CashFlow)),
	}

	for _, p := range sum.CashFlow {
		resp.CashFlow = append(resp.CashFlow, cashFlowPointResponse{
			Date:     p.Date,
			Income:   p.Income,
			Expenses: p.Expenses,
		})
	}

	return resp
}
