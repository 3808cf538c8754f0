package model

import "time"

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TransactionStatus is the lifecycle state of a transaction. Scheduled is
// used for future payments.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusScheduled TransactionStatus = "scheduled"
)

// Transaction is a single income or expense entry in the ledger. ProjectID
// and ClientID are optional loose references. The sign of Amount is implied
// by Type, not enforced.
//
// RemotePaymentID and RemoteStatus mirror the payments gateway verbatim when
// the transaction has been pushed there; they are never reconciled with the
// local Status.
type Transaction struct {
	ID              string
	Type            TransactionType
	Amount          int64 // Amount in cents
	Description     string
	Category        string
	ProjectID       string
	ClientID        string
	Date            time.Time
	Status          TransactionStatus
	PaymentMethod   string
	RemotePaymentID string
	RemoteStatus    string
}

// CashFlowPoint aggregates one day of ledger activity.
type CashFlowPoint struct {
	Date     time.Time
	Income   int64
	Expenses int64
}

// Summary is the derived financial summary. It is recomputed wholesale from
// the transaction list and replaced, never maintained incrementally.
type Summary struct {
	TotalIncome   int64
	TotalExpenses int64
	NetProfit     int64
	CashFlow      []CashFlowPoint
}
