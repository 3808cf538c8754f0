package model

import "time"

// PaymentStatus is the state of a payment recorded in a client's history.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

// PaymentRecord is one entry in a client's payment history.
type PaymentRecord struct {
	Date   time.Time
	Amount int64 // Amount in cents
	Status PaymentStatus
}

// Client is a customer record. ProjectHistory holds project ids that are not
// verified against the project collection; readers must tolerate orphans.
type Client struct {
	ID             string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	Address        string
	Tags           []string
	ProjectHistory []string
	PaymentHistory []PaymentRecord
	NextFollowUp   *time.Time
}
