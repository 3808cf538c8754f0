// Package asaas wraps the payments/invoicing gateway. Request and response
// shapes are the gateway's own schema and are treated as a fixed external
// contract; the client does no retrying, paging, or status reconciliation.
package asaas

import (
	"context"
	"net/http"

	"github.com/mfcruz/gestor/internal/gateway"
	"github.com/mfcruz/gestor/internal/model"
)

const DefaultBaseURL = "https://api.asaas.com/v3"

// BillingType selects how a payment is charged.
type BillingType string

const (
	BillingBoleto     BillingType = "BOLETO"
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingPix        BillingType = "PIX"
)

// PaymentStatus is the gateway's payment status enum.
type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "PENDING"
	PaymentReceived       PaymentStatus = "RECEIVED"
	PaymentOverdue        PaymentStatus = "OVERDUE"
	PaymentRefunded       PaymentStatus = "REFUNDED"
	PaymentReceivedInCash PaymentStatus = "RECEIVED_IN_CASH"
	PaymentDeleted        PaymentStatus = "DELETED"
)

// InvoiceStatus is the gateway's invoice status enum.
type InvoiceStatus string

const (
	InvoiceIssued     InvoiceStatus = "ISSUED"
	InvoiceFailed     InvoiceStatus = "FAILED"
	InvoiceInProcess  InvoiceStatus = "IN_PROCESS"
	InvoiceAuthorized InvoiceStatus = "AUTHORIZED"
	InvoiceCancelled  InvoiceStatus = "CANCELLED"
	InvoiceDenied     InvoiceStatus = "DENIED"
)

// Address is the customer address block in the gateway's schema.
type Address struct {
	Address       string `json:"address"`
	AddressNumber string `json:"addressNumber"`
	Complement    string `json:"complement"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
}

// Customer mirrors the gateway's customer resource.
type Customer struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	CpfCnpj     string  `json:"cpfCnpj"`
	Phone       string  `json:"phone"`
	MobilePhone string  `json:"mobilePhone"`
	Address     Address `json:"address"`
}

// Payment mirrors the gateway's payment resource. Value is in the gateway's
// unit (whole currency, not cents).
type Payment struct {
	ID                string        `json:"id,omitempty"`
	Customer          string        `json:"customer"`
	BillingType       BillingType   `json:"billingType"`
	DueDate           string        `json:"dueDate"` // YYYY-MM-DD
	Value             float64       `json:"value"`
	Description       string        `json:"description"`
	ExternalReference string        `json:"externalReference"`
	Status            PaymentStatus `json:"status,omitempty"`
	InvoiceURL        string        `json:"invoiceUrl,omitempty"`
	BankSlipURL       string        `json:"bankSlipUrl,omitempty"`
}

// Invoice mirrors the gateway's fiscal invoice resource.
type Invoice struct {
	ID        string        `json:"id,omitempty"`
	Payment   string        `json:"payment"`
	Value     float64       `json:"value"`
	Status    InvoiceStatus `json:"status,omitempty"`
	IssueDate string        `json:"issueDate,omitempty"` // YYYY-MM-DD
	Series    string        `json:"series,omitempty"`
	Number    string        `json:"number,omitempty"`
	PDF       *InvoicePDF   `json:"pdf,omitempty"`
}

type InvoicePDF struct {
	Available bool   `json:"available"`
	Link      string `json:"link"`
}

// Client talks to the payments gateway. The API key travels in the
// gateway's access_token header.
type Client struct {
	gw *gateway.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{gw: gateway.New(baseURL, "access_token", apiKey)}
}

func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	var out Customer
	if err := c.gw.Do(ctx, http.MethodPost, "/customers", customer, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := c.gw.Do(ctx, http.MethodGet, "/customers/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) CreatePayment(ctx context.Context, payment Payment) (*Payment, error) {
	var out Payment
	if err := c.gw.Do(ctx, http.MethodPost, "/payments", payment, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var out Payment
	if err := c.gw.Do(ctx, http.MethodGet, "/payments/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id string, payment Payment) (*Payment, error) {
	var out Payment
	if err := c.gw.Do(ctx, http.MethodPost, "/payments/"+id, payment, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListCustomerPayments returns every payment for one gateway customer. The
// gateway wraps lists in a data envelope.
func (c *Client) ListCustomerPayments(ctx context.Context, customerID string) ([]Payment, error) {
	var out struct {
		Data []Payment `json:"data"`
	}

	if err := c.gw.Do(ctx, http.MethodGet, "/payments?customer="+customerID, nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

func (c *Client) CreateInvoice(ctx context.Context, invoice Invoice) (*Invoice, error) {
	var out Invoice
	if err := c.gw.Do(ctx, http.MethodPost, "/invoices", invoice, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := c.gw.Do(ctx, http.MethodGet, "/invoices/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// PaymentFromTransaction builds a boleto payment request for a local
// transaction: due on the transaction date, linked back through the
// external reference. The gateway wants whole-currency values, the ledger
// stores cents.
func PaymentFromTransaction(tx model.Transaction, customerID string) Payment {
	return Payment{
		Customer:          customerID,
		BillingType:       BillingBoleto,
		DueDate:           tx.Date.Format("2006-01-02"),
		Value:             float64(tx.Amount) / 100.0,
		Description:       tx.Description,
		ExternalReference: tx.ID,
	}
}
