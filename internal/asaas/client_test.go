package asaas_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/asaas"
	"github.com/mfcruz/gestor/internal/gateway"
	"github.com/mfcruz/gestor/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /customers", func(w http.ResponseWriter, r *http.Request) {
		var in asaas.Customer
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		in.ID = "cus_001"
		json.NewEncoder(w).Encode(in)
	})

	mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		var in asaas.Payment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		in.ID = "pay_001"
		in.Status = asaas.PaymentPending
		in.BankSlipURL = "https://pay.example/boleto/pay_001"
		json.NewEncoder(w).Encode(in)
	})

	mux.HandleFunc("GET /payments", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cus_001", r.URL.Query().Get("customer"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []asaas.Payment{
				{ID: "pay_001", Status: asaas.PaymentReceived},
				{ID: "pay_002", Status: asaas.PaymentPending},
			},
		})
	})

	mux.HandleFunc("GET /payments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "pay_001" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(asaas.Payment{ID: "pay_001", Status: asaas.PaymentReceived})
	})

	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("access_token") != "key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		mux.ServeHTTP(w, r)
	})

	return httptest.NewServer(wrapped)
}

func TestClient_CreatePayment(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := asaas.New(ts.URL, "key")

	payment, err := c.CreatePayment(context.Background(), asaas.Payment{
		Customer:    "cus_001",
		BillingType: asaas.BillingBoleto,
		DueDate:     "2025-04-10",
		Value:       1250.50,
	})
	require.NoError(t, err)

	assert.Equal(t, "pay_001", payment.ID)
	assert.Equal(t, asaas.PaymentPending, payment.Status)
	assert.NotEmpty(t, payment.BankSlipURL)
}

func TestClient_ListCustomerPayments(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := asaas.New(ts.URL, "key")

	payments, err := c.ListCustomerPayments(context.Background(), "cus_001")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, asaas.PaymentReceived, payments[0].Status)
}

func TestClient_GetPayment_RemoteError(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := asaas.New(ts.URL, "key")

	_, err := c.GetPayment(context.Background(), "pay_missing")
	require.Error(t, err)

	var remote *gateway.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusNotFound, remote.Status)
}

func TestPaymentFromTransaction(t *testing.T) {
	tx := model.Transaction{
		ID:          "tx1",
		Type:        model.TypeIncome,
		Amount:      125050,
		Description: "Projeto elétrico",
		Date:        time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC),
	}

	payment := asaas.PaymentFromTransaction(tx, "cus_001")

	assert.Equal(t, "cus_001", payment.Customer)
	assert.Equal(t, asaas.BillingBoleto, payment.BillingType)
	assert.Equal(t, "2025-04-10", payment.DueDate)
	assert.InDelta(t, 1250.50, payment.Value, 0.001)
	assert.Equal(t, "tx1", payment.ExternalReference)
}
