package finance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfcruz/gestor/internal/asaas"
	"github.com/mfcruz/gestor/internal/finance"
	"github.com/mfcruz/gestor/internal/gateway"
	"github.com/mfcruz/gestor/internal/model"
)

type Handler struct {
	svc *finance.Service
}

func NewHandler(svc *finance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/mirror", h.mirror)
		r.Get("/{id}/mirror", h.refreshMirror)
	})

	r.Route("/finance", func(r chi.Router) {
		r.Get("/summary", h.summary)
		r.Get("/categories", h.categories)
		r.Post("/categories", h.addCategory)
	})
}

type createTransactionRequest struct {
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ProjectID     string    `json:"project_id"`
	ClientID      string    `json:"client_id"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), finance.CreateParams{
		Type:          model.TransactionType(req.Type),
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		ProjectID:     req.ProjectID,
		ClientID:      req.ClientID,
		Date:          req.Date,
		Status:        model.TransactionStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(*tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := finance.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := model.TransactionType(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st := model.TransactionStatus(s)
		filter.Status = &st
	}

	if s := r.URL.Query().Get("project_id"); s != "" {
		filter.ProjectID = &s
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		filter.ClientID = &s
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	writeJSON(w, http.StatusOK, toResponseList(h.svc.List(filter)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req transactionResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx := model.Transaction{
		ID:              chi.URLParam(r, "id"),
		Type:            model.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		ProjectID:       req.ProjectID,
		ClientID:        req.ClientID,
		Date:            req.Date,
		Status:          model.TransactionStatus(req.Status),
		PaymentMethod:   req.PaymentMethod,
		RemotePaymentID: req.RemotePaymentID,
		RemoteStatus:    req.RemoteStatus,
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type mirrorRequest struct {
	CustomerID string `json:"customer_id"`
}

type mirrorResponse struct {
	PaymentID   string `json:"payment_id"`
	Status      string `json:"status"`
	InvoiceURL  string `json:"invoice_url,omitempty"`
	BankSlipURL string `json:"bank_slip_url,omitempty"`
}

func toMirrorResponse(p *asaas.Payment) mirrorResponse {
	return mirrorResponse{
		PaymentID:   p.ID,
		Status:      string(p.Status),
		InvoiceURL:  p.InvoiceURL,
		BankSlipURL: p.BankSlipURL,
	}
}

// mirror pushes the transaction to the payments gateway as a boleto charge.
func (h *Handler) mirror(w http.ResponseWriter, r *http.Request) {
	var req mirrorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.CustomerID == "" {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	payment, err := h.svc.MirrorPayment(r.Context(), chi.URLParam(r, "id"), req.CustomerID)
	if err != nil {
		writeMirrorError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMirrorResponse(payment))
}

func (h *Handler) refreshMirror(w http.ResponseWriter, r *http.Request) {
	payment, err := h.svc.RefreshMirror(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMirrorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMirrorResponse(payment))
}

func writeMirrorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, finance.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, finance.ErrNoMirror):
		http.Error(w, "transaction has no remote payment", http.StatusConflict)
	default:
		var remoteErr *gateway.RemoteError
		if errors.As(err, &remoteErr) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toSummaryResponse(h.svc.Summary()))
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: h.svc.Categories()})
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.AddCategory(r.Context(), req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, categoriesResponse{Categories: h.svc.Categories()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
