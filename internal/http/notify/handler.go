package notify

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfcruz/gestor/internal/gateway"
	"github.com/mfcruz/gestor/internal/notify"
)

type Handler struct {
	svc *notify.Service
}

func NewHandler(svc *notify.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/payment-link", h.paymentLink)
	r.Post("/project-update", h.projectUpdate)
	r.Post("/reminder", h.reminder)
	r.Post("/document", h.document)
}

type paymentLinkRequest struct {
	Number      string `json:"number"`
	Link        string `json:"link"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (h *Handler) paymentLink(w http.ResponseWriter, r *http.Request) {
	var req paymentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	err := h.svc.PaymentLink(r.Context(), req.Number, req.Link, req.Amount, req.Description)
	writeResult(w, err)
}

type projectUpdateRequest struct {
	Number      string `json:"number"`
	ProjectName string `json:"project_name"`
	Status      string `json:"status"`
	Details     string `json:"details"`
}

func (h *Handler) projectUpdate(w http.ResponseWriter, r *http.Request) {
	var req projectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	err := h.svc.ProjectUpdate(r.Context(), req.Number, req.ProjectName, req.Status, req.Details)
	writeResult(w, err)
}

type reminderRequest struct {
	Number  string    `json:"number"`
	Title   string    `json:"title"`
	When    time.Time `json:"when"`
	Details string    `json:"details"`
}

func (h *Handler) reminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	err := h.svc.ScheduleReminder(r.Context(), req.Number, req.Title, req.When, req.Details)
	writeResult(w, err)
}

type documentRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Link   string `json:"link"`
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Number == "" {
		http.Error(w, "number is required", http.StatusBadRequest)
		return
	}

	err := h.svc.DocumentAvailable(r.Context(), req.Number, req.Name, req.Link)
	writeResult(w, err)
}

func writeResult(w http.ResponseWriter, err error) {
	if err != nil {
		var remoteErr *gateway.RemoteError
		if errors.As(err, &remoteErr) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}
