package client

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mfcruz/gestor/internal/client"
	"github.com/mfcruz/gestor/internal/model"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/tags", h.addTag)
	r.Delete("/{id}/tags/{tag}", h.removeTag)
}

type clientResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	TaxID          string                  `json:"tax_id"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone"`
	Address        string                  `json:"address"`
	Tags           []string                `json:"tags"`
	ProjectHistory []string                `json:"project_history"`
	PaymentHistory []paymentRecordResponse `json:"payment_history"`
	NextFollowUp   *time.Time              `json:"next_follow_up,omitempty"`
}

type paymentRecordResponse struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
	Status string    `json:"status"`
}

func toResponse(c model.Client) clientResponse {
	resp := clientResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		Tags:           c.Tags,
		ProjectHistory: c.ProjectHistory,
		PaymentHistory: make([]paymentRecordResponse, 0, len(c.PaymentHistory)),
		NextFollowUp:   c.NextFollowUp,
	}

	for _, p := range c.PaymentHistory {
		resp.PaymentHistory = append(resp.PaymentHistory, paymentRecordResponse{
			Date:   p.Date,
			Amount: p.Amount,
			Status: string(p.Status),
		})
	}

	return resp
}

func toResponseList(clients []model.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

type createClientRequest struct {
	Name         string     `json:"name"`
	TaxID        string     `json:"tax_id"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Tags         []string   `json:"tags"`
	NextFollowUp *time.Time `json:"next_follow_up,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), client.CreateParams{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Tags:         req.Tags,
		NextFollowUp: req.NextFollowUp,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(*c))
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toResponseList(h.svc.List()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

// update replaces the full client record. An unknown id is a no-op, matching
// the store's update semantics.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req clientResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := model.Client{
		ID:             chi.URLParam(r, "id"),
		Name:           req.Name,
		TaxID:          req.TaxID,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Tags:           req.Tags,
		ProjectHistory: req.ProjectHistory,
		NextFollowUp:   req.NextFollowUp,
	}

	for _, p := range req.PaymentHistory {
		c.PaymentHistory = append(c.PaymentHistory, model.PaymentRecord{
			Date:   p.Date,
			Amount: p.Amount,
			Status: model.PaymentStatus(p.Status),
		})
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addTagRequest struct {
	Tag string `json:"tag"`
}

func (h *Handler) addTag(w http.ResponseWriter, r *http.Request) {
	var req addTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Tag == "" {
		http.Error(w, "tag is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.AddTag(r.Context(), chi.URLParam(r, "id"), req.Tag); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeTag(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveTag(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tag")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
