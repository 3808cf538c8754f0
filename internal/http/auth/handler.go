package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfcruz/gestor/internal/auth"
	"github.com/mfcruz/gestor/internal/model"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes are reachable without a bearer token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
	r.Patch("/profile", h.updateProfile)
	r.Patch("/fiscal", h.updateFiscal)
}

type userResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TaxID        string `json:"tax_id"`
	BusinessType string `json:"business_type"`
	FiscalRegime string `json:"fiscal_regime"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		TaxID:        u.TaxID,
		BusinessType: string(u.BusinessType),
		FiscalRegime: string(u.FiscalRegime),
	}
}

type registerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	TaxID        string `json:"tax_id"`
	BusinessType string `json:"business_type"`
	FiscalRegime string `json:"fiscal_regime"`
	Password     string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, token, err := h.svc.Register(r.Context(), auth.RegisterParams{
		Name:         req.Name,
		Email:        req.Email,
		TaxID:        req.TaxID,
		BusinessType: model.BusinessType(req.BusinessType),
		FiscalRegime: model.FiscalRegime(req.FiscalRegime),
		Password:     req.Password,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(*u), Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(*u), Token: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Current()
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	TaxID *string `json:"tax_id,omitempty"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), auth.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		TaxID: req.TaxID,
	})
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

type updateFiscalRequest struct {
	BusinessType string `json:"business_type"`
	FiscalRegime string `json:"fiscal_regime"`
}

func (h *Handler) updateFiscal(w http.ResponseWriter, r *http.Request) {
	var req updateFiscalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.svc.UpdateFiscalInfo(r.Context(), model.BusinessType(req.BusinessType), model.FiscalRegime(req.FiscalRegime))
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
