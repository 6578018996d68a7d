// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Route("/payments", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", h.Initiate)
		r.Post("/confirm", h.Confirm)
	})

	r.Route("/admin/payments", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)
		r.Get("/pending", h.ListPending)
		r.Post("/{paymentID}/approve", h.Approve)
	})
}

func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Initiate(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Confirm(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPending(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, payments)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentID")
	if paymentID == "" {
		core.BadRequest(w, "payment ID required")
		return
	}

	resp, err := h.service.Approve(r.Context(), paymentID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}
