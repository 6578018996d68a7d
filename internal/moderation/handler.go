// AngelaMos | 2026
// handler.go

package moderation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/middleware"
)

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/posts/{postID}/report", h.Report)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)
		r.Get("/reports", h.ListReports)
		r.Delete("/posts/{postID}", h.DeletePost)
		r.Post("/users/{username}/mute", h.MuteUser)
	})
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		core.BadRequest(w, "invalid post ID")
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rep, err := h.service.Report(r.Context(), userID, postID, req.Reason)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, rep)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, reports)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := parsePostID(r)
	if err != nil {
		core.BadRequest(w, "invalid post ID")
		return
	}

	if err := h.service.DeletePost(r.Context(), postID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) MuteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		core.BadRequest(w, "username required")
		return
	}

	u, err := h.service.MuteUser(r.Context(), username)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, u.ToProfile())
}

func parsePostID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}
