// AngelaMos | 2026
// handler.go

package channel

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
	r.Route("/channels", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/{channelID}/join", h.Join)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, summaries)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ch, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ch)
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	channelID := chi.URLParam(r, "channelID")
	if channelID == "" {
		core.BadRequest(w, "channel ID required")
		return
	}

	if err := h.service.Join(r.Context(), channelID, userID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, JoinResponse{ChannelID: channelID, Status: "joined"})
}
