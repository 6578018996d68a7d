// AngelaMos | 2026
// handler.go

package post

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/middleware"
)

const maxMediaBytes = 25 << 20

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
	r.Get("/feed", h.WallFeed)
	r.Get("/news", h.NewsFeed)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/posts", h.Create)
		r.Get("/channels/{channelID}/posts", h.ChannelFeed)
	})
}

// Create accepts either a JSON body or a multipart form with a "media"
// file part alongside the post fields.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreatePostRequest
	var media *MediaInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes)
		if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
			core.BadRequest(w, "invalid multipart form")
			return
		}

		req.Content = r.FormValue("content")
		req.PostType = r.FormValue("post_type")
		if cid := r.FormValue("channel_id"); cid != "" {
			req.ChannelID = &cid
		}

		file, header, err := r.FormFile("media")
		if err == nil {
			defer file.Close()

			contentType := header.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			media = &MediaInput{
				Reader:      file,
				ContentType: contentType,
				MediaType:   coarseMediaType(contentType),
			}
		} else if err != http.ErrMissingFile {
			core.BadRequest(w, "invalid media file")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), userID, req, media)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, p)
}

func (h *Handler) WallFeed(w http.ResponseWriter, r *http.Request) {
	limit, afterID := feedParams(r)

	resp, err := h.service.WallFeed(r.Context(), limit, afterID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) NewsFeed(w http.ResponseWriter, r *http.Request) {
	limit, afterID := feedParams(r)

	resp, err := h.service.NewsFeed(r.Context(), limit, afterID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ChannelFeed(w http.ResponseWriter, r *http.Request) {
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

	limit, afterID := feedParams(r)

	resp, err := h.service.ChannelFeed(r.Context(), channelID, userID, limit, afterID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func feedParams(r *http.Request) (limit int, afterID int64) {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("after_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			afterID = n
		}
	}
	return limit, afterID
}

func coarseMediaType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "file"
	}
}
