// AngelaMos | 2026
// handler.go

package devapp

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/middleware"
)

const maxCertBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticator func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/dev-applications", h.Apply)
	})

	r.Route("/admin/dev-applications", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAdmin)
		r.Get("/pending", h.ListPending)
		r.Post("/{applicationID}/approve", h.Approve)
	})
}

// Apply takes a multipart form with a "motivation" field and an
// optional "certificate" file, or a plain JSON body without a file.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var motivation string
	var cert *CertInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxCertBytes)
		if err := r.ParseMultipartForm(maxCertBytes); err != nil {
			core.BadRequest(w, "invalid multipart form")
			return
		}

		motivation = r.FormValue("motivation")

		file, header, err := r.FormFile("certificate")
		if err == nil {
			defer file.Close()

			contentType := header.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			cert = &CertInput{Reader: file, ContentType: contentType}
		} else if err != http.ErrMissingFile {
			core.BadRequest(w, "invalid certificate file")
			return
		}
	} else {
		var body struct {
			Motivation string `json:"motivation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
		motivation = body.Motivation
	}

	if motivation == "" {
		core.BadRequest(w, "motivation is required")
		return
	}
	if len(motivation) > 2000 {
		core.BadRequest(w, "motivation too long")
		return
	}

	a, err := h.service.Apply(r.Context(), userID, motivation, cert)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, a)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListPending(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, apps)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	if applicationID == "" {
		core.BadRequest(w, "application ID required")
		return
	}

	a, err := h.service.Approve(r.Context(), applicationID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, a)
}
