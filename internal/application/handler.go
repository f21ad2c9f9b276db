// AngelaMos | 2026
// handler.go

package application

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/mine", h.ListMine)
		r.Get("/job/{jobID}", h.ListByJob)
		r.Get("/{applicationID}", h.Get)
		r.Delete("/{applicationID}", h.Delete)
		r.Patch("/{applicationID}/status", h.UpdateStatus)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), identity.Optional(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToApplicationResponse(a))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "applicationID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	a, err := h.service.Get(r.Context(), identity.Optional(r.Context()), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(a))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListMine(
		r.Context(),
		identity.Optional(r.Context()),
		core.PageFromQuery(r),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToApplicationResponse))
}

func (h *Handler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := core.IDParam(r, "jobID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	params := ListByJobParams{
		Page:  core.PageFromQuery(r),
		JobID: jobID,
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := lifecycle.ParseApplicationStatus(raw)
		if err != nil {
			core.BadRequest(w, "invalid status filter")
			return
		}
		params.Status = status
	}

	page, err := h.service.ListByJob(r.Context(), identity.Optional(r.Context()), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToApplicationResponse))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "applicationID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateStatusRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	a, err := h.service.UpdateStatus(r.Context(), identity.Optional(r.Context()), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(a))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "applicationID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), identity.Optional(r.Context()), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
