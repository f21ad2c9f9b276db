// AngelaMos | 2026
// handler.go

package job

import (
	"net/http"
	"strconv"

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
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Patch("/{jobID}", h.Update)
			r.Delete("/{jobID}", h.Delete)
		})

		r.Get("/{jobID}", h.Get)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}
	if err := req.CheckSalary(); err != nil {
		core.JSONError(w, err)
		return
	}

	j, err := h.service.Create(r.Context(), identity.Optional(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToJobResponse(j))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "jobID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	j, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

// Search accepts title, company_id, company_name and status filters.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := SearchParams{
		Page:        core.PageFromQuery(r),
		Title:       q.Get("title"),
		CompanyName: q.Get("company_name"),
	}

	if raw := q.Get("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			core.BadRequest(w, "invalid company_id")
			return
		}
		params.CompanyID = id
	}

	status, ok := statusQuery(w, r)
	if !ok {
		return
	}
	params.Status = status

	page, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToJobResponse))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	status, ok := statusQuery(w, r)
	if !ok {
		return
	}

	page, err := h.service.ListMine(
		r.Context(),
		identity.Optional(r.Context()),
		status,
		core.PageFromQuery(r),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToJobResponse))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "jobID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateJobRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}
	if err := req.CheckSalary(); err != nil {
		core.JSONError(w, err)
		return
	}

	j, err := h.service.Update(r.Context(), identity.Optional(r.Context()), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "jobID")
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

func statusQuery(w http.ResponseWriter, r *http.Request) (lifecycle.JobStatus, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return "", true
	}

	status, err := lifecycle.ParseJobStatus(raw)
	if err != nil {
		core.BadRequest(w, "invalid status filter")
		return "", false
	}

	return status, true
}
