// AngelaMos | 2026
// handler.go

package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/identity"
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
	r.Route("/companies", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{companyID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.Create)
			r.Get("/me", h.GetMine)
			r.Patch("/{companyID}", h.Update)
			r.Delete("/{companyID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), identity.Optional(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToCompanyResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "companyID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCompanyResponse(c))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), ListCompaniesParams{
		Page: core.PageFromQuery(r),
		Name: r.URL.Query().Get("name"),
	})
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToCompanyResponse))
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetMine(r.Context(), identity.Optional(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCompanyResponse(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "companyID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateCompanyRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), identity.Optional(r.Context()), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToCompanyResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "companyID")
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
