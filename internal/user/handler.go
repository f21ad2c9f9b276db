// AngelaMos | 2026
// handler.go

package user

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

// RegisterRoutes mounts /users. Creation accepts anonymous callers, so it
// runs behind optionalAuth; everything else needs a verified principal.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Get("/me", h.GetMe)
			r.Put("/me", h.UpdateMe)
			r.Get("/{userID}", h.Get)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), identity.Optional(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "userID")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	user, err := h.service.Get(r.Context(), identity.Optional(r.Context()), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		Page:   core.PageFromQuery(r),
		Search: r.URL.Query().Get("search"),
	}

	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := identity.ParseRole(raw)
		if err != nil {
			core.BadRequest(w, "invalid role filter")
			return
		}
		params.Role = role
	}

	page, err := h.service.List(r.Context(), identity.Optional(r.Context()), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.PagedJSON(w, core.MapPage(page, ToUserResponse))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetMe(r.Context(), identity.Optional(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !core.DecodeJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.service.UpdateMe(r.Context(), identity.Optional(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}
