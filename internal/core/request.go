// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a JSON body into dst and validates it. On failure it
// writes a 400 response and returns false.
func DecodeJSON(
	w http.ResponseWriter,
	r *http.Request,
	v *validator.Validate,
	dst any,
) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}

	if err := v.Struct(dst); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}

	return true
}

// IDParam parses a positive int64 route parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, ValidationError("invalid " + name)
	}
	return id, nil
}

// PageFromQuery reads page, page_size, sort and order. Values are passed on
// as given; repositories normalize them.
func PageFromQuery(r *http.Request) PageRequest {
	q := r.URL.Query()
	return PageRequest{
		Page:     IntQuery(r, "page", 1),
		PageSize: IntQuery(r, "page_size", DefaultPageSize),
		Sort:     q.Get("sort"),
		Desc:     strings.EqualFold(q.Get("order"), "desc"),
	}
}

func IntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// PagedJSON writes p with pagination meta.
func PagedJSON[T any](w http.ResponseWriter, p Page[T]) {
	Paginated(w, p.Items, p.Page, p.PageSize, p.Total)
}
