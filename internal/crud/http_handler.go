package crud

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookstore/internal/httpx"
	"bookstore/internal/tenant"
)

// HTTPHandler exposes a Service over JSON. Routes are registered by the
// caller; single-entity handlers read the key from the {id} path value.
type HTTPHandler[T Entity[K], K comparable, I any] struct {
	service *Service[T, K, I]
	parseID func(string) (K, error)
}

// NewHTTPHandler creates a handler. parseID converts path and query values
// into keys and should wrap ErrInvalidID on failure.
func NewHTTPHandler[T Entity[K], K comparable, I any](service *Service[T, K, I], parseID func(string) (K, error)) *HTTPHandler[T, K, I] {
	return &HTTPHandler[T, K, I]{service: service, parseID: parseID}
}

// ParsePageRequest reads sorting, skip_count and max_result_count from the query.
func ParsePageRequest(r *http.Request) PageRequest {
	query := r.URL.Query()
	skip, _ := strconv.Atoi(query.Get("skip_count"))
	limit, _ := strconv.Atoi(query.Get("max_result_count"))
	return PageRequest{
		Sorting:        strings.TrimSpace(query.Get("sorting")),
		SkipCount:      skip,
		MaxResultCount: limit,
	}.Normalize()
}

// WriteError maps service errors onto the JSON error envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Entity not found", nil)
	case errors.Is(err, ErrInvalidSorting):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SORTING", err.Error(), nil)
	case errors.Is(err, ErrInvalidID):
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid id", nil)
	case errors.Is(err, tenant.ErrInvalidID):
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_TENANT", "Invalid tenant id", nil)
	default:
		httpx.InternalError(w, r, err)
	}
}

func (h *HTTPHandler[T, K, I]) pathID(w http.ResponseWriter, r *http.Request) (K, bool) {
	id, err := h.parseID(r.PathValue("id"))
	if err != nil {
		WriteError(w, r, err)
		return id, false
	}
	return id, true
}

func (h *HTTPHandler[T, K, I]) decode(w http.ResponseWriter, r *http.Request) (I, bool) {
	var in I
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return in, false
	}
	if details := httpx.ValidateStruct(in); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return in, false
	}
	return in, true
}

// List handles GET /<collection>
func (h *HTTPHandler[T, K, I]) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePageRequest(r)
	result, err := h.service.GetList(r.Context(), p)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, result, map[string]any{
		"skip_count":       p.SkipCount,
		"max_result_count": p.MaxResultCount,
	})
}

// Get handles GET /<collection>/{id}
func (h *HTTPHandler[T, K, I]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Create handles POST /<collection>
func (h *HTTPHandler[T, K, I]) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	e, err := h.service.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, e)
}

// Update handles PUT /<collection>/{id}
func (h *HTTPHandler[T, K, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	e, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Delete handles DELETE /<collection>/{id}
func (h *HTTPHandler[T, K, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

// DeleteMany handles DELETE /<collection>?ids=a,b,c
func (h *HTTPHandler[T, K, I]) DeleteMany(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "ids is required", nil)
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]K, 0, len(parts))
	for _, p := range parts {
		id, err := h.parseID(strings.TrimSpace(p))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		ids = append(ids, id)
	}

	if err := h.service.DeleteMany(r.Context(), ids); err != nil {
		WriteError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}
