package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bookstore/internal/crud"
	"bookstore/internal/httpx"
	"bookstore/internal/tenant"

	"github.com/google/uuid"
)

// HTTPHandler serves the book endpoints under /v1/books.
type HTTPHandler struct {
	*crud.HTTPHandler[Book, string, CreateUpdateInput]
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{
		HTTPHandler: crud.NewHTTPHandler(service.Service, ParseID),
		service:     service,
	}
}

// ParseID normalizes a book id. Book ids are UUIDs.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", crud.ErrInvalidID, raw)
	}
	return id.String(), nil
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/books", h.List)
	mux.HandleFunc("POST /v1/books", h.Create)
	mux.HandleFunc("DELETE /v1/books", h.DeleteMany)
	mux.HandleFunc("POST /v1/books/hash", h.GetHash)
	mux.HandleFunc("GET /v1/books/{id}", h.Get)
	mux.HandleFunc("PUT /v1/books/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/books/{id}", h.Delete)
}

// List handles GET /v1/books
// @Summary List books
// @Description List the books of the current tenant
// @Tags books
// @Produce json
// @Param X-Tenant-Id header string false "Tenant id"
// @Param sorting query string false "Sort expression, e.g. 'name desc'"
// @Param skip_count query int false "Items to skip" default(0)
// @Param max_result_count query int false "Page size" default(10)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.List(w, r)
}

// Get handles GET /v1/books/{id}
// @Summary Get book
// @Tags books
// @Produce json
// @Param X-Tenant-Id header string false "Tenant id"
// @Param id path string true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.Get(w, r)
}

// Create handles POST /v1/books
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param X-Tenant-Id header string false "Tenant id"
// @Param request body CreateUpdateInput true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.Create(w, r)
}

// Update handles PUT /v1/books/{id}
// @Summary Update book
// @Tags books
// @Accept json
// @Produce json
// @Param X-Tenant-Id header string false "Tenant id"
// @Param id path string true "Book id"
// @Param request body CreateUpdateInput true "Book"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.Update(w, r)
}

// Delete handles DELETE /v1/books/{id}
// @Summary Delete book
// @Tags books
// @Param X-Tenant-Id header string false "Tenant id"
// @Param id path string true "Book id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.Delete(w, r)
}

// DeleteMany handles DELETE /v1/books?ids=...
// @Summary Delete books
// @Tags books
// @Param X-Tenant-Id header string false "Tenant id"
// @Param ids query string true "Comma separated book ids"
// @Success 204
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/books [delete]
func (h *HTTPHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	h.HTTPHandler.DeleteMany(w, r)
}

type getHashRequest struct {
	TenantID *string `json:"tenant_id"`
}

// GetHash handles POST /v1/books/hash
// @Summary Hash a tenant's books
// @Description Uppercase hex SHA-1 over every book of the given tenant, ordered by id. Empty when the tenant has no books. A missing tenant_id selects the host scope.
// @Tags books
// @Accept json
// @Produce json
// @Param request body getHashRequest false "Tenant"
// @Success 200 {object} httpx.SuccessResponse{data=string}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books/hash [post]
func (h *HTTPHandler) GetHash(w http.ResponseWriter, r *http.Request) {
	var req getHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	var in GetHashInput
	if req.TenantID != nil {
		id, err := tenant.Parse(*req.TenantID)
		if err != nil {
			crud.WriteError(w, r, err)
			return
		}
		in.TenantID = id
	}

	hash, err := h.service.GetHash(r.Context(), in)
	if err != nil {
		crud.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, hash, nil)
}
