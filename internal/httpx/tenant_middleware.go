package httpx

import (
	"net/http"

	"bookstore/internal/tenant"
)

// DefaultTenantHeader carries the tenant id a request runs under.
const DefaultTenantHeader = "X-Tenant-Id"

// TenantMiddleware scopes each request to the tenant named in header. A
// missing or empty header keeps the host scope.
func TenantMiddleware(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultTenantHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tenant.Parse(r.Header.Get(header))
			if err != nil {
				JSONError(w, r, http.StatusBadRequest, "INVALID_TENANT", "Invalid tenant id", []ErrorDetail{
					{Field: header, Message: "must be a UUID"},
				})
				return
			}
			ctx := tenant.Change(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
