package middleware

import (
	"context"
	"net/http"

	"github.com/open2agenda/booking-service/internal/api/handlers"
	"github.com/open2agenda/booking-service/internal/domain"
)

// Authentication itself lives in front of this service; it forwards the
// verified identity as plain headers. Admin routes only read them.
const (
	HeaderAuthRole = "X-Auth-Role"
	HeaderTenantID = "X-Tenant-ID"
)

type callerKey struct{}

// Caller is the authenticated admin identity forwarded by the auth layer.
type Caller struct {
	Role     domain.Role
	TenantID string
}

// Auth requires a valid forwarded role. Owners must also carry a tenant id.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.Role(r.Header.Get(HeaderAuthRole))
		tenantID := r.Header.Get(HeaderTenantID)

		switch role {
		case domain.RoleMaster:
		case domain.RoleOwner:
			if tenantID == "" {
				handlers.RespondError(w, http.StatusUnauthorized, "missing tenant identity")
				return
			}
		default:
			handlers.RespondError(w, http.StatusUnauthorized, "missing or unknown role")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey{}, Caller{Role: role, TenantID: tenantID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the identity stored by Auth.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}
