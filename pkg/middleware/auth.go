package middleware

import (
	"context"
	"net/http"

	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/auth"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
)

type claimsKey struct{}

// AdminAuth gates the admin API behind the admin-auth cookie. A missing,
// expired, or tampered token answers 401 without touching the handler.
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			response.Unauthorized(w, "authentication required")
			return
		}

		claims, err := auth.ValidateToken(cookie.Value)
		if err != nil {
			response.Unauthorized(w, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the admin claims stored by AdminAuth, or nil when
// the request did not pass through it.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}
