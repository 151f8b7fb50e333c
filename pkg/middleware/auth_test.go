package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/auth"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/middleware"
)

func protectedHandler(t *testing.T) http.Handler {
	return middleware.AdminAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromCtx(r.Context())
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthAcceptsValidCookie(t *testing.T) {
	token, err := auth.GenerateToken(7, "ops@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuthRejectsMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(7, "ops@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token + "x"})
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
