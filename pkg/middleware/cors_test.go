package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/middleware"
)

func corsHandler(t *testing.T, origins ...string) (http.Handler, *bool) {
	t.Helper()

	reached := false
	opts := middleware.CORSOptions{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	h := middleware.CORS(opts)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))
	return h, &reached
}

func TestCORSEchoesConfiguredOrigin(t *testing.T) {
	h, _ := corsHandler(t, "https://admin.tintandorange.com")

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.Header.Set("Origin", "https://admin.tintandorange.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://admin.tintandorange.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	h, reached := corsHandler(t, "https://admin.tintandorange.com")

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	// The request still runs; the browser just gets no CORS grant.
	assert.True(t, *reached)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardWithCredentialsEchoesOrigin(t *testing.T) {
	// A literal "*" alongside Allow-Credentials is refused by browsers, so
	// the wildcard config must echo the concrete origin instead.
	h, _ := corsHandler(t, "*")

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	h, reached := corsHandler(t, "https://admin.tintandorange.com")

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/brands", nil)
	req.Header.Set("Origin", "https://admin.tintandorange.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, *reached)
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}
