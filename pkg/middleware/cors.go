package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tintandorange-gh/tno-catalog-distributor/config"
)

// CORSOptions configures the CORS middleware.
type CORSOptions struct {
	AllowedOrigins   []string // configured admin UI origins, or ["*"]
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool // required for the admin session cookie
	MaxAge           int  // seconds for preflight cache
}

// DefaultCORSOptions builds options for the catalog API: origins come from
// CORS_ALLOWED_ORIGINS, and credentials are always on because the admin
// endpoints authenticate through a cookie rather than a header.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins:   config.CORSAllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// CORS returns a middleware that adds Cross-Origin Resource Sharing headers.
//
// Browsers refuse to send cookies to a response that pairs
// Access-Control-Allow-Credentials with a literal "*", so when credentials
// are on the middleware always echoes the concrete request origin and adds
// Vary: Origin for caches.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allowed := resolveOrigin(opts, origin); allowed != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if opts.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if opts.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
				}
			}

			// Preflight ends here.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveOrigin returns the value for Access-Control-Allow-Origin, or ""
// when the request origin is not allowed (or the request is same-origin).
func resolveOrigin(opts CORSOptions, origin string) string {
	if origin == "" {
		return ""
	}
	for _, o := range opts.AllowedOrigins {
		if o == origin {
			return origin
		}
		if o == "*" {
			if opts.AllowCredentials {
				return origin
			}
			return "*"
		}
	}
	return ""
}
