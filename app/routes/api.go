// Package routes wires every HTTP endpoint onto the router.
package routes

import (
	"net/http"
	"time"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/controllers"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/metrics"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/middleware"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/reqid"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/response"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/router"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Brand    *controllers.BrandController
	SubBrand *controllers.SubBrandController
	Model    *controllers.ModelController
	Stats    *controllers.StatsController
}

// RegisterAPI mounts the middleware chain, the public browse API, and the
// cookie-gated admin API.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Use(reqid.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Public browse API.
	api.Get("/brands", "brands.index", c.Catalog.Brands)
	api.Get("/brands/{slug}", "brands.show", c.Catalog.BrandBySlug)
	api.Get("/sub-brands/{slug}", "subbrands.show", c.Catalog.SubBrandBySlug)
	api.Get("/models/{slug}", "models.show", c.Catalog.ModelBySlug)

	// Admin API. Login and logout sit outside the cookie gate.
	admin := api.Group("/admin")
	admin.Post("/login", "admin.login", c.Auth.Login)
	admin.Post("/logout", "admin.logout", c.Auth.Logout)

	protected := admin.Group("", middleware.AdminAuth)

	protected.Get("/brands", "admin.brands.index", c.Brand.List)
	protected.Post("/brands", "admin.brands.store", c.Brand.Create)
	protected.Put("/brands/{id}", "admin.brands.update", c.Brand.Update)
	protected.Delete("/brands/{id}", "admin.brands.destroy", c.Brand.Delete)

	protected.Get("/sub-brands", "admin.subbrands.index", c.SubBrand.List)
	protected.Post("/sub-brands", "admin.subbrands.store", c.SubBrand.Create)
	protected.Put("/sub-brands/{id}", "admin.subbrands.update", c.SubBrand.Update)
	protected.Delete("/sub-brands/{id}", "admin.subbrands.destroy", c.SubBrand.Delete)

	protected.Get("/models", "admin.models.index", c.Model.List)
	protected.Post("/models", "admin.models.store", c.Model.Create)
	protected.Put("/models/{id}", "admin.models.update", c.Model.Update)
	protected.Delete("/models/{id}", "admin.models.destroy", c.Model.Delete)

	protected.Get("/stats", "admin.stats", c.Stats.Get)
	protected.Get("/stats/feed", "admin.stats.feed", c.Stats.Feed)
}
