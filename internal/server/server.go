// Package server boots the catalog service: configuration, databases,
// cache, storage, the HTTP stack, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/tintandorange-gh/tno-catalog-distributor/app/controllers"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/models"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/repositories"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/routes"
	"github.com/tintandorange-gh/tno-catalog-distributor/app/services"
	"github.com/tintandorange-gh/tno-catalog-distributor/config"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/cache"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/database"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/logger"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/router"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/storage"
	"github.com/tintandorange-gh/tno-catalog-distributor/pkg/ws"
)

// Start runs the server until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx := context.Background()

	mongo, err := database.ConnectMongo(ctx)
	if err != nil {
		return err
	}
	defer mongo.Disconnect(context.Background())

	if err := mongo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Tee request logs into a capped collection when configured.
	var logSink *logger.MongoHandler
	if col := config.MongoLogCollection(); col != "" {
		logSink = logger.NewMongoHandler(mongo.DB.Collection(col))
		logger.Attach(logSink)
		defer logSink.Close()
	}

	adminDB, err := database.ConnectAdmin()
	if err != nil {
		return err
	}
	if err := adminDB.AutoMigrate(&models.AdminUser{}); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err.Error())
	}
	storage.Connect()

	r := router.New()
	routes.RegisterAPI(r, buildControllers(mongo, adminDB))

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog server listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildControllers wires repositories, services, and controllers around the
// two database handles.
func buildControllers(mongo *database.Mongo, adminDB *gorm.DB) routes.Controllers {
	brandRepo := repositories.NewBrandRepository(mongo)
	subBrandRepo := repositories.NewSubBrandRepository(mongo)
	modelRepo := repositories.NewModelRepository(mongo)
	adminRepo := repositories.NewAdminUserRepository(adminDB)

	brandSvc := services.NewBrandService(brandRepo, subBrandRepo, modelRepo, mongo)
	subBrandSvc := services.NewSubBrandService(subBrandRepo, brandRepo, modelRepo, mongo)
	modelSvc := services.NewModelService(modelRepo, subBrandRepo, brandRepo)
	statsSvc := services.NewStatsService(brandRepo, subBrandRepo, modelRepo)
	authSvc := services.NewAuthService(adminRepo)

	hub := ws.NewHub()
	go hub.Run()
	feed := controllers.NewStatsFeed(statsSvc, hub)

	return routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Catalog:  controllers.NewCatalogController(brandSvc, subBrandSvc, modelSvc),
		Brand:    controllers.NewBrandController(brandSvc, feed),
		SubBrand: controllers.NewSubBrandController(subBrandSvc, feed),
		Model:    controllers.NewModelController(modelSvc, feed),
		Stats:    controllers.NewStatsController(statsSvc, hub),
	}
}
