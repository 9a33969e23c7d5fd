// Package server owns process lifecycle: it constructs every handle once at
// startup (store, cache, repositories, services, controllers), injects them
// into the HTTP kernel, and tears them down on shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/dukaan/app/controllers"
	"github.com/shashiranjanraj/dukaan/app/repositories"
	"github.com/shashiranjanraj/dukaan/app/services"
	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/internal/kernel"
	"github.com/shashiranjanraj/dukaan/pkg/cache"
	"github.com/shashiranjanraj/dukaan/pkg/database"
	"github.com/shashiranjanraj/dukaan/pkg/logger"
)

// Start boots the server and blocks until SIGINT/SIGTERM or a fatal error.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return err
	}
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		if err := db.Close(shutCtx); err != nil {
			logger.Warn("store disconnect failed", "error", err)
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	var sink *logger.MongoHandler
	if config.MongoLogEnabled() {
		sink = logger.NewMongoHandler(db.Collection(database.LogsCollection))
		logger.AttachSink(sink)
		defer sink.Close()
	}

	// Redis is optional: without it the profile cache degrades to a no-op.
	c, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, profile cache disabled", "error", err)
		c = nil
	} else {
		defer c.Close()
	}

	handler := kernel.Build(BuildDeps(db, c))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dukaan listening", "addr", srv.Addr, "env", config.AppEnv())
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

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	return srv.Shutdown(shutCtx)
}

// BuildDeps wires repositories → services → controllers over the injected
// store and cache handles.
func BuildDeps(db *database.Mongo, c *cache.Cache) kernel.Deps {
	userRepo := repositories.NewUserRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(userRepo, config.BcryptCost())
	checkoutSvc := services.NewCheckoutService(cartRepo, paymentRepo, orderRepo)

	cacheTTL := time.Duration(config.UserCacheTTLSeconds()) * time.Second

	return kernel.Deps{
		Auth:      controllers.NewAuthController(authSvc, c, cacheTTL),
		Checkout:  controllers.NewCheckoutController(checkoutSvc),
		Store:     db,
		StaticDir: config.StaticDir(),
	}
}
