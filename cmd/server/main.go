// @title         shiptrack API
// @version       1.0
// @description   Shipment tracking backend: user accounts with bearer-token auth and owner-scoped orders.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Bearer <JWT>".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	// internal imports
	"github.com/shiptrack/api/api/http"
	"github.com/shiptrack/api/api/http/handlers"
	_ "github.com/shiptrack/api/docs"
	"github.com/shiptrack/api/pkg/auth"
	"github.com/shiptrack/api/pkg/config"
	"github.com/shiptrack/api/pkg/health"
	healthpg "github.com/shiptrack/api/pkg/health/checkers"
	"github.com/shiptrack/api/pkg/logging"
	"github.com/shiptrack/api/pkg/order"
	"github.com/shiptrack/api/pkg/repository/memory"
	pgrepo "github.com/shiptrack/api/pkg/repository/postgres"
	"github.com/shiptrack/api/pkg/security/jwt"
	"github.com/shiptrack/api/pkg/security/password"
	"github.com/shiptrack/api/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

type userStore interface {
	auth.UserRepository
	order.OwnerLookup
}

type storage struct {
	users    userStore
	orders   order.Repository
	checkers []health.Checker
	close    func()
}

func openStorage(ctx context.Context, cfg config.Config, logger logging.Logger) (storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn(ctx, "using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return storage{users: store.Users(), orders: store.Orders(), close: func() {}}, nil
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		return storage{}, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return storage{}, err
	}
	return storage{
		users:    pgrepo.NewUserRepository(pool),
		orders:   pgrepo.NewOrderRepository(pool),
		checkers: []health.Checker{healthpg.NewPostgresChecker(pool, 2*time.Second)},
		close:    pool.Close,
	}, nil
}

func main() {
	// Load configuration from env/.env
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.close()

	hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("password hasher: %v", err)
	}
	tokens := jwt.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authUC := auth.NewAuthService(store.users, hasher, tokens, logger)
	authHandler := handlers.NewAuthHandler(authUC, logger)

	orderUC := order.NewService(store.orders, store.users, logger)
	orderHandler := handlers.NewOrderHandler(orderUC, logger)

	readiness := health.NewService(logger, store.checkers...)
	healthHandler := handlers.NewHealthHandler(readiness)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(tokens, logger)

	app := http.NewApp(logger, cfg.ClientOrigin)
	http.Register(app, authHandler, healthHandler, orderHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown", "error", err)
		}
	}()

	logger.Info(ctx, "HTTP server listening", "port", cfg.Port, "storage", cfg.StorageDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
