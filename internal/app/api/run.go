// Package api boots the HTTP process: observability, database pool,
// schema, broker, services, and the gin router.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adminhttp "github.com/Ssshtea/DBMS-cp/internal/domains/admin/adapters/http"
	adminmysql "github.com/Ssshtea/DBMS-cp/internal/domains/admin/adapters/persistence/mysql"
	adminapp "github.com/Ssshtea/DBMS-cp/internal/domains/admin/application"
	storeevents "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/events"
	storehttp "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/http"
	storeobs "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/observability"
	storemysql "github.com/Ssshtea/DBMS-cp/internal/domains/store/adapters/persistence/mysql"
	storeapp "github.com/Ssshtea/DBMS-cp/internal/domains/store/application"
	storeports "github.com/Ssshtea/DBMS-cp/internal/domains/store/ports"
	"github.com/Ssshtea/DBMS-cp/internal/platform/migrations"
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
	"github.com/Ssshtea/DBMS-cp/internal/platform/observability"
	"github.com/Ssshtea/DBMS-cp/internal/platform/rabbitmq"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Run boots the store API and blocks until ctx is canceled or the
// server fails.
func Run(ctx context.Context) error {
	const serviceName = "clothing-store-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	telemetry := cfg.Telemetry
	telemetry.ServiceName = serviceName
	instruments, shutdown, err := observability.Init(ctx, telemetry)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	pool, err := platformmysql.Open(ctx, cfg.DB, logger)
	if err != nil {
		return fmt.Errorf("open database pool: %w", err)
	}
	defer pool.Close()

	if err := migrations.Run(ctx, pool.DB()); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	exec := platformmysql.NewExecutor(pool, platformmysql.WithLogger(logger))

	// The broker is optional: without it orders still commit, they just
	// go unannounced.
	var publisher storeports.EventPublisher
	broker, err := rabbitmq.Dial(cfg.Broker, logger)
	if err != nil {
		logger.Warn("broker unavailable, order events disabled", slog.String("error", err.Error()))
	} else {
		defer broker.Close()
		publisher = storeevents.NewPublisher(broker)
	}

	storeRepo := storemysql.NewRepository(exec, storemysql.WithStrictStock(cfg.StrictStock))
	storeOpts := []storeapp.Option{storeapp.WithLogger(logger)}
	if publisher != nil {
		storeOpts = append(storeOpts, storeapp.WithEvents(publisher))
	}
	storeService := storeobs.New(
		storeapp.NewService(storeRepo, storeOpts...),
		storeobs.WithLogger(logger),
		storeobs.WithTracer(instruments.Tracer("internal.store.application")),
		storeobs.WithMeter(instruments.Meter("internal.store.application")),
	)

	adminService := adminapp.NewService(adminmysql.NewRepository(exec), adminapp.WithLogger(logger))

	responder := sharederrors.NewResponder()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	storehttp.NewHandler(storeService, responder).Register(router.Group("/api"))
	adminhttp.NewHandler(adminService, responder,
		adminhttp.WithLowStockThreshold(cfg.LowStockThreshold)).Register(router.Group("/api/admin"))

	server := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("store API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		logger.Info("store API stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
