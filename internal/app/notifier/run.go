// Package notifier runs the background worker that turns order events
// into dashboard notifications.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	storedomain "github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	"github.com/Ssshtea/DBMS-cp/internal/platform/migrations"
	platformmysql "github.com/Ssshtea/DBMS-cp/internal/platform/mysql"
	"github.com/Ssshtea/DBMS-cp/internal/platform/observability"
	"github.com/Ssshtea/DBMS-cp/internal/platform/rabbitmq"
)

// Run consumes order events and records them until ctx is canceled.
func Run(ctx context.Context) error {
	const serviceName = "clothing-store-notifier"

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

	broker, err := rabbitmq.Dial(cfg.Broker, logger)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer broker.Close()

	recorder := &recorder{exec: exec, logger: logger}
	logger.Info("notifier consuming", slog.String("queue", cfg.Broker.Queue))
	if err := broker.Consume(ctx, recorder.handle); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume: %w", err)
	}
	return nil
}

type recorder struct {
	exec   *platformmysql.Executor
	logger *slog.Logger
}

// handle writes the notification and the audit row in one commit so a
// requeued event never half-lands.
func (r *recorder) handle(ctx context.Context, body []byte) error {
	var event storedomain.OrderPlaced
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode order event: %w", err)
	}
	message := fmt.Sprintf("New order #%d: %d x product %d for %s",
		event.OrderID, event.Quantity, event.ProductID, event.Total.String())

	err := r.exec.Transact(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notifications (message) VALUES (?)`, message); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activity_log (action, detail) VALUES (?, ?)`,
			"order_placed", fmt.Sprintf("order %d event %s", event.OrderID, event.EventID)); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Info("order event recorded",
		slog.Int64("orderID", event.OrderID), slog.String("eventID", event.EventID))
	return nil
}
