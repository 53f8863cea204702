// Package mysql owns the pooled, retrying access to the store database.
// Everything that talks SQL goes through the Executor defined here.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

// Config carries the flat connection settings for the store database.
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	PoolSize       int
	ConnectTimeout time.Duration
	Charset        string
	Collation      string
}

// WithDefaults fills the zero-valued fields with the settings the store
// has always run with.
func (c Config) WithDefaults() Config {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 3306
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.Charset == "" {
		c.Charset = "utf8mb4"
	}
	if c.Collation == "" {
		c.Collation = "utf8mb4_unicode_ci"
	}
	return c
}

// DSN renders the driver connection string. Explicit transactions are
// used everywhere, so the session never relies on autocommit for writes.
func (c Config) DSN() string {
	dc := mysqldrv.NewConfig()
	dc.User = c.User
	dc.Passwd = c.Password
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	dc.DBName = c.Database
	dc.Timeout = c.ConnectTimeout
	dc.ParseTime = true
	dc.Collation = c.Collation
	dc.Params = map[string]string{"charset": c.Charset}
	return dc.FormatDSN()
}

// Pool is the bounded set of live connections to the store database.
// Leases are exclusive between acquisition and release; database/sql
// enforces that, the Pool adds sizing, liveness, and lifecycle.
type Pool struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open configures the pool and verifies connectivity with one ping.
// A failed ping is fatal to the caller; a process that cannot reach the
// store at startup cannot serve anything.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Pool, error) {
	cfg = cfg.WithDefaults()
	db, err := sqlx.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, sharederrors.Wrap(sharederrors.KindConnectFailed, "open store database", err)
	}
	db.SetMaxOpenConns(cfg.PoolSize)
	db.SetMaxIdleConns(cfg.PoolSize)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, sharederrors.Wrap(sharederrors.KindConnectFailed, "ping store database", err)
	}
	if logger != nil {
		logger.Info("database pool initialized",
			slog.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			slog.String("database", cfg.Database),
			slog.Int("poolSize", cfg.PoolSize))
	}
	return &Pool{db: db, logger: logger}, nil
}

// NewPoolFromDB wraps an already-open handle. Used by tests and by the
// integration harness that owns the container lifecycle.
func NewPoolFromDB(db *sqlx.DB, logger *slog.Logger) *Pool {
	return &Pool{db: db, logger: logger}
}

// DB exposes the underlying handle for code that manages its own
// statements (migrations, integration tests).
func (p *Pool) DB() *sqlx.DB { return p.db }

// Stats reports pool occupancy; tests use it to prove leases are
// returned on every exit path.
func (p *Pool) Stats() sql.DBStats { return p.db.Stats() }

// Close shuts the pool down and invalidates all idle connections.
func (p *Pool) Close() error { return p.db.Close() }
