package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5
	defaultPingTimeout  = 5 * time.Second
)

type openConfig struct {
	maxOpenConns int
	maxIdleConns int
	pingTimeout  time.Duration
}

type OpenOption func(*openConfig)

// WithMaxConns caps the pool; the lambda entrypoints run much smaller pools
// than the long-lived bot process.
func WithMaxConns(open, idle int) OpenOption {
	return func(c *openConfig) {
		c.maxOpenConns = open
		c.maxIdleConns = idle
	}
}

func WithPingTimeout(d time.Duration) OpenOption {
	return func(c *openConfig) { c.pingTimeout = d }
}

// Open opens the connection (pgx stdlib) and verifies health.
func Open(ctx context.Context, url string, opts ...OpenOption) (*sql.DB, error) {
	cfg := openConfig{
		maxOpenConns: defaultMaxOpenConns,
		maxIdleConns: defaultMaxIdleConns,
		pingTimeout:  defaultPingTimeout,
	}
	for _, o := range opts {
		o(&cfg)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.maxOpenConns)
	db.SetMaxIdleConns(cfg.maxIdleConns)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(ctx, cfg.pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Migrate applies all embedded migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
