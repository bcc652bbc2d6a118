package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/unclebandit/adboost-backend/internal/config"
)

// Connect opens and pings the Postgres database.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	zap.L().Info("connecting to database",
		zap.String("host", cfg.Host),
		zap.String("name", cfg.Name),
		zap.String("user", cfg.User),
	)

	conn, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	zap.L().Info("connected to database")
	return conn, nil
}
