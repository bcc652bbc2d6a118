package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/adboost-backend/internal/config"
	"github.com/unclebandit/adboost-backend/internal/db"
	"github.com/unclebandit/adboost-backend/internal/logger"
)

var seedFiles = []string{
	"seed/schema.sql",
	"seed/businesses.sql",
	"seed/announcements.sql",
}

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.AppEnv, cfg.AppName+"-seeder")
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatal("failed to read seed file", zap.String("file", file), zap.Error(err))
		}

		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			log.Fatal("failed to execute seed file", zap.String("file", file), zap.Error(err))
		}
		log.Info("seeded", zap.String("file", file))
	}

	log.Info("database seeding completed successfully")
}
