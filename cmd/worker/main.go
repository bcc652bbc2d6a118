package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/adboost-backend/internal/config"
	"github.com/unclebandit/adboost-backend/internal/db"
	"github.com/unclebandit/adboost-backend/internal/logger"
	"github.com/unclebandit/adboost-backend/internal/queue"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/service"
	"github.com/unclebandit/adboost-backend/internal/simulator"
)

func main() {
	cfg, _, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.AppEnv, cfg.AppName+"-worker")
	defer log.Sync()

	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	publisher := newPublisher(
		&repository.AdRepository{DB: conn},
		&repository.AdPlatformRepository{DB: conn},
		cfg.Seed(),
	)

	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer q.Close()

	if err := queue.StartAdPublishSubscriber(q, cfg.PublishQueue, publisher); err != nil {
		log.Fatal("failed to register consumer", zap.Error(err))
	}

	log.Info("worker running, waiting for messages", zap.String("queue", cfg.PublishQueue))
	<-ctx.Done()
	log.Info("worker stopped")
}

func newPublisher(ads repository.AdRepositoryInterface, platforms repository.AdPlatformRepositoryInterface, seed int64) *service.PublishService {
	return &service.PublishService{
		AdRepo:       ads,
		PlatformRepo: platforms,
		Simulator:    simulator.New(simulator.NewRandJitter(seed)),
	}
}
