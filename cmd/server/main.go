package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/unclebandit/adboost-backend/internal/config"
	"github.com/unclebandit/adboost-backend/internal/controller"
	"github.com/unclebandit/adboost-backend/internal/db"
	"github.com/unclebandit/adboost-backend/internal/handler"
	"github.com/unclebandit/adboost-backend/internal/logger"
	"github.com/unclebandit/adboost-backend/internal/queue"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/service"
	"github.com/unclebandit/adboost-backend/internal/simulator"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.AppEnv, cfg.AppName)
	defer log.Sync()
	if !envLoaded {
		log.Info("no .env file found, relying on OS environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	svc := newServices(conn, cfg.Currency, cfg.PaymentCallbackURL, cfg.Seed())

	// Without a broker the server publishes in-process.
	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Fatal("failed to connect to queue", zap.Error(err))
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Info("publishing through rabbitmq", zap.String("queue", cfg.PublishQueue))
	} else {
		mem := queue.NewInMemoryQueue()
		if err := queue.StartAdPublishSubscriber(mem, cfg.PublishQueue, svc.publish); err != nil {
			log.Fatal("failed to start publish subscriber", zap.Error(err))
		}
		q = mem
		log.Info("publishing in-process", zap.String("topic", cfg.PublishQueue))
	}
	svc.payments.Queue = q
	svc.payments.PublishTopic = cfg.PublishQueue

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           svc.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

type services struct {
	ads           *service.AdService
	publish       *service.PublishService
	payments      *service.PaymentService
	engagement    *service.EngagementService
	contact       *service.ContactService
	businesses    *service.BusinessService
	announcements *service.AnnouncementService
	admin         *service.AdminService
}

func newServices(conn *sqlx.DB, currency, callbackURL string, seed int64) *services {
	adRepo := &repository.AdRepository{DB: conn}
	platformRepo := &repository.AdPlatformRepository{DB: conn}
	businessRepo := &repository.BusinessRepository{DB: conn}
	paymentRepo := &repository.PaymentRepository{DB: conn}

	return &services{
		ads: &service.AdService{
			AdRepo:       adRepo,
			PlatformRepo: platformRepo,
			BusinessRepo: businessRepo,
			PaymentRepo:  paymentRepo,
			Currency:     currency,
		},
		publish: &service.PublishService{
			AdRepo:       adRepo,
			PlatformRepo: platformRepo,
			Simulator:    simulator.New(simulator.NewRandJitter(seed)),
		},
		payments: &service.PaymentService{
			PaymentRepo: paymentRepo,
			Gateway:     &service.MockGateway{CallbackURL: callbackURL},
		},
		engagement: &service.EngagementService{AdRepo: adRepo},
		contact: &service.ContactService{
			AdRepo:       adRepo,
			BusinessRepo: businessRepo,
			MessageRepo:  &repository.ContactMessageRepository{DB: conn},
		},
		businesses:    &service.BusinessService{BusinessRepo: businessRepo},
		announcements: &service.AnnouncementService{AnnouncementRepo: &repository.AnnouncementRepository{DB: conn}},
		admin:         &service.AdminService{AdminRepo: &repository.AdminRepository{DB: conn}},
	}
}

func (a *services) routes() http.Handler {
	adController := &controller.AdController{
		AdService:         a.ads,
		PublishService:    a.publish,
		EngagementService: a.engagement,
		ContactService:    a.contact,
	}
	paymentController := &controller.PaymentController{PaymentService: a.payments}
	businessController := &controller.BusinessController{BusinessService: a.businesses}
	announcementController := &controller.AnnouncementController{AnnouncementService: a.announcements}

	adHandler := &handler.AdHandler{Service: a.ads}
	dashboardHandler := &handler.DashboardHandler{
		Businesses:    a.businesses,
		Announcements: a.announcements,
		Admin:         a.admin,
	}

	r := chi.NewRouter()

	r.Post("/quotes", adController.Quote)

	// Business routes
	r.Post("/businesses", businessController.CreateBusiness)
	r.Get("/businesses", dashboardHandler.ListBusinesses)

	// Ad routes
	r.Post("/ads", adController.CreateAd)
	r.Get("/ads", adHandler.ListLive)
	r.Get("/ads/{id}", adHandler.GetAd)
	r.Get("/ads/{id}/platforms", adHandler.GetPlatforms)
	r.Post("/ads/{id}/publish", adController.Publish)
	r.Post("/ads/{id}/engagement", adController.TrackEngagement)
	r.Post("/ads/{id}/contact", adController.Contact)
	r.Get("/users/{userID}/ads", adHandler.ListUserAds)

	// Payment routes
	r.Post("/payments/{id}/initialize", paymentController.Initialize)
	r.Get("/payments/verify", paymentController.Verify)

	r.Get("/announcements", dashboardHandler.ListAnnouncements)
	r.Post("/announcements", announcementController.CreateAnnouncement)
	r.Get("/admin/stats", dashboardHandler.AdminStats)

	return r
}
