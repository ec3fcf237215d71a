package main

import (
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/download"
	"app/internal/events"
	"app/internal/handler"
	"app/internal/infra/db"
	infraGateway "app/internal/infra/gateway"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const gatewayTimeout = 15 * time.Second

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	gormDB, err := db.Connect()
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Order{},
		&model.Book{},
		&model.WebhookEvent{},
	); err != nil {
		logger.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	webhookRepo := infraRepo.NewWebhookEventGormRepository(gormDB)

	gw := infraGateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, gatewayTimeout)
	grants := download.NewRedisStore(cfg.RedisAddr)
	issuer := download.NewIssuer(cfg.DownloadBaseURL, time.Now)

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		pub = kp
	}

	idGen := &uuidGenerator{}
	clock := &realClock{}

	orderUC := usecase.NewOrderUsecase(orderRepo, pub, idGen, clock)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, webhookRepo, gw, issuer, grants, pub, clock)
	downloadUC := usecase.NewDownloadUsecase(grants, bookRepo)

	e := server.New(server.Handlers{
		Orders:   handler.NewOrderHandler(orderUC),
		Payments: handler.NewPaymentHandler(paymentUC),
		Webhooks: handler.NewWebhookHandler(paymentUC),
		Download: handler.NewDownloadHandler(downloadUC),
	})

	addr := ":" + cfg.Port
	logger.Info("starting http", "addr", addr, "env", cfg.GoEnv)
	if err := e.Start(addr); err != nil {
		logger.Error("http server stopped", "err", err)
		os.Exit(1)
	}
}
