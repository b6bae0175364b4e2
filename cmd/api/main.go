package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderhub/internal/config"
	"orderhub/internal/handler"
	"orderhub/internal/infra/db"
	"orderhub/internal/infra/events"
	"orderhub/internal/infra/logger"
	"orderhub/internal/infra/metrics"
	infraRepo "orderhub/internal/infra/repository"
	"orderhub/internal/middleware"
	"orderhub/internal/server"
	"orderhub/internal/usecase"
	"orderhub/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type eventPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

func main() {
	// .env は無くてもよい（本番は環境変数）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	//DB接続
	gormDB, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	//メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	//注文イベント（ブローカー未設定なら送らない）
	var publisher eventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, cfg.KafkaPublishTimeout, log)
	}
	defer func() { _ = publisher.Close() }()

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	orderDeps := usecase.OrderUsecaseDeps{
		Tx:         txm,
		Orders:     orderRepo,
		OrderItems: orderItemRepo,
		Products:   productRepo,
		Users:      userRepo,
		Carts:      cartRepo,
		IDs:        idGen,
		Clock:      clock,
		Events:     publisher,
		Metrics:    recorder,
		Logger:     log,

		EventTimeout: cfg.KafkaPublishTimeout,
	}
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, userRepo, idGen, log)
	orderUC := usecase.NewOrderUsecase(orderDeps)
	statusUC := usecase.NewOrderStatusUsecase(orderDeps, auditRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, orderRepo, userRepo, productRepo, validator.NewReviewValidator(), idGen, clock, log)

	//Handler生成
	handlers := server.Handlers{
		Health: handler.NewHealthHandler(reg),
		Cart:   handler.NewCartHandler(cartUC),
		Order:  handler.NewOrderHandler(orderUC, statusUC),
		Review: handler.NewReviewHandler(reviewUC),
	}

	e := server.New(log, handlers,
		middleware.AuthJWT(cfg.JWTSecret),
		middleware.AccountGuard(userRepo, log),
	)

	//Server起動（SIGINT/SIGTERMで停止）
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}
}
