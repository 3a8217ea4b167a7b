package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajeshboldtribe/boldserve/config"
	_ "github.com/rajeshboldtribe/boldserve/docs"
	"github.com/rajeshboldtribe/boldserve/internal/cache"
	"github.com/rajeshboldtribe/boldserve/internal/checksum"
	"github.com/rajeshboldtribe/boldserve/internal/cleanup"
	"github.com/rajeshboldtribe/boldserve/internal/hashing"
	"github.com/rajeshboldtribe/boldserve/internal/producer"
	"github.com/rajeshboldtribe/boldserve/internal/repository"
	"github.com/rajeshboldtribe/boldserve/internal/router"
	"github.com/rajeshboldtribe/boldserve/internal/service"
	"github.com/rajeshboldtribe/boldserve/internal/token"
	"github.com/rajeshboldtribe/boldserve/internal/upload"
	"github.com/rajeshboldtribe/boldserve/pkg/database"
	"github.com/rajeshboldtribe/boldserve/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title BoldServe API
// @Version 1.0
// @Description API магазина BoldServe: каталог, заказы, платежи, пользователи
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-KEY
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	var logOpts []logger.Option
	if f := os.Getenv("LOG_FILE"); f != "" {
		logOpts = append(logOpts, logger.WithFile(f), logger.WithRotation(100, 10, 30))
	}
	if err := logger.Init(isDev, logOpts...); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var blacklist service.TokenBlacklist
	if cfg.Redis.Enabled {
		tokenStore, err := cache.NewTokenStore(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer tokenStore.Close()
		blacklist = tokenStore
		log.Info("Redis cache enabled")
	} else {
		log.Info("Redis cache disabled, logout will not revoke tokens")
	}

	// интерфейс остаётся nil, если Kafka не настроена
	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		emailProducer := producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer emailProducer.Close()
		events = emailProducer
		log.Info("Kafka notifications enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		log.Info("Kafka notifications disabled")
	}

	images, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, log)
	if err != nil {
		log.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	orderNumber, err := service.NewOrderNumberGenerator(1)
	if err != nil {
		log.Fatal("failed to create order number generator", zap.Error(err))
	}

	taxonomySvc := service.NewTaxonomyService(repos.Categories, log)
	svc := router.Services{
		Taxonomy: taxonomySvc,
		Catalog:  service.NewCatalogService(repos.Services, repos.Categories, images, log),
		Orders:   service.NewOrderService(repos.Orders, repos.Categories, events, orderNumber, log),
		Payments: service.NewPaymentService(
			repos.Payments,
			checksum.NewSigner(cfg.Payment.SecretKey),
			service.GatewayConfig{
				MerchantID: cfg.Payment.MerchantID,
				AccessKey:  cfg.Payment.AccessKey,
				Currency:   cfg.Payment.Currency,
				BackendURL: cfg.Payment.BackendURL,
			},
			events,
			log,
		),
		Users: service.NewUserService(
			repos.Users,
			hashing.NewBcrypt(0),
			token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
			blacklist,
			images,
			cfg.JWT.AccessExp,
			log,
		),
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := taxonomySvc.Bootstrap(bootCtx); err != nil {
		bootCancel()
		log.Fatal("failed to bootstrap taxonomy", zap.Error(err))
	}
	bootCancel()

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	var scheduler *cleanup.Scheduler
	if cfg.Sweeper.Enabled {
		cleanupSvc := cleanup.NewCleanupService(repos.Payments, events, cfg.Payment.TTL, log)
		scheduler = cleanup.NewScheduler(cleanupSvc, cfg.Sweeper.Schedule, log)
		if err := scheduler.Start(cleanupCtx); err != nil {
			log.Fatal("failed to start cleanup scheduler", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router.Router(cfg, svc, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	// Останавливаем планировщик
	if scheduler != nil {
		scheduler.Stop()
	}
	cleanupCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
