package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tradecove/catalog-service/config"
	"github.com/tradecove/catalog-service/internal/imagestore"
	"github.com/tradecove/catalog-service/pkg/broker"
	"github.com/tradecove/catalog-service/pkg/cache"
	"github.com/tradecove/catalog-service/pkg/logger"
	"github.com/tradecove/catalog-service/pkg/postgres"
	"github.com/tradecove/catalog-service/pkg/search"

	catH "github.com/tradecove/catalog-service/internal/category/handler"
	catRepoPkg "github.com/tradecove/catalog-service/internal/category/repository"
	catUCPkg "github.com/tradecove/catalog-service/internal/category/usecase"

	invH "github.com/tradecove/catalog-service/internal/inventory/handler"
	invRepoPkg "github.com/tradecove/catalog-service/internal/inventory/repository"
	invUCPkg "github.com/tradecove/catalog-service/internal/inventory/usecase"

	prodH "github.com/tradecove/catalog-service/internal/product/handler"
	prodRepoPkg "github.com/tradecove/catalog-service/internal/product/repository"
	prodUCPkg "github.com/tradecove/catalog-service/internal/product/usecase"

	varH "github.com/tradecove/catalog-service/internal/variant/handler"
	varRepoPkg "github.com/tradecove/catalog-service/internal/variant/repository"
	varUCPkg "github.com/tradecove/catalog-service/internal/variant/usecase"

	purchH "github.com/tradecove/catalog-service/internal/purchase/handler"
	purchListenerPkg "github.com/tradecove/catalog-service/internal/purchase/listener"
	purchUCPkg "github.com/tradecove/catalog-service/internal/purchase/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logCfg := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.New(logCfg)
	defer appLogger.Sync()

	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("db_name", cfg.Postgres.DBName))

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("could not connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("connected to kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
	)

	// The service stays up without Elasticsearch; search falls back to the
	// database.
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("could not connect to elasticsearch, search degraded", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("connected to elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	imageStore, err := imagestore.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.BaseURL, appLogger)
	if err != nil {
		appLogger.Fatal("could not initialize image store", zap.Error(err))
	}

	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	varRepo := varRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)

	catUC := catUCPkg.NewCategoryUseCase(catRepo, prodRepo, varRepo, imageStore, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, catRepo, imageStore, redisClient, esClient, appLogger)
	varUC := varUCPkg.NewVariantUseCase(varRepo, prodRepo, catRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, appLogger)
	purchUC := purchUCPkg.NewPurchaseUseCase(prodRepo, invRepo, varRepo, appLogger)

	orderListener := purchListenerPkg.NewOrderListener(kafkaConsumer, purchUC, appLogger)
	go orderListener.Start(ctx)

	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	varHandler := varH.NewVariantHandler(varUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	purchHandler := purchH.NewPurchaseHandler(purchUC, appLogger)

	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	products := v1.Group("/products")
	variants := v1.Group("/variants")
	categories := v1.Group("/categories")
	categoryTypes := v1.Group("/category-types")
	stocks := v1.Group("/stocks")

	prodHandler.MapRoutes(products)
	varHandler.MapRoutes(products, variants)
	catHandler.MapRoutes(categories, categoryTypes)
	invHandler.MapRoutes(products, stocks)
	purchHandler.MapRoutes(products, variants)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLogger.Info("starting http server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
