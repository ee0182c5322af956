package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	authapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/app"
	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	authhttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/http"
	authpg "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/infra/postgres"
	authredis "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/infra/redis"
	cartapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
	carthttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/http"
	cartnotify "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/infra/notify"
	cartpg "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/infra/postgres"
	catalogapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	cataloghttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/http"
	catalogpg "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/infra/postgres"
	checkoutapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/app"
	checkouthttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/http"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/infra/adapter"
	orderapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/app"
	orderamqp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/infra/amqp"
	orderpg "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/infra/postgres"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/config"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/logger"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/postgres"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	pool, err := postgres.Open(ctx, postgres.Config{
		Host: cfg.PostgresHost,
		Port: cfg.PostgresPort,
		User: cfg.PostgresUser,
		Pass: cfg.PostgresPass,
		DB:   cfg.PostgresDB,
	})
	if err != nil {
		log.Error("postgres connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("redis connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer redisClient.Close()

	var publisher checkoutapp.Publisher
	amqpPublisher, err := orderamqp.NewPublisher(cfg.AMQPURL, cfg.OrderQueue)
	if err != nil {
		log.Warn("amqp unavailable, orders will not be announced", slog.Any("err", err))
		publisher = orderamqp.NoopPublisher{}
	} else {
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	authSvc := authapp.NewService(
		authpg.NewUserRepo(pool),
		authredis.NewSessionStore(redisClient),
		cfg.SessionTTL,
	)

	catalogSvc := catalogapp.NewService(catalogpg.NewProductRepo(pool))

	itemStore := cartpg.NewItemStore(pool)
	notifier := cartnotify.NewSlogNotifier(log)
	sessions := cartapp.NewSessions(func(user authdomain.User) *cartapp.Store {
		return cartapp.NewStore(cartapp.BindIdentity(user), itemStore, notifier)
	})

	orderSvc := orderapp.NewService(orderpg.NewOrderRepo(pool))
	checkoutSvc := checkoutapp.NewService(
		adapter.NewCatalogReader(catalogSvc),
		orderSvc,
		publisher,
		cfg.WhatsAppPhone,
		10,
	)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/readyz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "NOT_READY", "message": "database unreachable"})
			return
		}
		c.Status(http.StatusOK)
	})

	api := router.Group("/api")
	authhttp.NewHandler(authSvc, sessions.Drop).Register(api)
	cataloghttp.NewHandler(catalogSvc).Register(api)

	authed := api.Group("", authhttp.RequireAuth(authSvc))
	carthttp.NewHandler(sessions, catalogSvc).Register(authed)
	checkouthttp.NewHandler(checkoutSvc, sessions).Register(authed)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
