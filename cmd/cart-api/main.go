package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/cache"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/catalog"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/checkout"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/config"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/httpapi"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/orders"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/publisher"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/repository"
	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/service"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Cart store (MongoDB)
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName,
		uint64(cfg.MongoMaxPoolSize), uint64(cfg.MongoMinPoolSize))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	cartRepo := repository.NewMongoRepository(mongoDB)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	// Cart cache (Redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	cartCache := cache.NewRedisCache(redisClient)

	// Product lookup (catalog service)
	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	cartService := service.NewCartService(cartRepo, cartCache, catalogClient)

	// Order snapshot store (Postgres)
	cred := &orders.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsDirPath,
	}
	orderRepo, err := orders.NewRepository(cred)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(cred); err != nil {
		log.Fatalf("Failed to run order migrations: %v", err)
	}
	log.Printf("Connected to Postgres at %s:%d", cfg.PostgresHost, cfg.PostgresPort)

	orchestrator := checkout.NewOrchestrator(cartService, orderRepo, cfg.CheckoutTimeout)

	// Outbox poller publishes order events to Kafka
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	go publisher.NewOutboxPoller(orderRepo, cfg.KafkaBrokers...).Run(pollerCtx)

	router := httpapi.NewRouter(
		httpapi.NewCartHandler(cartService),
		httpapi.NewCheckoutHandler(orchestrator, orderRepo),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(router, "cart-api"),
	}

	go func() {
		log.Printf("Cart API listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down cart API...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("cart API stopped")
}
