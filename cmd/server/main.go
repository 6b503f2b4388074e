package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamedesk/config"
	"gamedesk/internal/cache"
	"gamedesk/internal/pricing"
	"gamedesk/internal/repository"
	"gamedesk/internal/service"
	"gamedesk/internal/transport/rest"
	"gamedesk/internal/transport/ws"
	"gamedesk/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", "error", err)
	}
	log.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", "error", err)
	}
	log.Info("connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)

	// Initialize repositories
	deviceRepo := repository.NewDeviceRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	billRepo := repository.NewBillRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	floorCache := cache.NewFloorCache(rdb)

	// Initialize services; every price in the process flows through this
	// one engine
	engine := pricing.NewEngine(pricing.RealClock{}, log)
	authSvc := service.NewAuthService(cfg.Auth.StaffUsername, cfg.Auth.StaffPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessionSvc := service.NewSessionService(sessionRepo, sessionCache, floorCache, engine, log)
	billingSvc := service.NewBillingService(billRepo, sessionRepo, engine, log)
	billingSvc.SetBroadcaster(wsHub)

	wsHandler := ws.NewHandler(wsHub, authSvc, log)

	// Live floor updates for the dashboards
	tickerCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	floorTicker := service.NewFloorTicker(sessionSvc, wsHub, cfg.Floor.BroadcastInterval, log)
	go floorTicker.Run(tickerCtx)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		BillingService: billingSvc,
		DeviceRepo:     deviceRepo,
		WSHub:          wsHub,
		WSHandler:      wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen and serve", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")
	stopTicker()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
