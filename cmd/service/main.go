package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"distributor-service/config"
	"distributor-service/internal/catalog"
	"distributor-service/internal/database"
	"distributor-service/internal/hashing"
	"distributor-service/internal/logger"
	"distributor-service/internal/producer"
	"distributor-service/internal/repository"
	"distributor-service/internal/service"
	"distributor-service/internal/token"
	transport "distributor-service/internal/transport/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	cat := catalog.Default()

	// Event bus is optional (nil disables publishing)
	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		kp := producer.NewOrderEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		events = kp
		log.Info("kafka producer enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	tokens := token.NewHSProvider(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	hasher := hashing.NewBcrypt(0)

	auth := service.NewAuthService(repos.Users, hasher, tokens, cfg.AccessTTL, log)
	engine := service.NewWorkflowService(repos, cat, events, cfg.CollectOnConfirm, log)
	dispatcher := service.NewDispatcher(engine)

	r := transport.Router(auth, dispatcher, tokens, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting distributor HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down distributor service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("Distributor service stopped gracefully")
}
