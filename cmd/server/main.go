package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/events"
	"restaurant_pos/internal/handlers"
	"restaurant_pos/internal/logger"
	"restaurant_pos/internal/migrations"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"
	"restaurant_pos/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := migrations.Run(cfg.DatabaseURL, log); err != nil {
		return err
	}

	db, err := database.Initialize(cfg.DatabaseURL, !cfg.IsProduction(), log)
	if err != nil {
		return err
	}

	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		publisher = rabbit
		log.Info("publishing order events", zap.String("exchange", events.Exchange))
	}
	defer publisher.Close()

	var sender services.TextSender
	if wa := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath); wa.Enabled() {
		wa.CountryCode = cfg.WhatsAppCountryCode
		sender = wa
	}

	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, seconds(cfg.SessionTimeout))
	settingsService := services.NewSettingsService(settingsRepo, redisClient, seconds(cfg.CacheTTL), log)
	menuService := services.NewMenuService(menuRepo)
	verifier := services.NewVerificationService(menuRepo)
	cartService := services.NewCartService(redisClient.CartSlots(seconds(cfg.CartTTL)), menuRepo, settingsService, verifier)
	notifier := services.NewNotificationService(publisher, sender, log)
	orderService := services.NewOrderService(orderRepo, settingsService, verifier, notifier, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = migrations.Seed(seedCtx, userRepo, settingsRepo, menuRepo, authService, migrations.SeedConfig{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminEmail:    cfg.AdminEmail,
	}, log)
	cancelSeed()
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	apiHandler := handlers.NewAPIHandler(handlers.Services{
		Auth:     authService,
		Cart:     cartService,
		Verifier: verifier,
		Orders:   orderService,
		Settings: settingsService,
		Menu:     menuService,
	}, log, handlers.CookieConfig{
		Secure:         cfg.IsProduction(),
		CartTTL:        seconds(cfg.CartTTL),
		SessionTimeout: seconds(cfg.SessionTimeout),
	}, map[string]handlers.HealthCheck{
		"database": sqlDB.PingContext,
		"redis":    redisClient.Ping,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handlers.NewRouter(apiHandler, log, cfg.CORSAllowOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	notifier.Wait()
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
