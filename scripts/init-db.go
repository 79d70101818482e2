package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/logger"
	"restaurant_pos/internal/migrations"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "drop every table before migrating")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *reset {
		if cfg.IsProduction() {
			log.Fatal("refusing to reset a production database")
		}
		err = migrations.Reset(cfg.DatabaseURL, log)
	} else {
		err = migrations.Run(cfg.DatabaseURL, log)
	}
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	db, err := database.Initialize(cfg.DatabaseURL, false, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.SessionTimeout)*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err = migrations.Seed(ctx, userRepo, repository.NewSettingsRepository(db), repository.NewMenuRepository(db), authService, migrations.SeedConfig{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminEmail:    cfg.AdminEmail,
	}, log)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	log.Info("database initialization completed", zap.String("admin", cfg.AdminUsername))
}
