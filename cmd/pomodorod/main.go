package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pomodoro-tracker/internal/auth"
	"pomodoro-tracker/internal/config"
	"pomodoro-tracker/internal/httpapi"
	"pomodoro-tracker/internal/logging"
	"pomodoro-tracker/internal/repository"
	"pomodoro-tracker/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("timezone", zap.Error(err))
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	services := httpapi.Services{
		Auth:       service.NewAuthService(db, userRepo, tokens),
		Tasks:      service.NewTaskService(db, taskRepo, categoryRepo, tagRepo, sessionRepo),
		Categories: service.NewCategoryService(db, categoryRepo, taskRepo),
		Tags:       service.NewTagService(db, tagRepo),
		Pomodoro:   service.NewPomodoroService(db, sessionRepo, taskRepo, loc),
		Analytics:  service.NewAnalyticsService(taskRepo, sessionRepo, loc),
	}

	server, err := httpapi.NewServer(cfg, logger, loc, tokens, services)
	if err != nil {
		logger.Fatal("server", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped with error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
