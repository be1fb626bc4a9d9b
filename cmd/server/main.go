package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/MintCofee/tabshare/internal/config"
	"github.com/MintCofee/tabshare/internal/events"
	"github.com/MintCofee/tabshare/internal/httpserver"
	"github.com/MintCofee/tabshare/internal/logging"
	mwauth "github.com/MintCofee/tabshare/internal/middleware/auth"
	loggingmw "github.com/MintCofee/tabshare/internal/middleware/logging"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/search"
	"github.com/MintCofee/tabshare/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.OpenDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(search.ClientConfig{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		searchSvc = search.NewService(esClient, cfg.ESIndex)
	}

	userRepo := &repo.UserRepo{DB: db}
	tabRepo := &repo.TabRepo{DB: db}
	songRepo := &repo.SongRepo{DB: db}

	tabSvc := &service.TabService{Tabs: tabRepo, Users: userRepo, Producer: producer, Search: searchSvc}

	deps := &httpserver.Deps{
		Auth:  &httpserver.AuthHandler{Svc: &service.AuthService{Users: userRepo, JWTSecret: cfg.JWTSecret, Producer: producer}},
		Tabs:  &httpserver.TabHandler{Svc: tabSvc},
		Songs: &httpserver.SongHandler{Svc: &service.SongService{Songs: songRepo, Tabs: tabRepo, Producer: producer}},
		Users: &httpserver.UserHandler{Users: userRepo, Tabs: tabSvc},
		Stats: &httpserver.StatsHandler{Svc: &service.StatsService{Tabs: tabRepo, Songs: songRepo, Users: userRepo}},
		MW:    mwauth.New(cfg.JWTSecret),
	}
	if searchSvc != nil {
		deps.Search = &httpserver.SearchHandler{Svc: searchSvc}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
