package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vasek03/tip-league/config"
	"github.com/Vasek03/tip-league/db"
	"github.com/Vasek03/tip-league/handlers"
	"github.com/Vasek03/tip-league/live"
	"github.com/Vasek03/tip-league/repositories"
	"github.com/Vasek03/tip-league/routes"
	"github.com/Vasek03/tip-league/services"
	"github.com/Vasek03/tip-league/storage"
)

// @title Tip League API
// @version 1.0
// @description Prediction contest: tip match scores, rank the season's teams, climb the leaderboard.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DatabaseURL, 10*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()
	logger.Info("database connection established")

	if err := db.Migrate(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("team crest storage enabled", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Info("team crest storage disabled: no R2 configuration")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(database)
	profileRepo := repositories.NewPostgresProfileRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	matchRepo := repositories.NewPostgresMatchRepository(database)
	predictionRepo := repositories.NewPostgresPredictionRepository(database)
	rankingRepo := repositories.NewPostgresRankingRepository(database)

	authService := services.NewAuthService(userRepo, profileRepo)
	teamService := services.NewTeamService(teamRepo, uploader)
	matchService := services.NewMatchService(matchRepo, predictionRepo)
	predictionService := services.NewPredictionService(matchRepo, predictionRepo)
	rankingService := services.NewRankingService(database, rankingRepo, teamRepo)
	settlementService := services.NewSettlementService(database, matchRepo, predictionRepo, rankingRepo, teamRepo, profileRepo, logger)
	leaderboardService := services.NewLeaderboardService(profileRepo)
	dashboardService := services.NewDashboardService(profileRepo, predictionRepo, rankingRepo)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Match:       handlers.NewMatchHandler(matchService, settlementService, leaderboardService, hub),
		Prediction:  handlers.NewPredictionHandler(predictionService),
		Ranking:     handlers.NewRankingHandler(rankingService, settlementService, leaderboardService, hub),
		Team:        handlers.NewTeamHandler(teamService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(hub),
	}, []byte(cfg.JWTSecretKey))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", slog.String("signal", s.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	logger.Info("starting server", slog.Int("port", cfg.ServerPort))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
