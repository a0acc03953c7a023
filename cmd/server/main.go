package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordrush/internal/audio"
	"wordrush/internal/config"
	"wordrush/internal/database"
	"wordrush/internal/handlers"
	"wordrush/internal/repository"
	"wordrush/internal/security"
	"wordrush/internal/service"
)

func main() {
	cfg := config.Load()

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Level(level).With().Timestamp().Logger()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := db.SeedScreenedWords(); err != nil {
		log.Warn().Err(err).Msg("failed to seed name screening list")
	}

	// Repositories and services
	wordRepo := repository.NewWordRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	contentService := service.NewContentService(wordRepo)
	if err := contentService.EnsureSeeded(); err != nil {
		log.Warn().Err(err).Msg("failed to seed starter words")
	}

	reportService, err := service.NewReportService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize report service")
	}

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.SessionTTL)
	narrator := audio.NewTTSNarrator(cfg.AudioCachePath)

	gameService := service.NewGameService(service.GameServiceConfig{
		Content:      contentService,
		ProgressRepo: progressRepo,
		Reports:      reportService,
		Screener:     db,
		Tokens:       tokens,
		Narrator:     narrator,
		LanguageTag:  cfg.LanguageTag,
		SpeechRate:   cfg.SpeechRate,
		SessionTTL:   cfg.SessionTTL,
	})
	gameService.StartJanitor(5 * time.Minute)

	// Handlers and routes
	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	mw := handlers.NewMiddleware(tokens, limiter)
	sessionHandler := handlers.NewSessionHandler(gameService)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session/start", mw.RateLimit(sessionHandler.Start))
	mux.HandleFunc("GET /api/session/state", mw.RequireSession(sessionHandler.State))
	mux.HandleFunc("GET /api/session/results", mw.RequireSession(sessionHandler.Results))
	mux.HandleFunc("POST /api/session/answer", mw.RequireSession(sessionHandler.Answer))
	mux.HandleFunc("POST /api/session/gesture", mw.RequireSession(sessionHandler.Gesture))
	mux.HandleFunc("POST /api/session/next", mw.RequireSession(sessionHandler.Next))
	mux.HandleFunc("POST /api/session/pause", mw.RequireSession(sessionHandler.Pause))
	mux.HandleFunc("POST /api/session/resume", mw.RequireSession(sessionHandler.Resume))
	mux.HandleFunc("POST /api/session/exit", mw.RequireSession(sessionHandler.Exit))
	mux.HandleFunc("POST /api/session/pairs/select", mw.RequireSession(sessionHandler.SelectPair))

	// Generated narration audio is served to clients as static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
