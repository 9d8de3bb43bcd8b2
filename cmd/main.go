// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"lingolearn/internal/config"
	"lingolearn/internal/handlers"
	"lingolearn/internal/middleware"
	"lingolearn/internal/repository"
	"lingolearn/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. Dependency Injection
	wordRepo := repository.NewGormWordRepository()
	progressRepo := repository.NewGormProgressRepository()
	sessionRepo := repository.NewGormSessionRepository()
	achievementRepo := repository.NewGormAchievementRepository()
	historyRepo := repository.NewGormExerciseHistoryRepository()

	wordService := service.NewWordService(db, wordRepo, progressRepo, nil)
	progressService := service.NewProgressService(db, progressRepo, sessionRepo, wordRepo)
	achievementService := service.NewAchievementService(db, achievementRepo, progressRepo, sessionRepo, historyRepo)
	exerciseService := service.NewExerciseService(db, wordRepo, progressRepo, sessionRepo, historyRepo, &config.Cfg, nil)

	wordHandler := handlers.NewWordHandler(wordService)
	progressHandler := handlers.NewProgressHandler(progressService, &config.Cfg)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chimiddleware.Recoverer)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	r.Use(corsMiddleware.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Get("/", wordHandler.GetWords)
			r.Get("/random", wordHandler.GetRandomWords)
			r.Get("/review/{user_id}", progressHandler.GetDueWords)
			r.Get("/{word_id}", wordHandler.GetWord)
		})
		r.Route("/progress", func(r chi.Router) {
			r.Post("/update", progressHandler.UpdateProgress)
			r.Post("/bookmark", progressHandler.ToggleBookmark)
			r.Get("/{user_id}", progressHandler.GetStats)
		})
		r.Get("/achievements/{user_id}", achievementHandler.GetAchievements)
		r.Route("/exercises", func(r chi.Router) {
			r.Get("/generate", exerciseHandler.GenerateExercises)
			r.Post("/submit", exerciseHandler.SubmitExercises)
		})
	})

	// 5. Server with graceful shutdown
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Graceful shutdown failed, forcing close", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				log.Printf("Error forcing server close: %v", closeErr)
			}
		}
		slog.Info("Server stopped.")
	}
}
