package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/api"
	"github.com/dverano/tasklist-be/internal/auth"
	"github.com/dverano/tasklist-be/internal/config"
	"github.com/dverano/tasklist-be/internal/database"
	"github.com/dverano/tasklist-be/internal/logger"
	"github.com/dverano/tasklist-be/internal/services"
)

func main() {
	// Load configuration; a missing JWT_SECRET fails here, before anything
	// that could issue a token is wired up
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up token manager and password hasher
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, hasher, eventService)
	taskService := services.NewTaskService(db, eventService)

	// Set up router
	router := api.NewRouter(tokens, userService, taskService)

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
