package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/app"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/database/mongodb"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()
	app.ConfigureLogger(config)

	if config.MongoDBConfig.URI == "" {
		log.Fatal().Msg("MONGO_URI is not set")
	}
	if config.JWTConfig.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	db, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	}

	if err := server.StopServer(); err != nil {
		log.Error().Err(err).Msg("Error during shutdown")
		os.Exit(1)
	}
}
