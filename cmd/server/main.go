package main

import (
	"os"

	"github.com/campushub/backend/internal/router"
	"github.com/campushub/backend/pkg/config"
	"github.com/campushub/backend/pkg/events"
	"github.com/campushub/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = logger

	// Load configuration
	cfg := config.Load()

	// Initialize storage connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Kafka is optional; without brokers the event stream is disabled.
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(events.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize Kafka producer")
		}
		defer producer.Close()
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db, producer, logger)

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
