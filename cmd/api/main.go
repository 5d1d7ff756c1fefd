package main

import (
	"os"

	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"github.com/yigit/fitnesshub/internal/server"
)

// @title FitnessHub API
// @version 1.0
// @description Fitness class marketplace: classes, cart, checkout, instructors and admin views.

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
