package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mkaraca/campushub/internal/pkg/logger"
	"github.com/mkaraca/campushub/internal/server"
)

// @title CampusHub API
// @version 1.0
// @description API for the CampusHub student information system
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://www.campushub.app/support
// @contact.email support@campushub.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A .env file is optional, environment variables win either way
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
