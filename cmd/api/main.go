package main

import (
	"os"

	"github.com/yigit/gpacalc/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/gpacalc/internal/server"
)

// @title GPA Calculator API
// @version 1.0
// @description Two-term GPA calculator: course lists, grade resolution and credit-weighted results per term or combined

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token returned by POST /sessions

func main() {
	// NewServer orchestrates config, logger, session store, dependencies and router
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
	os.Exit(0)
}
