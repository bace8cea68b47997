package main

import (
	"os"

	"github.com/examdesk/examdesk/internal/pkg/logger"
	"github.com/examdesk/examdesk/internal/server"
)

// @title ExamDesk API
// @version 1.0
// @description Exam administration engine: student roster, exam catalog, registrations, grading and notifications

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

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
