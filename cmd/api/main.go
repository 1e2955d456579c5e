package main

import (
	"context"
	"os"

	"github.com/yigit/studyhub/internal/pkg/logger"
	"github.com/yigit/studyhub/internal/server"
)

// @title StudyHub API
// @version 1.0
// @description Study tracker with AI generated quizzes and recommendations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name studyhub_session
// @description Session cookie set by signup and login

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Details are logged by the bootstrap step that failed
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
