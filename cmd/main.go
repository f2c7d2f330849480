// Package main runs the mini bank API to manage users, accounts and money transfers.
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/mini-bank/cmd/httpserver"
	"github.com/go-petr/mini-bank/internal/middleware"
	"github.com/go-petr/mini-bank/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	defer func() {
		if err := server.Close(); err != nil {
			logger.Error().Err(err).Msg("cannot close event writers")
		}
	}()

	logger.Info().Msg("BANK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Error().Err(err).Msg("cannot start server")
	}
}
