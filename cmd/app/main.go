package main

import (
	"cheapticket/config"
	"cheapticket/di"
	"cheapticket/helper"
	"cheapticket/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title CheapTicket API
// @version 1.0
// @description Travel search capture service: OTP sign-in, onboarding and saved trip searches with coupon codes.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	log.Info().Str("app", cfg.App.Name).Str("env", cfg.Server.Env).Msg("Booting service")

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
