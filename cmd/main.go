// Package main is the entry point for the reconciliation service.
//
// @title           Reconciliation Service API
// @version         1.0.0
// @description     Matches invoices against a payment amount by subset sum within a tolerance.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/reconciliation-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Reconciliation
// @tag.description Invoice reconciliation
//
// @tag.name        Logs
// @tag.description Stored request logs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/reconciliation-service/docs" // swagger docs

	"github.com/guttosm/reconciliation-service/config"
	"github.com/guttosm/reconciliation-service/internal/app"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(application.Close)

	if err := server.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
