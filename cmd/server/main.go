package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/survey-auth/internal/adapter"
	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/crypto"
	"github.com/MKhiriev/survey-auth/internal/handler"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/server"
	"github.com/MKhiriev/survey-auth/internal/service"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/internal/workers"
	"github.com/MKhiriev/survey-auth/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("survey-auth")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	if err := migrations.Migrate(storages.DB().DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	// The cipher self-tests at construction; a broken passphrase or crypto
	// stack must stop the process before any secret is touched.
	cipher, err := crypto.NewSecretBox(cfg.App.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating secret cipher")
	}

	configService := service.NewConfigService(storages.SystemConfigRepository, cipher, log)

	tokenSignKey, err := configService.EnsureSigningSecret(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving token signing secret")
	}

	emailSender := adapter.NewSMTPSender(cfg.Mail, log)

	services := service.NewServices(storages, cfg, configService, emailSender, tokenSignKey, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	notifier := workers.NewExpirationNotifier(storages.UserRepository, emailSender, cfg.Workers, log)
	notifier.Start(ctx)
	defer notifier.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
