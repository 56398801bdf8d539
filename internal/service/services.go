package service

import (
	"github.com/MKhiriev/survey-auth/internal/config"
	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/store"
)

// Services aggregates every domain service of the application. Constructed
// once at startup and injected into the transport and worker layers.
type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	ConfigService        ConfigService
}

// NewServices wires the domain services on top of the repositories.
//
// configService is built and consulted beforehand during startup (the token
// signing secret lives behind it), so it is passed in ready-made along with
// the already resolved tokenSignKey.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, configService ConfigService, emailSender EmailSender, tokenSignKey string, logger *logger.Logger) *Services {
	return &Services{
		AuthService:          NewAuthService(storages.UserRepository, cfg.App, tokenSignKey, logger),
		PasswordResetService: NewPasswordResetService(storages.UserRepository, emailSender, cfg.App, logger),
		ConfigService:        configService,
	}
}
