package backup

import (
	"bg3-modsettings/core/storage"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new backup feature. It is disabled when client is nil.
func NewFeature(client storage.Client, bucket string, cfg Config, profiles models.Profiles, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, cfg.Prefix, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, profiles),
		enabled: client != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "backup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
