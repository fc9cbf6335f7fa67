package links

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the links feature. A nil service disables it.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	f := &Feature{service: service}
	if service != nil {
		f.handler = NewHandler(service, logger)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "links"
}

// IsEnabled reports whether a database is available for the feature.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
