package syncapi

import (
	"time"

	"ordered-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	runner  *reconcile.Runner
	handler *Handler
}

// NewFeature creates the sync API feature.
func NewFeature(runner *reconcile.Runner, logger *zap.Logger, timeout time.Duration) *Feature {
	return &Feature{runner: runner, handler: NewHandler(runner, logger, timeout)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether any job is registered.
func (f *Feature) IsEnabled() bool {
	return len(f.runner.Jobs()) > 0
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
