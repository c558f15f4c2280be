package syncapi

import (
	"context"
	"errors"
	"time"

	"ordered-sync/core/logger"
	"ordered-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultSampleLimit caps the actions returned when no limit is given.
const DefaultSampleLimit = 100

// Handler handles HTTP requests for reconciliation jobs.
type Handler struct {
	runner  *reconcile.Runner
	logger  *zap.Logger
	timeout time.Duration
}

// NewHandler creates a new HTTP handler.
func NewHandler(runner *reconcile.Runner, logger *zap.Logger, timeout time.Duration) *Handler {
	return &Handler{runner: runner, logger: logger, timeout: timeout}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/jobs", h.HandleListJobs)
	group.Post("/:job", h.HandleRunJob)
}

// HandleListJobs returns the registered job names.
func (h *Handler) HandleListJobs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"jobs": h.runner.Jobs()})
}

// HandleRunJob plans or applies a job.
//
// Query parameters: confirm=true applies the changes, dry_run=true forces a
// plan even when confirmed, limit caps the returned actions (0 = all).
func (h *Handler) HandleRunJob(c *fiber.Ctx) error {
	name := c.Params("job")
	l := logger.WithRayID(h.logger, c)

	limit := c.QueryInt("limit", DefaultSampleLimit)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must not be negative",
		})
	}

	opts := reconcile.Options{
		DryRun:      c.QueryBool("dry_run", false),
		Confirmed:   c.QueryBool("confirm", false),
		SampleLimit: limit,
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	plan, err := h.runner.Run(ctx, name, opts)
	if err != nil {
		if errors.Is(err, reconcile.ErrUnknownJob) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Sync job failed", zap.String("job", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(plan)
}
