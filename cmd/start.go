package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ordered-sync/core/loader"
	"ordered-sync/core/logger"
	"ordered-sync/core/metrics"
	"ordered-sync/core/middleware/auth"
	"ordered-sync/core/middleware/rayid"
	"ordered-sync/core/reconcile"
	"ordered-sync/feature/syncapi"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server exposing the sync jobs, health and metrics endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Jobs whose store is unreachable are skipped, not fatal.
		runner := reconcile.NewRunner(logg, metrics.Default)
		runner.SetRunTimeout(cfg.Server.RunTimeout())
		registerJobs(runner, cfg, logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "jobs": runner.Jobs()})
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health"}}))

		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

		mgr := loader.NewManager(logg)
		mgr.Register(syncapi.NewFeature(runner, logg, cfg.Server.RunTimeout()))
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()), zap.Strings("jobs", runner.Jobs()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
