package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"content-sweeper/core/loader"
	"content-sweeper/core/logger"
	"content-sweeper/core/middleware/auth"
	"content-sweeper/core/middleware/rayid"
	"content-sweeper/feature/integrity"
	"content-sweeper/feature/orphans"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the last scan's report and manifest over HTTP",
	Long: `Starts a read-only HTTP server exposing the current manifest, the report and
the preflight checks. It has no endpoint that deletes objects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger, storage and optional ledger
		env, err := loadEnvironment(cmd.Context(), "storage", "output", "server")
		if err != nil {
			return exitError(err)
		}
		defer env.close()
		logg := env.logger

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 3. Initialize Feature Loader
		svc := env.manifestService()
		mgr := loader.NewManager()
		mgr.Register(orphans.NewFeature(svc))
		mgr.Register(integrity.NewFeature(env.integrityService()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Metrics (Public)
		promHandler := adaptor.HTTPHandler(promhttp.HandlerFor(env.metrics.Registry(), promhttp.HandlerOpts{}))
		app.Get("/metrics", func(c *fiber.Ctx) error {
			if err := svc.RefreshMetrics(); err != nil {
				logger.WithRayID(logg, c).Debug("No manifest to export", zap.Error(err))
			}
			return promHandler(c)
		})

		// 3. Auth (Protect API)
		if env.cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is not set, the API is unauthenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: env.cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return exitError(err)
		}

		// 5. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", env.cfg.Server.Addr()))
			errCh <- app.Listen(env.cfg.Server.Addr())
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case <-c:
			logg.Info("Shutting down server...")
			return app.Shutdown()
		case err := <-errCh:
			return exitError(err)
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
