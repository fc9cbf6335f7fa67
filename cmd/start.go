package cmd

import (
	"context"
	"log"
	"time"

	"travel-admin/core/config"
	"travel-admin/core/database"
	"travel-admin/core/loader"
	"travel-admin/core/logger"
	"travel-admin/core/metrics"
	"travel-admin/core/middleware/auth"
	"travel-admin/core/middleware/rayid"
	"travel-admin/core/tracing"
	"travel-admin/feature/links"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "travel-admin/docs/swagger"
)

// @title Travel Admin API
// @version 1.0
// @description Link reconciliation API for the travel catalogue.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the travel admin server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Server.Validate(); err != nil {
			log.Fatalf("Invalid server configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Tracing
		shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, version)
		if err != nil {
			logg.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logg.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()

		// 4. Connect to Database (Optional)
		// Without it the links feature stays disabled but the server still answers health and metrics.
		m := metrics.New()
		var service *links.Service
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			logg = logg.With(zap.String("database", cfg.Database.Name))
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

			archive, err := openArchive(ctx, cfg)
			if err != nil {
				logg.Warn("Report archive unavailable", zap.Error(err))
			}
			service = links.NewService(links.NewStore(db), cfg.Reconcile, archive, m, logg)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(links.NewFeature(service, logg))
		for _, f := range mgr.Features() {
			logg.Debug("Feature registered", zap.String("feature", f.Name()), zap.Bool("enabled", f.IsEnabled()))
		}

		// RayID must be first so every log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		// Public endpoints
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "version": version})
		})
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
