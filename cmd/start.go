package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hr-eval/core/config"
	"hr-eval/core/database"
	"hr-eval/core/hris"
	"hr-eval/core/loader"
	"hr-eval/core/logger"
	"hr-eval/core/middleware/auth"
	"hr-eval/core/middleware/rayid"
	"hr-eval/core/storage"

	"hr-eval/feature/appraisal"
	"hr-eval/feature/directory"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HR evaluation server",
	Long:  `Starts the HTTP server, the directory sync scheduler, and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("name", cfg.Database.Name))

		// 4. Upstream directory client
		hrisClient := hris.NewClient(cfg.Hris)

		// 5. Optional snapshot archive
		var archiver *directory.Archiver
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Snapshot archive disabled, storage client failed", zap.Error(err))
			} else {
				archiver = directory.NewArchiver(store, cfg.Storage.Bucket, logg)
				logg.Info("Snapshot archive enabled", zap.String("bucket", cfg.Storage.Bucket))
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 7. Feature Registration
		mgr := loader.NewManager()
		directoryFeature := directory.NewFeature(db, hrisClient, archiver, cfg.Directory, logg)
		mgr.Register(directoryFeature)
		mgr.Register(appraisal.NewFeature(db, directoryFeature.Service(), logg))

		// Middleware: RayID first so everything is traceable
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

		// Auth guard on the whole API
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
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
