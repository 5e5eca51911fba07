package cmd

import (
	"context"
	"log"

	"hr-eval/core/config"
	"hr-eval/core/database"
	"hr-eval/core/hris"
	"hr-eval/core/logger"
	"hr-eval/core/refcache"
	"hr-eval/feature/directory"
	"hr-eval/feature/directory/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceSync bool

// syncCmd runs one directory synchronization pass from the CLI.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one directory synchronization pass",
	Long: `Pull the full employee set from the upstream HR directory and reconcile
it into the local store, then print the outcome.

Examples:
  # Normal pass (change detection decides what to write)
  hr-eval sync

  # Forced pass (every existing record is rewritten)
  hr-eval sync --force`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&forceSync, "force", false, "Stage every existing record as an update and bypass the disable flag")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return err
	}

	client := hris.NewClient(cfg.Hris)
	ranks := refcache.New("rank", cfg.Directory.ReferenceTTL(), client.FetchRanks,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		logg,
	)
	depts := refcache.New("department", cfg.Directory.ReferenceTTL(), client.FetchDepartments,
		func(e hris.RefEntry) string { return e.ExternalID },
		func(e hris.RefEntry) string { return e.Code },
		logg,
	)

	syncer := directory.NewSyncer(db, client, cfg.Directory, ranks, depts, nil, logg)

	outcome, err := syncer.Run(ctx, forceSync)
	if err != nil {
		return err
	}

	logg.Info("Sync pass finished",
		zap.Bool("success", outcome.Success),
		zap.Int("total", outcome.Total),
		zap.Int("created", outcome.Created),
		zap.Int("updated", outcome.Updated),
		zap.Int("skipped", outcome.Skipped),
		zap.Strings("errors", outcome.Errors),
	)

	return nil
}
