package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ordered-sync/core/config"
	"ordered-sync/core/database"
	"ordered-sync/core/reconcile"
	"ordered-sync/core/storage"
	"ordered-sync/feature/countries"
	"ordered-sync/feature/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync  bool
	yesConfirm  bool
	sampleLimit int
	migrate     bool
)

// syncCmd is the parent command for all sync jobs.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Make a target equal to its source",
	Long: `Plan and apply a synchronization job.

The job is always planned first and the report printed. Changes are applied
only after confirmation (interactive, or --yes) and never with --dry-run.

Examples:
  # Report only
  sync tables --dry-run

  # Apply with interactive confirmation
  sync countries --migrate

  # Apply without prompting
  sync objects --yes`,
}

var syncTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Mirror the source table into the target table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(cfg *config.Config) (reconcile.Job, error) {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return nil, err
			}
			if migrate {
				if err := tables.Migrate(db, cfg.Tables); err != nil {
					return nil, err
				}
			}
			return tablesJob(cfg, db), nil
		})
	},
}

var syncCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Sync the countries table with the ISO 3166-2 page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(cfg *config.Config) (reconcile.Job, error) {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return nil, err
			}
			if migrate {
				if err := countries.Migrate(db, cfg.Countries); err != nil {
					return nil, err
				}
			}
			return countriesJob(cfg, db), nil
		})
	},
}

var syncObjectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Mirror objects from the source bucket to the target bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(func(cfg *config.Config) (reconcile.Job, error) {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to storage: %w", err)
			}
			return objectsJob(cfg, client), nil
		})
	},
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&dryRunSync, "dry-run", false, "Only print the plan (no mutations even with --yes)")
	syncCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm changes (non-interactive)")
	syncCmd.PersistentFlags().IntVar(&sampleLimit, "limit", 20, "Number of planned actions to print (0 = all)")
	syncTablesCmd.Flags().BoolVar(&migrate, "migrate", false, "Create the tables when they are missing")
	syncCountriesCmd.Flags().BoolVar(&migrate, "migrate", false, "Create the countries table when it is missing")

	syncCmd.AddCommand(syncTablesCmd, syncCountriesCmd, syncObjectsCmd)
	RootCmd.AddCommand(syncCmd)
}

func runSync(build func(*config.Config) (reconcile.Job, error)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	job, err := build(cfg)
	if err != nil {
		return err
	}

	opts := reconcile.Options{
		DryRun:      dryRunSync,
		Confirmed:   true,
		SampleLimit: sampleLimit,
	}

	l.Info("Planning synchronization", zap.String("job", job.Name()))
	reported := false
	plan, applied, err := reconcile.PlanAndApply(ctx, job, opts, func(plan *reconcile.Plan) bool {
		printReport(l, plan)
		reported = true
		if confirmChanges() {
			l.Info("Applying changes...")
			return true
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("sync %s failed: %w", job.Name(), err)
	}
	if !reported {
		printReport(l, plan)
	}

	switch {
	case applied != nil:
		l.Info("Synchronization applied",
			zap.Int("added", applied.Summary.Added),
			zap.Int("removed", applied.Summary.Removed),
		)
	case plan.Summary.Total() == 0:
		l.Info("Source and target are already equal.")
	case dryRunSync:
		l.Info("Dry-run mode: No changes were made.")
	default:
		l.Warn("Operation cancelled by user. No changes were made.")
	}
	return nil
}

// printReport prints a plan using the logger.
func printReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Synchronization report",
		zap.String("job", plan.Job),
		zap.Int("add", s.Added),
		zap.Int("remove", s.Removed),
		zap.Int("unchanged", s.Matched),
	)

	for _, action := range plan.Actions {
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("item", action.Item),
		)
	}
	if plan.Truncated {
		l.Info("Additional actions not shown", zap.Int("count", s.Total()-len(plan.Actions)))
	}
}

// confirmChanges prompts the user for confirmation or uses --yes flag.
func confirmChanges() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to apply these changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
