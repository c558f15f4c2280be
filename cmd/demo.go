package cmd

import (
	"context"
	"fmt"
	"strings"

	"ordered-sync/core/database"
	"ordered-sync/core/logger"
	"ordered-sync/core/orderedsync"
	"ordered-sync/core/reconcile"
	"ordered-sync/feature/entities"
	"ordered-sync/feature/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// demoCmd runs self-contained demonstrations that need no configuration.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a self-contained demonstration",
}

var demoLettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "Reconcile two short lists of letters",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := demoLogger()
		if err != nil {
			return err
		}
		source := []string{"A", "C", "E", "G"}
		target := []string{"A", "B", "D", "E", "F"}
		l.Info("Lists", zap.Strings("source", source), zap.Strings("target", target))

		stats, err := orderedsync.ReconcileFuncs(cmd.Context(), orderedsync.FromSlice(source), orderedsync.FromSlice(target),
			func(s string) { l.Info("ADD", zap.String("element", s)) },
			func(s string) { l.Info("REMOVE", zap.String("element", s)) },
		)
		if err != nil {
			return err
		}
		l.Info("Done", zap.Int("added", stats.Added), zap.Int("removed", stats.Removed), zap.Int("matched", stats.Matched))
		return nil
	},
}

var demoEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Show that a changed entity is removed and added again",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := demoLogger()
		if err != nil {
			return err
		}
		source, target := entities.Sample()

		describe := func(e entities.Entity) string {
			return fmt.Sprintf("%d %s %s", e.ID, e.Name, e.Email)
		}
		_, err = entities.Reconcile(cmd.Context(), source, target, orderedsync.SinkFuncs[entities.Entity]{
			OnAdd: func(ctx context.Context, e entities.Entity) error {
				l.Info("ADD", zap.String("entity", describe(e)))
				return nil
			},
			OnRemove: func(ctx context.Context, e entities.Entity) error {
				l.Info("REMOVE", zap.String("entity", describe(e)))
				return nil
			},
		})
		return err
	},
}

var demoTablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Sync two tables of an in-memory SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := demoLogger()
		if err != nil {
			return err
		}

		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		if err != nil {
			return err
		}
		cfg := tables.Config{SourceTable: "source", TargetTable: "target", PageSize: 2, CheckOrder: true}
		if err := tables.Migrate(db, cfg); err != nil {
			return err
		}
		if err := tables.Seed(ctx, db, cfg); err != nil {
			return err
		}

		state := func(msg string) error {
			source, err := tables.Values(ctx, db, cfg.SourceTable)
			if err != nil {
				return err
			}
			target, err := tables.Values(ctx, db, cfg.TargetTable)
			if err != nil {
				return err
			}
			l.Info(msg, zap.String("source", strings.Join(source, ",")), zap.String("target", strings.Join(target, ",")))
			return nil
		}

		if err := state("Database state"); err != nil {
			return err
		}

		plan, err := reconcile.NewJob[tables.Row, string](tables.NewAdapter(db, cfg)).
			Apply(ctx, reconcile.Options{Confirmed: true})
		if err != nil {
			return err
		}
		for _, action := range plan.Actions {
			l.Info(strings.ToUpper(string(action.Type)), zap.String("element", action.Item))
		}

		return state("Database state again")
	},
}

func demoLogger() (*zap.Logger, error) {
	return logger.New(&logger.Config{Level: "info", Format: "console"})
}

func init() {
	demoCmd.AddCommand(demoLettersCmd, demoEntitiesCmd, demoTablesCmd)
	RootCmd.AddCommand(demoCmd)
}
