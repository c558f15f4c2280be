package cmd

import (
	"context"
	"os"
	"testing"

	"ordered-sync/core/config"
	"ordered-sync/core/database"
	"ordered-sync/core/reconcile"
	"ordered-sync/feature/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// syncFlags sets the sync command flags for one test.
func syncFlags(t *testing.T, dryRun, yes bool) {
	t.Helper()
	prevDryRun, prevYes, prevLimit := dryRunSync, yesConfirm, sampleLimit
	t.Cleanup(func() {
		dryRunSync, yesConfirm, sampleLimit = prevDryRun, prevYes, prevLimit
	})
	dryRunSync, yesConfirm, sampleLimit = dryRun, yes, 20
}

// withStdin feeds input to the confirmation prompt.
func withStdin(t *testing.T, input string) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	prev := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = prev
		_ = r.Close()
	})
}

// seededTables returns a build function for runSync backed by a seeded
// in-memory database, and a reader for the target table.
func seededTables(t *testing.T) (func(*config.Config) (reconcile.Job, error), func() []string) {
	t.Helper()
	t.Setenv("TABLES_PAGE_SIZE", "2")
	t.Setenv("LOG_LEVEL", "error")

	var db *gorm.DB
	var tablesCfg tables.Config
	build := func(cfg *config.Config) (reconcile.Job, error) {
		var err error
		db, err = database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		if err != nil {
			return nil, err
		}
		tablesCfg = cfg.Tables
		if err := tables.Migrate(db, tablesCfg); err != nil {
			return nil, err
		}
		if err := tables.Seed(context.Background(), db, tablesCfg); err != nil {
			return nil, err
		}
		return tablesJob(cfg, db), nil
	}
	target := func() []string {
		values, err := tables.Values(context.Background(), db, tablesCfg.TargetTable)
		require.NoError(t, err)
		return values
	}
	return build, target
}

func TestRunSync_DryRunLeavesTarget(t *testing.T) {
	syncFlags(t, true, true)
	build, target := seededTables(t)

	require.NoError(t, runSync(build))
	assert.Equal(t, []string{"A", "B", "D", "F"}, target())
}

func TestRunSync_AutoConfirmApplies(t *testing.T) {
	syncFlags(t, false, true)
	build, target := seededTables(t)

	require.NoError(t, runSync(build))
	assert.Equal(t, []string{"A", "C", "E"}, target())
}

func TestRunSync_PromptConfirmation(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{name: "accepted", answer: "yes\n", want: []string{"A", "C", "E"}},
		{name: "declined", answer: "no\n", want: []string{"A", "B", "D", "F"}},
		{name: "no answer", answer: "", want: []string{"A", "B", "D", "F"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncFlags(t, false, false)
			withStdin(t, tt.answer)
			build, target := seededTables(t)

			require.NoError(t, runSync(build))
			assert.Equal(t, tt.want, target())
		})
	}
}

func TestRunSync_BuildError(t *testing.T) {
	syncFlags(t, true, false)
	t.Setenv("LOG_LEVEL", "error")

	err := runSync(func(*config.Config) (reconcile.Job, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDemoCommands(t *testing.T) {
	for _, name := range []string{"letters", "entities", "tables"} {
		t.Run(name, func(t *testing.T) {
			RootCmd.SetArgs([]string{"demo", name})
			t.Cleanup(func() { RootCmd.SetArgs(nil) })

			require.NoError(t, RootCmd.Execute())
		})
	}
}
