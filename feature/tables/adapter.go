package tables

import (
	"context"
	"fmt"

	"ordered-sync/core/database"
	"ordered-sync/core/orderedsync"

	"gorm.io/gorm"
)

// Adapter mirrors the value column of one table into another.
type Adapter struct {
	db  *gorm.DB
	cfg Config
}

// NewAdapter creates a table mirror adapter.
func NewAdapter(db *gorm.DB, cfg Config) *Adapter {
	return &Adapter{db: db, cfg: cfg}
}

// Name returns the job name.
func (a *Adapter) Name() string {
	return "tables"
}

// Key orders rows by value only; the id is an implementation detail of each table.
func (a *Adapter) Key(r Row) string {
	return r.Value
}

// Describe returns the row value.
func (a *Adapter) Describe(r Row) string {
	return r.Value
}

// OpenSource opens the source table.
func (a *Adapter) OpenSource(ctx context.Context) (orderedsync.Sequence[Row], error) {
	seq, err := a.open(a.cfg.SourceTable)
	if err != nil {
		return nil, err
	}
	if a.cfg.Prefetch > 0 {
		// The source is never written during a run, so reading ahead is safe.
		return orderedsync.Prefetch(ctx, seq, a.cfg.Prefetch), nil
	}
	return seq, nil
}

// OpenTarget opens the target table.
func (a *Adapter) OpenTarget(ctx context.Context) (orderedsync.Sequence[Row], error) {
	return a.open(a.cfg.TargetTable)
}

func (a *Adapter) open(table string) (orderedsync.Sequence[Row], error) {
	if a.db == nil {
		return nil, fmt.Errorf("no database connection")
	}
	if err := database.RequireColumns(a.db, table, "id", "value"); err != nil {
		return nil, err
	}
	var seq orderedsync.Sequence[Row] = database.Paginate(a.cfg.PageSize, a.page(table))
	if a.cfg.CheckOrder {
		seq = orderedsync.Checked(seq, a.Key)
	}
	return seq, nil
}

// page reads rows ordered by (value, id) strictly after last.
func (a *Adapter) page(table string) database.PageFunc[Row] {
	value := database.ByteOrder(a.db, "value")
	return func(ctx context.Context, last *Row, limit int) ([]Row, error) {
		q := a.db.WithContext(ctx).
			Table(table).
			Select("id", "value").
			Order(value + " ASC, id ASC").
			Limit(limit)
		if last != nil {
			q = q.Where(value+" > ? OR ("+value+" = ? AND id > ?)", last.Value, last.Value, last.ID)
		}

		var rows []Row
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", table, err)
		}
		return rows, nil
	}
}

// Add inserts the value into the target table.
func (a *Adapter) Add(ctx context.Context, r Row) error {
	row := Row{Value: r.Value}
	if err := a.db.WithContext(ctx).Table(a.cfg.TargetTable).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert %q into %s: %w", r.Value, a.cfg.TargetTable, err)
	}
	return nil
}

// Remove deletes exactly the target row that was read, so duplicate values
// are removed one at a time.
func (a *Adapter) Remove(ctx context.Context, r Row) error {
	err := a.db.WithContext(ctx).Table(a.cfg.TargetTable).Where("id = ?", r.ID).Delete(&Row{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete row %d from %s: %w", r.ID, a.cfg.TargetTable, err)
	}
	return nil
}
