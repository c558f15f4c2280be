package tables

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Row is one row of a mirrored table.
type Row struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Value string `gorm:"column:value;type:varchar(255);not null"`
}

// Migrate creates the source and target tables when they are missing.
func Migrate(db *gorm.DB, cfg Config) error {
	for _, table := range []string{cfg.SourceTable, cfg.TargetTable} {
		if err := db.Table(table).AutoMigrate(&Row{}); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}
	}
	return nil
}

// Seed fills both tables with the demo data set: A is shared, the source
// gets C and E, the target gets B, D and F.
func Seed(ctx context.Context, db *gorm.DB, cfg Config) error {
	var source, target []Row
	for i := 0; i < 6; i++ {
		value := string(rune('A' + i))
		switch {
		case i == 0:
			source = append(source, Row{Value: value})
			target = append(target, Row{Value: value})
		case i%2 == 0:
			source = append(source, Row{Value: value})
		default:
			target = append(target, Row{Value: value})
		}
	}

	if err := db.WithContext(ctx).Table(cfg.SourceTable).Create(&source).Error; err != nil {
		return fmt.Errorf("failed to seed %s: %w", cfg.SourceTable, err)
	}
	if err := db.WithContext(ctx).Table(cfg.TargetTable).Create(&target).Error; err != nil {
		return fmt.Errorf("failed to seed %s: %w", cfg.TargetTable, err)
	}
	return nil
}

// Values returns every value of table in key order.
func Values(ctx context.Context, db *gorm.DB, table string) ([]string, error) {
	var values []string
	err := db.WithContext(ctx).Table(table).Order("value ASC, id ASC").Pluck("value", &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return values, nil
}
