package countries

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"ordered-sync/core/database"
	"ordered-sync/core/orderedsync"

	"gorm.io/gorm"
)

// Adapter keeps the countries table equal to the downloaded list.
type Adapter struct {
	db     *gorm.DB
	client *http.Client
	cfg    Config
}

// NewAdapter creates a country list adapter. A nil client gets one with the
// configured timeout.
func NewAdapter(db *gorm.DB, client *http.Client, cfg Config) *Adapter {
	if client == nil {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		client = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}
	return &Adapter{db: db, client: client, cfg: cfg}
}

// Migrate creates the countries table when it is missing.
func Migrate(db *gorm.DB, cfg Config) error {
	if err := db.Table(cfg.Table).AutoMigrate(&Country{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", cfg.Table, err)
	}
	return nil
}

// Name returns the job name.
func (a *Adapter) Name() string {
	return "countries"
}

// Key orders countries by code, then name.
func (a *Adapter) Key(c Country) string {
	return orderedsync.JoinKey(c.Code, c.Name)
}

// Describe returns "code name".
func (a *Adapter) Describe(c Country) string {
	return c.Code + " " + c.Name
}

// OpenSource downloads and parses the whole page before anything else runs,
// so a broken download never reaches the target.
func (a *Adapter) OpenSource(ctx context.Context) (orderedsync.Sequence[Country], error) {
	countries, err := Fetch(ctx, a.client, a.cfg.URL, a.cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	byKey := func(x, y Country) int { return cmp.Compare(a.Key(x), a.Key(y)) }
	if !slices.IsSortedFunc(countries, byKey) {
		return nil, fmt.Errorf("%w: %s is not ordered by code", orderedsync.ErrOutOfOrder, a.cfg.URL)
	}

	return orderedsync.FromSlice(countries), nil
}

// OpenTarget opens the countries table ordered by (code, name, id).
func (a *Adapter) OpenTarget(ctx context.Context) (orderedsync.Sequence[Country], error) {
	if a.db == nil {
		return nil, fmt.Errorf("no database connection")
	}
	if err := database.RequireColumns(a.db, a.cfg.Table, "id", "code", "name"); err != nil {
		return nil, err
	}

	code := database.ByteOrder(a.db, "code")
	name := database.ByteOrder(a.db, "name")
	return database.Paginate(a.cfg.PageSize, func(ctx context.Context, last *Country, limit int) ([]Country, error) {
		q := a.db.WithContext(ctx).
			Table(a.cfg.Table).
			Select("id", "code", "name").
			Order(code + " ASC, " + name + " ASC, id ASC").
			Limit(limit)
		if last != nil {
			q = q.Where(
				code+" > ? OR ("+code+" = ? AND "+name+" > ?) OR ("+code+" = ? AND "+name+" = ? AND id > ?)",
				last.Code, last.Code, last.Name, last.Code, last.Name, last.ID,
			)
		}

		var rows []Country
		if err := q.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", a.cfg.Table, err)
		}
		return rows, nil
	}), nil
}

// Add inserts the country.
func (a *Adapter) Add(ctx context.Context, c Country) error {
	row := Country{Code: c.Code, Name: c.Name}
	if err := a.db.WithContext(ctx).Table(a.cfg.Table).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert country %s: %w", c.Code, err)
	}
	return nil
}

// Remove deletes the exact row that was read.
func (a *Adapter) Remove(ctx context.Context, c Country) error {
	err := a.db.WithContext(ctx).Table(a.cfg.Table).Where("id = ?", c.ID).Delete(&Country{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete country %s: %w", c.Code, err)
	}
	return nil
}
