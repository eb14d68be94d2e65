package store

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"campus-canteen/models"
)

// deletedItem is a tombstone for a compiled-in default menu item the admin
// removed. Defaults cannot be physically deleted (they ship with the
// binary), so deletions are tracked explicitly and filtered out on load.
type deletedItem struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	DeletedAt time.Time
}

// Local is the fallback store, backed by a SQLite file next to the binary.
// Menu reads merge the compiled-in default menu with locally stored
// override rows; a fixed-interval ticker emits reload events in place of
// the remote store's change notifications.
type Local struct {
	gormStore
	interval time.Duration
	stop     chan struct{}
}

func OpenLocal(path string, interval time.Duration) (*Local, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := migrate(db, &deletedItem{}); err != nil {
		return nil, err
	}

	l := &Local{
		gormStore: newGormStore(db),
		interval:  interval,
		stop:      make(chan struct{}),
	}
	if err := l.seedCategories(); err != nil {
		return nil, err
	}
	go l.pollLoop()
	return l, nil
}

// seedCategories inserts the bundled categories once. Categories are static
// reference data; unlike menu items they need no override merging.
func (l *Local) seedCategories() error {
	var count int64
	if err := l.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := DefaultCategories()
	return l.db.Create(&cats).Error
}

// pollLoop substitutes for a push channel: every tick the consumer reloads,
// which also picks up writes made by another process sharing the file.
func (l *Local) pollLoop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.publish("*", ActionReload)
		case <-l.stop:
			return
		}
	}
}

func (l *Local) Close() error {
	close(l.stop)
	return l.gormStore.Close()
}

// MenuItems merges three layers: compiled-in defaults minus tombstoned ids,
// override rows for default items, and admin-added rows.
func (l *Local) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := l.gormStore.MenuItems(ctx)
	if err != nil {
		return nil, err
	}

	var tombs []deletedItem
	if err := l.db.WithContext(ctx).Find(&tombs).Error; err != nil {
		return nil, err
	}
	deleted := make(map[string]struct{}, len(tombs))
	for _, t := range tombs {
		deleted[t.ID] = struct{}{}
	}

	overrides := make(map[string]models.MenuItem, len(rows))
	for _, row := range rows {
		overrides[row.ID] = row
	}

	defaults := DefaultMenuItems()
	defaultIDs := make(map[string]struct{}, len(defaults))
	merged := make([]models.MenuItem, 0, len(defaults)+len(rows))
	for _, def := range defaults {
		defaultIDs[def.ID] = struct{}{}
		if _, gone := deleted[def.ID]; gone {
			continue
		}
		if row, ok := overrides[def.ID]; ok {
			merged = append(merged, row)
		} else {
			merged = append(merged, def)
		}
	}
	for _, row := range rows {
		if _, isDefault := defaultIDs[row.ID]; !isDefault {
			merged = append(merged, row)
		}
	}
	return merged, nil
}

// SaveMenuItem clears any tombstone for the id so re-adding a previously
// deleted default works, then stores the row as a full override.
func (l *Local) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := l.db.WithContext(ctx).Delete(&deletedItem{}, "id = ?", item.ID).Error; err != nil {
		return err
	}
	return l.gormStore.SaveMenuItem(ctx, item)
}

// DeleteMenuItem removes the stored row and, for default items, records a
// tombstone so the bundled copy stays hidden.
func (l *Local) DeleteMenuItem(ctx context.Context, id string) error {
	if IsDefaultMenuItem(id) {
		tomb := deletedItem{ID: id, DeletedAt: time.Now()}
		if err := l.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&tomb).Error; err != nil {
			return err
		}
	}
	return l.gormStore.DeleteMenuItem(ctx, id)
}
