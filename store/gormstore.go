package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-canteen/models"
)

// gormStore holds the behavior shared by both store implementations. The
// remote and local stores embed it and override where their semantics
// differ (menu merging, tombstones, poll ticker).
type gormStore struct {
	db     *gorm.DB
	events chan ChangeEvent
}

func newGormStore(db *gorm.DB) gormStore {
	return gormStore{
		db:     db,
		events: make(chan ChangeEvent, 64),
	}
}

func migrate(db *gorm.DB, extra ...any) error {
	base := []any{
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.Setting{},
		&models.Chef{},
		&models.ChefCategory{},
		&models.Admin{},
		&models.CartSession{},
	}
	return db.AutoMigrate(append(base, extra...)...)
}

// publish pushes a change event without ever blocking a writer. A full
// buffer drops the event; the next poll or write re-syncs the consumer.
func (s *gormStore) publish(table, action string) {
	select {
	case s.events <- ChangeEvent{Table: table, Action: action}:
	default:
	}
}

func (s *gormStore) Events() <-chan ChangeEvent {
	return s.events
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ---- categories ----

func (s *gormStore) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("sort_order").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// ---- menu items ----

func (s *gormStore) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *gormStore) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(item)
	if res.Error != nil {
		return res.Error
	}
	s.publish(TableMenuItems, ActionUpdate)
	return nil
}

func (s *gormStore) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.publish(TableMenuItems, ActionDelete)
	return nil
}

// ---- orders ----

func (s *gormStore) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormStore) InsertOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	s.publish(TableOrders, ActionInsert)
	return nil
}

func (s *gormStore) SaveOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Save(order).Error; err != nil {
		return err
	}
	s.publish(TableOrders, ActionUpdate)
	return nil
}

func (s *gormStore) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish(TableOrders, ActionUpdate)
	return nil
}

func (s *gormStore) ActiveTokenNumbers(ctx context.Context) (map[int]struct{}, error) {
	var tokens []int
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ?", models.StatusDelivered).
		Pluck("token_number", &tokens).Error
	if err != nil {
		return nil, err
	}
	active := make(map[int]struct{}, len(tokens))
	for _, t := range tokens {
		if t > 0 {
			active[t] = struct{}{}
		}
	}
	return active, nil
}

// ---- settings ----

func (s *gormStore) RushHour(ctx context.Context) (bool, []string, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Find(&settings).Error; err != nil {
		return false, nil, err
	}
	mode := false
	var items []string
	for _, row := range settings {
		switch row.Key {
		case models.SettingRushHourMode:
			_ = json.Unmarshal([]byte(row.Value), &mode)
		case models.SettingRushHourItems:
			_ = json.Unmarshal([]byte(row.Value), &items)
		}
	}
	return mode, items, nil
}

func (s *gormStore) SaveSetting(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	row := models.Setting{Key: key, Value: string(raw), UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return err
	}
	s.publish(TableSettings, ActionUpdate)
	return nil
}

// ---- chefs & assignments ----

func (s *gormStore) Chefs(ctx context.Context) ([]models.Chef, error) {
	var chefs []models.Chef
	if err := s.db.WithContext(ctx).Order("created_at").Find(&chefs).Error; err != nil {
		return nil, err
	}
	return chefs, nil
}

func (s *gormStore) SaveChef(ctx context.Context, chef *models.Chef) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(chef).Error; err != nil {
		return err
	}
	s.publish(TableChefs, ActionUpdate)
	return nil
}

func (s *gormStore) DeleteChef(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ChefCategory{}, "chef_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chef{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.publish(TableChefs, ActionDelete)
	return nil
}

func (s *gormStore) Assignments(ctx context.Context) ([]models.ChefCategory, error) {
	var rows []models.ChefCategory
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AssignCategories replaces the chef's assignment set. The listed categories
// are also stripped from every other chef, keeping the single-owner
// invariant.
func (s *gormStore) AssignCategories(ctx context.Context, chefID string, categoryIDs []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ChefCategory{}, "chef_id = ?", chefID).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		if err := tx.Delete(&models.ChefCategory{}, "category_id IN ?", categoryIDs).Error; err != nil {
			return err
		}
		rows := make([]models.ChefCategory, 0, len(categoryIDs))
		for _, catID := range categoryIDs {
			rows = append(rows, models.ChefCategory{ChefID: chefID, CategoryID: catID})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return err
	}
	s.publish(TableChefCats, ActionUpdate)
	return nil
}

// ---- cart sessions ----

func (s *gormStore) CartSession(ctx context.Context, visitorID string) (*models.CartSession, error) {
	var session models.CartSession
	err := s.db.WithContext(ctx).First(&session, "visitor_id = ?", visitorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *gormStore) SaveCartSession(ctx context.Context, session *models.CartSession) error {
	session.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(session).Error
}

// PurgeDeliveredOrder strips a delivered order from every visitor-side
// cache: active order lists and last-order snapshots. Cart sessions are few
// and small, so they are rewritten in memory.
func (s *gormStore) PurgeDeliveredOrder(ctx context.Context, orderID string) error {
	var sessions []models.CartSession
	if err := s.db.WithContext(ctx).Find(&sessions).Error; err != nil {
		return err
	}
	for i := range sessions {
		session := &sessions[i]
		changed := false
		kept := session.ActiveOrderIDs[:0]
		for _, id := range session.ActiveOrderIDs {
			if id == orderID {
				changed = true
				continue
			}
			kept = append(kept, id)
		}
		session.ActiveOrderIDs = kept
		if session.LastOrderID == orderID {
			session.LastOrderID = ""
			changed = true
		}
		if changed {
			if err := s.SaveCartSession(ctx, session); err != nil {
				return err
			}
		}
	}
	return nil
}

// ---- admins ----

func (s *gormStore) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *gormStore) SaveAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(admin).Error
}
