package store

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"campus-canteen/config"
	"campus-canteen/models"
)

// Change actions, mirrored from the SQL action verbs the feed reports.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionReload = "RELOAD"
)

// Table names carried on change events.
const (
	TableCategories = "categories"
	TableMenuItems  = "menu_items"
	TableOrders     = "orders"
	TableSettings   = "settings"
	TableChefs      = "chefs"
	TableChefCats   = "chef_categories"
)

// ChangeEvent is published on the store's feed after every write so state
// containers can re-sync. Consumers treat every event as "reload now"; the
// table/action pair exists for logging and websocket fan-out.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// Store is the single persistence surface of the service. Two
// implementations exist: the MySQL-backed remote store (primary) and the
// SQLite-file local store (fallback, merges the compiled-in default menu).
// The implementation is chosen once at startup and never changes during a
// session.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)

	MenuItems(ctx context.Context) ([]models.MenuItem, error)
	SaveMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	Orders(ctx context.Context) ([]models.Order, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	SaveOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	ActiveTokenNumbers(ctx context.Context) (map[int]struct{}, error)

	RushHour(ctx context.Context) (mode bool, items []string, err error)
	SaveSetting(ctx context.Context, key string, value any) error

	Chefs(ctx context.Context) ([]models.Chef, error)
	SaveChef(ctx context.Context, chef *models.Chef) error
	DeleteChef(ctx context.Context, id string) error
	Assignments(ctx context.Context) ([]models.ChefCategory, error)
	AssignCategories(ctx context.Context, chefID string, categoryIDs []string) error

	CartSession(ctx context.Context, visitorID string) (*models.CartSession, error)
	SaveCartSession(ctx context.Context, session *models.CartSession) error
	PurgeDeliveredOrder(ctx context.Context, orderID string) error

	AdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	SaveAdmin(ctx context.Context, admin *models.Admin) error

	// Events is the change feed. It is never closed while the store is open;
	// slow consumers lose events rather than block writers.
	Events() <-chan ChangeEvent
	Close() error
}

// Open selects the backing store from the configuration: a MySQL DSN means
// the remote store, anything else falls back to the local SQLite file with a
// warning. The choice is made exactly once.
func Open(cfg config.Config, log *logrus.Logger) (Store, error) {
	if cfg.MySQLDSN != "" {
		return OpenRemote(cfg.MySQLDSN)
	}
	log.Warnf("MYSQL_DSN not configured, falling back to local store at %s", cfg.SQLitePath)
	return OpenLocal(cfg.SQLitePath, cfg.ReloadInterval)
}
