package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campus-canteen/models"
	"campus-canteen/realtime"
	"campus-canteen/store"
)

var (
	ErrItemNotFound  = errors.New("menu item not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrDuplicateID   = errors.New("menu item id already exists")
)

// State is the single source of truth for menu items, categories, orders
// and rush-hour configuration. Mutations are optimistic: the in-memory
// snapshot changes first, the backing store write follows, and write
// failures are logged without rolling back — the next reload reconciles
// from the store. Reloads are idempotent, so duplicate change events and
// poll ticks are harmless.
type State struct {
	store store.Store
	hub   *realtime.Hub
	log   *logrus.Logger

	mu            sync.RWMutex
	categories    []models.Category
	items         []models.MenuItem
	orders        []models.Order
	rushHourMode  bool
	rushHourItems []string

	stop chan struct{}
	done chan struct{}
}

// NewState wires the container. hub may be nil (tests); events are then
// consumed without fan-out.
func NewState(s store.Store, hub *realtime.Hub, log *logrus.Logger) *State {
	return &State{
		store: s,
		hub:   hub,
		log:   log,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Load pulls a full snapshot from the store. Menu items merge with
// last-writer-wins semantics: an in-memory item whose version is newer than
// the incoming row is kept, because its write may still be in flight.
func (st *State) Load(ctx context.Context) error {
	cats, err := st.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	items, err := st.store.MenuItems(ctx)
	if err != nil {
		return fmt.Errorf("load menu items: %w", err)
	}
	orders, err := st.store.Orders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	mode, rushItems, err := st.store.RushHour(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	current := make(map[string]models.MenuItem, len(st.items))
	for _, it := range st.items {
		current[it.ID] = it
	}
	for i, in := range items {
		if cur, ok := current[in.ID]; ok && cur.Version > in.Version {
			items[i] = cur
		}
	}

	st.categories = cats
	st.items = items
	st.orders = orders
	st.rushHourMode = mode
	st.rushHourItems = rushItems
	return nil
}

// Start consumes the store's change feed until Stop is called. Both re-sync
// triggers arrive here: the remote store publishes per-write events, the
// local store a fixed-interval reload tick.
func (st *State) Start() {
	go func() {
		defer close(st.done)
		events := st.store.Events()
		for {
			select {
			case ev := <-events:
				if err := st.Load(context.Background()); err != nil {
					st.log.Errorf("reload after %s/%s: %v", ev.Table, ev.Action, err)
					continue
				}
				st.fanOut(ev)
			case <-st.stop:
				return
			}
		}
	}()
}

func (st *State) Stop() {
	close(st.stop)
	<-st.done
}

func (st *State) fanOut(ev store.ChangeEvent) {
	if st.hub == nil {
		return
	}
	switch ev.Table {
	case store.TableMenuItems, store.TableCategories:
		st.hub.BroadcastMenuUpdate(st.MenuItems())
	case store.TableOrders:
		st.hub.BroadcastOrderUpdate(st.Orders())
		st.hub.BroadcastKitchenUpdate(ev)
	case store.TableSettings:
		mode, items := st.RushHour()
		st.hub.BroadcastSettingsUpdate(map[string]interface{}{
			"rush_hour_mode":  mode,
			"rush_hour_items": items,
		})
	case store.TableChefs, store.TableChefCats:
		st.hub.BroadcastKitchenUpdate(ev)
	}
}

// ---- snapshot getters ----

func (st *State) Categories() []models.Category {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Category, len(st.categories))
	copy(out, st.categories)
	return out
}

func (st *State) MenuItems() []models.MenuItem {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.MenuItem, len(st.items))
	copy(out, st.items)
	return out
}

// AvailableItems returns only items customers can currently order.
func (st *State) AvailableItems() []models.MenuItem {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.MenuItem, 0, len(st.items))
	for _, it := range st.items {
		if it.IsAvailable {
			out = append(out, it)
		}
	}
	return out
}

func (st *State) MenuItem(id string) (models.MenuItem, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, it := range st.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// FindExtra searches every menu item's extras for the given id.
func (st *State) FindExtra(id string) (models.Extra, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, it := range st.items {
		for _, e := range it.Extras {
			if e.ID == id {
				return e, true
			}
		}
	}
	return models.Extra{}, false
}

// ItemCategories maps menu item id -> category id, used by kitchen routing.
func (st *State) ItemCategories() map[string]string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	m := make(map[string]string, len(st.items))
	for _, it := range st.items {
		m[it.ID] = it.CategoryID
	}
	return m
}

func (st *State) Orders() []models.Order {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]models.Order, len(st.orders))
	copy(out, st.orders)
	return out
}

func (st *State) Order(orderID string) (models.Order, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, o := range st.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// OrdersForVisitor returns the visitor's non-delivered orders, newest
// first. Delivered orders disappear from tracking.
func (st *State) OrdersForVisitor(visitorID string) []models.Order {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []models.Order
	for _, o := range st.orders {
		if o.VisitorID == visitorID && o.Status != models.StatusDelivered {
			out = append(out, o)
		}
	}
	return out
}

func (st *State) RushHour() (bool, []string) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	items := make([]string, len(st.rushHourItems))
	copy(items, st.rushHourItems)
	return st.rushHourMode, items
}

// ---- menu mutations ----

// mutateItem applies fn to the item in place, bumps its version and writes
// the full row through. Store failure is logged only.
func (st *State) mutateItem(ctx context.Context, id string, fn func(*models.MenuItem)) error {
	st.mu.Lock()
	var updated *models.MenuItem
	for i := range st.items {
		if st.items[i].ID == id {
			fn(&st.items[i])
			st.items[i].Version++
			st.items[i].UpdatedAt = time.Now()
			cp := st.items[i]
			updated = &cp
			break
		}
	}
	st.mu.Unlock()

	if updated == nil {
		return ErrItemNotFound
	}
	if err := st.store.SaveMenuItem(ctx, updated); err != nil {
		st.log.Errorf("write menu item %s: %v", id, err)
	}
	return nil
}

func (st *State) ToggleItemAvailability(ctx context.Context, id string) error {
	return st.mutateItem(ctx, id, func(it *models.MenuItem) {
		it.IsAvailable = !it.IsAvailable
	})
}

func (st *State) UpdateItemPrice(ctx context.Context, id string, price int) error {
	if price <= 0 {
		return models.ErrInvalidPrice
	}
	return st.mutateItem(ctx, id, func(it *models.MenuItem) {
		it.Price = price
	})
}

func (st *State) AddMenuItem(ctx context.Context, item models.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	st.mu.Lock()
	for _, it := range st.items {
		if it.ID == item.ID {
			st.mu.Unlock()
			return ErrDuplicateID
		}
	}
	item.Version = 1
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	st.items = append(st.items, item)
	st.mu.Unlock()

	if err := st.store.SaveMenuItem(ctx, &item); err != nil {
		st.log.Errorf("write new menu item %s: %v", item.ID, err)
	}
	return nil
}

// MenuItemUpdate is a partial update; nil fields are left untouched.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *int
	CategoryID  *string
	Tags        *[]string
	IsAvailable *bool
	Image       *string
	AddOns      *[]models.AddOn
	Extras      *[]models.Extra
}

func (st *State) UpdateMenuItem(ctx context.Context, id string, upd MenuItemUpdate) error {
	if upd.Price != nil && *upd.Price <= 0 {
		return models.ErrInvalidPrice
	}
	if upd.Name != nil && *upd.Name == "" {
		return models.ErrEmptyName
	}
	return st.mutateItem(ctx, id, func(it *models.MenuItem) {
		if upd.Name != nil {
			it.Name = *upd.Name
		}
		if upd.Description != nil {
			it.Description = *upd.Description
		}
		if upd.Price != nil {
			it.Price = *upd.Price
		}
		if upd.CategoryID != nil {
			it.CategoryID = *upd.CategoryID
		}
		if upd.Tags != nil {
			it.Tags = *upd.Tags
		}
		if upd.IsAvailable != nil {
			it.IsAvailable = *upd.IsAvailable
		}
		if upd.Image != nil {
			it.Image = *upd.Image
		}
		if upd.AddOns != nil {
			it.AddOns = *upd.AddOns
		}
		if upd.Extras != nil {
			it.Extras = *upd.Extras
		}
	})
}

func (st *State) DeleteMenuItem(ctx context.Context, id string) error {
	st.mu.Lock()
	found := false
	kept := st.items[:0]
	for _, it := range st.items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	st.items = kept
	st.mu.Unlock()

	if !found {
		return ErrItemNotFound
	}
	if err := st.store.DeleteMenuItem(ctx, id); err != nil {
		st.log.Errorf("delete menu item %s: %v", id, err)
	}
	return nil
}

// ---- rush hour ----

// SetRushHourMode flips rush hour on or off. Every item in the suppression
// list is forced unavailable on entry and forced available on exit — the
// pre-rush value is intentionally not restored. Each item is one store
// write; a partial failure leaves a mixed state until the next reload.
func (st *State) SetRushHourMode(ctx context.Context, mode bool) {
	st.mu.Lock()
	st.rushHourMode = mode
	suppressed := make(map[string]struct{}, len(st.rushHourItems))
	for _, id := range st.rushHourItems {
		suppressed[id] = struct{}{}
	}
	var writes []models.MenuItem
	for i := range st.items {
		if _, ok := suppressed[st.items[i].ID]; !ok {
			continue
		}
		st.items[i].IsAvailable = !mode
		st.items[i].Version++
		st.items[i].UpdatedAt = time.Now()
		writes = append(writes, st.items[i])
	}
	st.mu.Unlock()

	for i := range writes {
		if err := st.store.SaveMenuItem(ctx, &writes[i]); err != nil {
			st.log.Errorf("rush hour write for %s: %v", writes[i].ID, err)
		}
	}
	if err := st.store.SaveSetting(ctx, models.SettingRushHourMode, mode); err != nil {
		st.log.Errorf("save rush hour mode: %v", err)
	}
}

// ToggleRushHourItem adds or removes an item from the suppression list.
// Availability of the item is untouched until the mode is next toggled.
func (st *State) ToggleRushHourItem(ctx context.Context, id string) {
	st.mu.Lock()
	found := false
	kept := st.rushHourItems[:0]
	for _, existing := range st.rushHourItems {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		kept = append(kept, id)
	}
	st.rushHourItems = kept
	items := make([]string, len(kept))
	copy(items, kept)
	st.mu.Unlock()

	if err := st.store.SaveSetting(ctx, models.SettingRushHourItems, items); err != nil {
		st.log.Errorf("save rush hour items: %v", err)
	}
}

func (st *State) SetRushHourItems(ctx context.Context, ids []string) {
	st.mu.Lock()
	st.rushHourItems = append([]string(nil), ids...)
	st.mu.Unlock()

	if err := st.store.SaveSetting(ctx, models.SettingRushHourItems, ids); err != nil {
		st.log.Errorf("save rush hour items: %v", err)
	}
}

// ---- orders ----

// AddOrder stamps the order "pending", prepends it to the order list and
// writes through.
func (st *State) AddOrder(ctx context.Context, order *models.Order) error {
	order.Status = models.StatusPending
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.EstimatedMinutes == 0 {
		order.EstimatedMinutes = models.DefaultEstimatedMinutes
	}

	st.mu.Lock()
	st.orders = append([]models.Order{*order}, st.orders...)
	st.mu.Unlock()

	if err := st.store.InsertOrder(ctx, order); err != nil {
		st.log.Errorf("write order %s: %v", order.OrderID, err)
	}
	return nil
}

// UpdateOrderStatus advances an order through its lifecycle. Backward
// transitions are rejected. Reaching "delivered" purges the order from
// every customer-side cache.
func (st *State) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}

	st.mu.Lock()
	idx := -1
	for i := range st.orders {
		if st.orders[i].OrderID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		st.mu.Unlock()
		return ErrOrderNotFound
	}
	if err := models.CanTransition(st.orders[idx].Status, status); err != nil {
		st.mu.Unlock()
		return err
	}
	st.orders[idx].Status = status
	st.mu.Unlock()

	if err := st.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		st.log.Errorf("write status %s for order %s: %v", status, orderID, err)
	}
	if status == models.StatusDelivered {
		if err := st.store.PurgeDeliveredOrder(ctx, orderID); err != nil {
			st.log.Errorf("purge delivered order %s: %v", orderID, err)
		}
	}
	return nil
}

// MarkItemReady ticks one order line off in the kitchen. When the last
// line is ticked the whole order jumps to "delivered"; otherwise the order
// settles on "preparing". Returns whether the order was completed.
func (st *State) MarkItemReady(ctx context.Context, orderID, itemID string) (bool, error) {
	st.mu.Lock()
	idx := -1
	for i := range st.orders {
		if st.orders[i].OrderID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		st.mu.Unlock()
		return false, ErrOrderNotFound
	}

	order := &st.orders[idx]
	itemFound := false
	for i := range order.Items {
		if order.Items[i].ItemID == itemID {
			order.Items[i].Ready = true
			itemFound = true
			break
		}
	}
	if !itemFound {
		st.mu.Unlock()
		return false, fmt.Errorf("order %s has no item %s", orderID, itemID)
	}

	delivered := order.AllItemsReady()
	if delivered {
		order.Status = models.StatusDelivered
	} else if order.Status == models.StatusPending {
		order.Status = models.StatusPreparing
	}
	snapshot := *order
	st.mu.Unlock()

	if err := st.store.SaveOrder(ctx, &snapshot); err != nil {
		st.log.Errorf("write ticked order %s: %v", orderID, err)
	}
	if delivered {
		if err := st.store.PurgeDeliveredOrder(ctx, orderID); err != nil {
			st.log.Errorf("purge delivered order %s: %v", orderID, err)
		}
	}
	return delivered, nil
}
