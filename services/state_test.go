package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-canteen/models"
	"campus-canteen/store"
)

func newTestState(t *testing.T, name string) (*State, store.Store) {
	t.Helper()
	s := openTestStore(t, name)
	st := NewState(s, nil, testLogger())
	require.NoError(t, st.Load(context.Background()))
	return st, s
}

func sampleOrder(id string, items ...models.OrderItem) *models.Order {
	if len(items) == 0 {
		items = []models.OrderItem{
			{ItemID: "line-1", MenuItem: models.MenuItemRef{ID: "poha", Name: "Poha", Price: 40}, Quantity: 1, TotalPrice: 40},
		}
	}
	return &models.Order{
		OrderID:     id,
		OrderType:   models.OrderTypeDineIn,
		TableNumber: "4",
		TokenNumber: 4,
		Items:       items,
		TotalAmount: 40,
		VisitorID:   "visitor-1",
	}
}

func TestAddOrderStampsPending(t *testing.T) {
	st, _ := newTestState(t, "state_add_order")
	ctx := context.Background()

	order := sampleOrder("#4-RDA-AAAA")
	order.Status = "delivered" // whatever the caller claims is overwritten
	require.NoError(t, st.AddOrder(ctx, order))

	got, ok := st.Order("#4-RDA-AAAA")
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.DefaultEstimatedMinutes, got.EstimatedMinutes)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpdateOrderStatusForwardOnly(t *testing.T) {
	st, _ := newTestState(t, "state_status")
	ctx := context.Background()

	require.NoError(t, st.AddOrder(ctx, sampleOrder("#5-RDA-AAAA")))

	require.NoError(t, st.UpdateOrderStatus(ctx, "#5-RDA-AAAA", models.StatusPreparing))
	assert.ErrorIs(t, st.UpdateOrderStatus(ctx, "#5-RDA-AAAA", models.StatusPending), models.ErrBackwardTransition)
	require.NoError(t, st.UpdateOrderStatus(ctx, "#5-RDA-AAAA", models.StatusReady))

	assert.ErrorIs(t, st.UpdateOrderStatus(ctx, "missing", models.StatusReady), ErrOrderNotFound)
	assert.Error(t, st.UpdateOrderStatus(ctx, "#5-RDA-AAAA", "cancelled"))
}

func TestDeliveredPurgesVisitorCaches(t *testing.T) {
	st, s := newTestState(t, "state_purge")
	ctx := context.Background()

	sess := &models.CartSession{
		VisitorID:      "visitor-1",
		OrderType:      models.OrderTypeDineIn,
		ActiveOrderIDs: []string{"#6-RDA-AAAA", "#7-RDA-BBBB"},
		LastOrderID:    "#6-RDA-AAAA",
	}
	require.NoError(t, s.SaveCartSession(ctx, sess))
	require.NoError(t, st.AddOrder(ctx, sampleOrder("#6-RDA-AAAA")))

	require.NoError(t, st.UpdateOrderStatus(ctx, "#6-RDA-AAAA", models.StatusDelivered))

	got, err := s.CartSession(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"#7-RDA-BBBB"}, got.ActiveOrderIDs)
	assert.Empty(t, got.LastOrderID)

	// Delivered orders vanish from the visitor's tracking view.
	assert.Empty(t, st.OrdersForVisitor("visitor-1"))
}

func TestMarkItemReadyLifecycle(t *testing.T) {
	st, _ := newTestState(t, "state_tick")
	ctx := context.Background()

	order := sampleOrder("#8-RDA-AAAA",
		models.OrderItem{ItemID: "line-1", MenuItem: models.MenuItemRef{ID: "poha"}, Quantity: 1},
		models.OrderItem{ItemID: "line-2", MenuItem: models.MenuItemRef{ID: "masala-chai"}, Quantity: 1},
	)
	require.NoError(t, st.AddOrder(ctx, order))

	delivered, err := st.MarkItemReady(ctx, "#8-RDA-AAAA", "line-1")
	require.NoError(t, err)
	assert.False(t, delivered)
	got, _ := st.Order("#8-RDA-AAAA")
	assert.Equal(t, models.StatusPreparing, got.Status)

	delivered, err = st.MarkItemReady(ctx, "#8-RDA-AAAA", "line-2")
	require.NoError(t, err)
	assert.True(t, delivered, "last tick delivers the whole order")
	got, _ = st.Order("#8-RDA-AAAA")
	assert.Equal(t, models.StatusDelivered, got.Status)

	_, err = st.MarkItemReady(ctx, "#8-RDA-AAAA", "line-9")
	assert.Error(t, err)
	_, err = st.MarkItemReady(ctx, "missing", "line-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRushHourForcesAvailability(t *testing.T) {
	st, _ := newTestState(t, "state_rush")
	ctx := context.Background()

	st.SetRushHourItems(ctx, []string{"masala-dosa", "chole-bhature"})
	st.SetRushHourMode(ctx, true)

	dosa, ok := st.MenuItem("masala-dosa")
	require.True(t, ok)
	assert.False(t, dosa.IsAvailable)
	chole, _ := st.MenuItem("chole-bhature")
	assert.False(t, chole.IsAvailable)

	// Untouched items keep their availability.
	poha, _ := st.MenuItem("poha")
	assert.True(t, poha.IsAvailable)

	st.SetRushHourMode(ctx, false)
	dosa, _ = st.MenuItem("masala-dosa")
	assert.True(t, dosa.IsAvailable, "leaving rush hour forces suppressed items back on")

	mode, items := st.RushHour()
	assert.False(t, mode)
	assert.ElementsMatch(t, []string{"masala-dosa", "chole-bhature"}, items)
}

func TestToggleRushHourItem(t *testing.T) {
	st, _ := newTestState(t, "state_rush_toggle")
	ctx := context.Background()

	st.ToggleRushHourItem(ctx, "kulfi")
	_, items := st.RushHour()
	assert.Contains(t, items, "kulfi")

	st.ToggleRushHourItem(ctx, "kulfi")
	_, items = st.RushHour()
	assert.NotContains(t, items, "kulfi")
}

func TestMenuMutations(t *testing.T) {
	st, _ := newTestState(t, "state_menu")
	ctx := context.Background()

	require.NoError(t, st.UpdateItemPrice(ctx, "poha", 55))
	poha, _ := st.MenuItem("poha")
	assert.Equal(t, 55, poha.Price)
	assert.ErrorIs(t, st.UpdateItemPrice(ctx, "poha", 0), models.ErrInvalidPrice)

	require.NoError(t, st.ToggleItemAvailability(ctx, "poha"))
	poha, _ = st.MenuItem("poha")
	assert.False(t, poha.IsAvailable)

	item := models.MenuItem{ID: "filter-coffee", Name: "Filter Coffee", Price: 25, CategoryID: "beverages", IsAvailable: true}
	require.NoError(t, st.AddMenuItem(ctx, item))
	assert.ErrorIs(t, st.AddMenuItem(ctx, item), ErrDuplicateID)

	require.NoError(t, st.DeleteMenuItem(ctx, "filter-coffee"))
	_, ok := st.MenuItem("filter-coffee")
	assert.False(t, ok)
	assert.ErrorIs(t, st.DeleteMenuItem(ctx, "filter-coffee"), ErrItemNotFound)
}

func TestLoadKeepsNewerLocalVersion(t *testing.T) {
	st, s := newTestState(t, "state_lww")
	ctx := context.Background()

	newer := models.MenuItem{ID: "poha", Name: "Poha Special", Price: 60, CategoryID: "breakfast", IsAvailable: true, Version: 5, UpdatedAt: time.Now()}
	require.NoError(t, s.SaveMenuItem(ctx, &newer))
	require.NoError(t, st.Load(ctx))

	// A stale write landing in the store must not clobber the newer
	// in-memory copy on the next reload.
	stale := models.MenuItem{ID: "poha", Name: "Poha", Price: 40, CategoryID: "breakfast", IsAvailable: true, Version: 3}
	require.NoError(t, s.SaveMenuItem(ctx, &stale))
	require.NoError(t, st.Load(ctx))

	got, ok := st.MenuItem("poha")
	require.True(t, ok)
	assert.Equal(t, int64(5), got.Version)
	assert.Equal(t, 60, got.Price)
}
