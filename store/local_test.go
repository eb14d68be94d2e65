package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-canteen/models"
)

func openLocal(t *testing.T, name string) *Local {
	t.Helper()
	l, err := OpenLocal("file:"+name+"?mode=memory&cache=shared", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func menuByID(items []models.MenuItem) map[string]models.MenuItem {
	m := make(map[string]models.MenuItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

func TestLocalServesBundledMenu(t *testing.T) {
	l := openLocal(t, "local_defaults")
	ctx := context.Background()

	cats, err := l.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(DefaultCategories()))

	items, err := l.MenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultMenuItems()))
	assert.Contains(t, menuByID(items), "masala-dosa")
}

func TestLocalOverridesDefault(t *testing.T) {
	l := openLocal(t, "local_override")
	ctx := context.Background()

	dosa := models.MenuItem{
		ID: "masala-dosa", Name: "Masala Dosa", Price: 85, CategoryID: "breakfast",
		IsAvailable: false, Version: 2,
	}
	require.NoError(t, l.SaveMenuItem(ctx, &dosa))

	items, err := l.MenuItems(ctx)
	require.NoError(t, err)
	got := menuByID(items)["masala-dosa"]
	assert.Equal(t, 85, got.Price)
	assert.False(t, got.IsAvailable)
	assert.Len(t, items, len(DefaultMenuItems()), "override replaces, never duplicates")
}

func TestLocalTombstonesDefault(t *testing.T) {
	l := openLocal(t, "local_tombstone")
	ctx := context.Background()

	require.NoError(t, l.DeleteMenuItem(ctx, "kulfi"))

	items, err := l.MenuItems(ctx)
	require.NoError(t, err)
	assert.NotContains(t, menuByID(items), "kulfi")

	// Re-adding clears the tombstone.
	kulfi := models.MenuItem{ID: "kulfi", Name: "Matka Kulfi", Price: 50, CategoryID: "desserts", IsAvailable: true}
	require.NoError(t, l.SaveMenuItem(ctx, &kulfi))
	items, err = l.MenuItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, menuByID(items)["kulfi"].Price)
}

func TestLocalKeepsAdminAddedItems(t *testing.T) {
	l := openLocal(t, "local_custom")
	ctx := context.Background()

	custom := models.MenuItem{ID: "filter-coffee", Name: "Filter Coffee", Price: 25, CategoryID: "beverages", IsAvailable: true}
	require.NoError(t, l.SaveMenuItem(ctx, &custom))

	items, err := l.MenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(DefaultMenuItems())+1)

	require.NoError(t, l.DeleteMenuItem(ctx, "filter-coffee"))
	items, err = l.MenuItems(ctx)
	require.NoError(t, err)
	assert.NotContains(t, menuByID(items), "filter-coffee")
}

func TestLocalPollPublishesReload(t *testing.T) {
	l, err := OpenLocal("file:local_poll?mode=memory&cache=shared", 10*time.Millisecond)
	require.NoError(t, err)
	defer l.Close()

	select {
	case ev := <-l.Events():
		assert.Equal(t, ActionReload, ev.Action)
	case <-time.After(time.Second):
		t.Fatal("no reload tick within a second")
	}
}

func TestPurgeDeliveredOrder(t *testing.T) {
	l := openLocal(t, "local_purge")
	ctx := context.Background()

	sess := models.CartSession{
		VisitorID:      "visitor-1",
		OrderType:      models.OrderTypeDineIn,
		ActiveOrderIDs: []string{"#1-RDA-AAAA", "#2-RDA-BBBB"},
		LastOrderID:    "#2-RDA-BBBB",
	}
	require.NoError(t, l.SaveCartSession(ctx, &sess))

	require.NoError(t, l.PurgeDeliveredOrder(ctx, "#2-RDA-BBBB"))

	got, err := l.CartSession(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"#1-RDA-AAAA"}, got.ActiveOrderIDs)
	assert.Empty(t, got.LastOrderID)
}

func TestAssignCategoriesSingleOwner(t *testing.T) {
	l := openLocal(t, "local_assign")
	ctx := context.Background()

	require.NoError(t, l.SaveChef(ctx, &models.Chef{ID: "chef-a", Name: "Asha", IsActive: true}))
	require.NoError(t, l.SaveChef(ctx, &models.Chef{ID: "chef-b", Name: "Binod", IsActive: true}))

	require.NoError(t, l.AssignCategories(ctx, "chef-a", []string{"breakfast", "chaat"}))
	require.NoError(t, l.AssignCategories(ctx, "chef-b", []string{"chaat"}))

	rows, err := l.Assignments(ctx)
	require.NoError(t, err)

	owner := make(map[string]string)
	for _, r := range rows {
		owner[r.CategoryID] = r.ChefID
	}
	assert.Equal(t, "chef-a", owner["breakfast"])
	assert.Equal(t, "chef-b", owner["chaat"], "assignment steals the category from the previous owner")
	assert.Len(t, rows, 2)
}
