package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campus-canteen/models"
)

func kitchenFixtures() ([]models.Order, []models.Chef, []models.ChefCategory, map[string]string) {
	now := time.Now()
	orders := []models.Order{
		{
			OrderID:     "#12-RDA-AAAA",
			TokenNumber: 12,
			Status:      models.StatusPending,
			CreatedAt:   now.Add(-2 * time.Minute),
			Items: []models.OrderItem{
				{ItemID: "i1", MenuItem: models.MenuItemRef{ID: "masala-dosa"}, Quantity: 1, Position: 0},
				{ItemID: "i2", MenuItem: models.MenuItemRef{ID: "masala-chai"}, Quantity: 2, Position: 1},
			},
		},
		{
			OrderID:     "#13-RDA-BBBB",
			TokenNumber: 13,
			Status:      models.StatusPreparing,
			CreatedAt:   now.Add(-1 * time.Minute),
			Items: []models.OrderItem{
				{ItemID: "i3", MenuItem: models.MenuItemRef{ID: "masala-dosa"}, Quantity: 1, Position: 0, Ready: true},
			},
		},
		{
			OrderID:     "#14-RDA-CCCC",
			TokenNumber: 14,
			Status:      models.StatusDelivered,
			CreatedAt:   now,
			Items: []models.OrderItem{
				{ItemID: "i4", MenuItem: models.MenuItemRef{ID: "masala-chai"}, Quantity: 1, Position: 0, Ready: true},
			},
		},
	}
	chefs := []models.Chef{
		{ID: "chef-a", Name: "Asha", IsActive: true},
		{ID: "chef-b", Name: "Binod", IsActive: true},
		{ID: "chef-c", Name: "Chitra", IsActive: false},
	}
	assignments := []models.ChefCategory{
		{ChefID: "chef-a", CategoryID: "breakfast"},
		{ChefID: "chef-b", CategoryID: "beverages"},
		{ChefID: "chef-c", CategoryID: "desserts"},
	}
	itemCategory := map[string]string{
		"masala-dosa": "breakfast",
		"masala-chai": "beverages",
		"gulab-jamun": "desserts",
	}
	return orders, chefs, assignments, itemCategory
}

func TestBuildChefQueuesSplitsOrderAcrossChefs(t *testing.T) {
	orders, chefs, assignments, itemCategory := kitchenFixtures()

	queues := BuildChefQueues(orders, chefs, assignments, itemCategory)

	// The first order has one breakfast line and one beverages line, so
	// each chef sees a slice of the same order.
	assert.Len(t, queues["chef-a"], 2)
	assert.Len(t, queues["chef-b"], 1)

	first := queues["chef-a"][0]
	assert.Equal(t, "#12-RDA-AAAA", first.OrderID)
	assert.Len(t, first.Lines, 1)
	assert.Equal(t, "masala-dosa", first.Lines[0].MenuItem.ID)

	bev := queues["chef-b"][0]
	assert.Equal(t, "#12-RDA-AAAA", bev.OrderID)
	assert.Equal(t, "masala-chai", bev.Lines[0].MenuItem.ID)
}

func TestBuildChefQueuesExcludesClosedOrders(t *testing.T) {
	orders, chefs, assignments, itemCategory := kitchenFixtures()

	queues := BuildChefQueues(orders, chefs, assignments, itemCategory)
	for _, groups := range queues {
		for _, g := range groups {
			assert.NotEqual(t, "#14-RDA-CCCC", g.OrderID, "delivered orders stay out of the kitchen")
		}
	}
}

func TestBuildChefQueuesOldestFirst(t *testing.T) {
	orders, chefs, assignments, itemCategory := kitchenFixtures()

	queues := BuildChefQueues(orders, chefs, assignments, itemCategory)
	groups := queues["chef-a"]
	assert.Len(t, groups, 2)
	assert.True(t, groups[0].CreatedAt < groups[1].CreatedAt)
}

func TestBuildChefQueuesDropsInactiveAndUnassigned(t *testing.T) {
	orders, chefs, assignments, itemCategory := kitchenFixtures()
	orders = append(orders, models.Order{
		OrderID:   "#15-RDA-DDDD",
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
		Items: []models.OrderItem{
			// Owned by the inactive chef only.
			{ItemID: "i5", MenuItem: models.MenuItemRef{ID: "gulab-jamun"}, Quantity: 1},
			// Category nobody owns.
			{ItemID: "i6", MenuItem: models.MenuItemRef{ID: "pani-puri"}, Quantity: 1},
		},
	})
	itemCategory["pani-puri"] = "chaat"

	queues := BuildChefQueues(orders, chefs, assignments, itemCategory)
	_, hasInactive := queues["chef-c"]
	assert.False(t, hasInactive)
	for _, groups := range queues {
		for _, g := range groups {
			assert.NotEqual(t, "#15-RDA-DDDD", g.OrderID)
		}
	}
}

func TestUnassignedCategories(t *testing.T) {
	_, chefs, assignments, _ := kitchenFixtures()
	categories := []models.Category{
		{ID: "breakfast"}, {ID: "beverages"}, {ID: "desserts"}, {ID: "chaat"},
	}

	unassigned := UnassignedCategories(categories, chefs, assignments)

	// desserts belongs to an inactive chef, chaat to nobody.
	assert.ElementsMatch(t, []string{"desserts", "chaat"}, unassigned)
}

func TestPendingCounts(t *testing.T) {
	orders, chefs, assignments, itemCategory := kitchenFixtures()

	queues := BuildChefQueues(orders, chefs, assignments, itemCategory)
	counts := PendingCounts(queues)

	// chef-a: one open dosa line plus one already-ready line from the
	// second order; only the open one counts.
	assert.Equal(t, 1, counts["chef-a"])
	assert.Equal(t, 1, counts["chef-b"])
}
