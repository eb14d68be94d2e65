package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"campus-canteen/models"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Time{}, time.Time{})
	assert.Equal(t, 0, s.TotalOrders)
	assert.Equal(t, 0, s.TotalRevenue)
	assert.Equal(t, 0, s.AverageOrderValue)
	assert.Equal(t, -1, s.BusiestHour)
	assert.Empty(t, s.TopSellers)
}

func TestSummarizeTotalsAndSplit(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{
			OrderType: models.OrderTypeDineIn, TotalAmount: 200, CreatedAt: base,
			Items: []models.OrderItem{
				{MenuItem: models.MenuItemRef{ID: "masala-dosa", Name: "Masala Dosa"}, Quantity: 2, TotalPrice: 140},
				{MenuItem: models.MenuItemRef{ID: "masala-chai", Name: "Masala Chai"}, Quantity: 4, TotalPrice: 60},
			},
		},
		{
			OrderType: models.OrderTypePreorder, TotalAmount: 100, CreatedAt: base.Add(time.Hour),
			Items: []models.OrderItem{
				{MenuItem: models.MenuItemRef{ID: "masala-dosa", Name: "Masala Dosa"}, Quantity: 1, TotalPrice: 70},
			},
		},
		{
			OrderType: models.OrderTypeDineIn, TotalAmount: 45, CreatedAt: base.Add(5 * time.Minute),
			Items: []models.OrderItem{
				{MenuItem: models.MenuItemRef{ID: "kulfi", Name: "Matka Kulfi"}, Quantity: 1, TotalPrice: 45},
			},
		},
	}

	s := Summarize(orders, time.Time{}, time.Time{})

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 345, s.TotalRevenue)
	assert.Equal(t, 115, s.AverageOrderValue)
	assert.Equal(t, 2, s.DineInOrders)
	assert.Equal(t, 1, s.PreorderOrders)
	assert.Equal(t, 12, s.BusiestHour)

	// chai leads by quantity even though dosa earns more.
	assert.Equal(t, "masala-chai", s.TopSellers[0].ItemID)
	assert.Equal(t, 4, s.TopSellers[0].Quantity)
	assert.Equal(t, "masala-dosa", s.TopSellers[1].ItemID)
	assert.Equal(t, 3, s.TopSellers[1].Quantity)
	assert.Equal(t, 210, s.TopSellers[1].Revenue)
}

func TestSummarizeWindow(t *testing.T) {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{TotalAmount: 10, CreatedAt: base.Add(-time.Hour)},
		{TotalAmount: 20, CreatedAt: base},
		{TotalAmount: 30, CreatedAt: base.Add(time.Hour)},
	}

	s := Summarize(orders, base, base.Add(time.Hour))
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, 20, s.TotalRevenue)
}

func TestSummarizeTopFiveOnly(t *testing.T) {
	order := models.Order{CreatedAt: time.Now()}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		order.Items = append(order.Items, models.OrderItem{
			MenuItem: models.MenuItemRef{ID: id, Name: id}, Quantity: 1, TotalPrice: 10,
		})
	}

	s := Summarize([]models.Order{order}, time.Time{}, time.Time{})
	assert.Len(t, s.TopSellers, 5)
}
