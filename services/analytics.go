package services

import (
	"sort"
	"time"

	"campus-canteen/models"
)

// TopSeller is one row of the best-sellers table.
type TopSeller struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int    `json:"revenue"`
}

// AnalyticsSummary aggregates the order history for the admin dashboard.
// Amounts are rupees, AverageOrderValue is truncated integer division.
type AnalyticsSummary struct {
	TotalOrders       int         `json:"totalOrders"`
	TotalRevenue      int         `json:"totalRevenue"`
	AverageOrderValue int         `json:"averageOrderValue"`
	DineInOrders      int         `json:"dineInOrders"`
	PreorderOrders    int         `json:"preorderOrders"`
	BusiestHour       int         `json:"busiestHour"` // 0-23, -1 when no orders
	OrdersByHour      [24]int     `json:"ordersByHour"`
	TopSellers        []TopSeller `json:"topSellers"`
}

// Summarize folds orders placed in [from, to) into a dashboard summary.
// Zero bounds mean unbounded on that side. All statuses count — a pending
// order is still revenue in the making, and the original dashboard made no
// distinction either.
func Summarize(orders []models.Order, from, to time.Time) AnalyticsSummary {
	s := AnalyticsSummary{BusiestHour: -1}
	sellers := make(map[string]*TopSeller)

	for _, o := range orders {
		if !from.IsZero() && o.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !o.CreatedAt.Before(to) {
			continue
		}

		s.TotalOrders++
		s.TotalRevenue += o.TotalAmount
		switch o.OrderType {
		case models.OrderTypePreorder:
			s.PreorderOrders++
		default:
			s.DineInOrders++
		}
		s.OrdersByHour[o.CreatedAt.Hour()]++

		for _, line := range o.Items {
			ts, ok := sellers[line.MenuItem.ID]
			if !ok {
				ts = &TopSeller{ItemID: line.MenuItem.ID, Name: line.MenuItem.Name}
				sellers[line.MenuItem.ID] = ts
			}
			ts.Quantity += line.Quantity
			ts.Revenue += line.TotalPrice
		}
	}

	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / s.TotalOrders
		best := 0
		for h, n := range s.OrdersByHour {
			if n > s.OrdersByHour[best] {
				best = h
			}
		}
		s.BusiestHour = best
	}

	ranked := make([]TopSeller, 0, len(sellers))
	for _, ts := range sellers {
		ranked = append(ranked, *ts)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	s.TopSellers = ranked
	return s
}
