package services

import (
	"sort"

	"campus-canteen/models"
)

// Kitchen routing is a pure projection over the current snapshot: orders
// are split per chef by the category ownership map, nothing is stored.
// Each call rebuilds the queues from scratch, which keeps them consistent
// with whatever the state container holds at that instant.

// QueueLine is one order line routed to a chef's station.
type QueueLine struct {
	ItemID         string         `json:"itemId"`
	MenuItem       models.MenuItemRef `json:"menuItem"`
	Quantity       int            `json:"quantity"`
	SelectedAddOns []models.AddOn `json:"selectedAddOns,omitempty"`
	Position       int            `json:"position"`
	Ready          bool           `json:"ready"`
}

// OrderGroup is the slice of an order a single chef sees: only the lines
// whose categories that chef owns, plus enough header fields to call the
// token and judge urgency.
type OrderGroup struct {
	OrderID     string      `json:"orderId"`
	TokenNumber int         `json:"tokenNumber"`
	OrderType   string      `json:"orderType"`
	TableNumber string      `json:"tableNumber,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   int64       `json:"createdAt"`
	Lines       []QueueLine `json:"lines"`
}

// BuildChefQueues routes every open order line to the chef owning its
// category. Orders that are ready or delivered are done from the kitchen's
// point of view and excluded. Lines whose category has no owner are
// dropped here; UnassignedCategories surfaces them to the admin. Queues
// are oldest-first so chefs work the backlog in arrival order.
func BuildChefQueues(orders []models.Order, chefs []models.Chef, assignments []models.ChefCategory, itemCategory map[string]string) map[string][]OrderGroup {
	categoryOwner := make(map[string]string, len(assignments))
	for _, a := range assignments {
		categoryOwner[a.CategoryID] = a.ChefID
	}

	queues := make(map[string][]OrderGroup, len(chefs))
	for _, chef := range chefs {
		if chef.IsActive {
			queues[chef.ID] = nil
		}
	}

	for _, order := range orders {
		if order.Status != models.StatusPending && order.Status != models.StatusPreparing {
			continue
		}
		perChef := make(map[string][]QueueLine)
		for _, line := range order.Items {
			cat, ok := itemCategory[line.MenuItem.ID]
			if !ok {
				continue
			}
			chefID, owned := categoryOwner[cat]
			if !owned {
				continue
			}
			if _, active := queues[chefID]; !active {
				continue
			}
			perChef[chefID] = append(perChef[chefID], QueueLine{
				ItemID:         line.ItemID,
				MenuItem:       line.MenuItem,
				Quantity:       line.Quantity,
				SelectedAddOns: line.SelectedAddOns,
				Position:       line.Position,
				Ready:          line.Ready,
			})
		}
		for chefID, lines := range perChef {
			queues[chefID] = append(queues[chefID], OrderGroup{
				OrderID:     order.OrderID,
				TokenNumber: order.TokenNumber,
				OrderType:   order.OrderType,
				TableNumber: order.TableNumber,
				Status:      order.Status,
				CreatedAt:   order.CreatedAt.UnixMilli(),
				Lines:       lines,
			})
		}
	}

	for chefID := range queues {
		sort.SliceStable(queues[chefID], func(i, j int) bool {
			return queues[chefID][i].CreatedAt < queues[chefID][j].CreatedAt
		})
	}
	return queues
}

// UnassignedCategories lists category ids no active chef owns. Items in
// these categories silently vanish from every queue, so the admin screen
// shows this as a warning.
func UnassignedCategories(categories []models.Category, chefs []models.Chef, assignments []models.ChefCategory) []string {
	activeChef := make(map[string]struct{}, len(chefs))
	for _, c := range chefs {
		if c.IsActive {
			activeChef[c.ID] = struct{}{}
		}
	}
	owned := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := activeChef[a.ChefID]; ok {
			owned[a.CategoryID] = struct{}{}
		}
	}

	var out []string
	for _, cat := range categories {
		if _, ok := owned[cat.ID]; !ok {
			out = append(out, cat.ID)
		}
	}
	return out
}

// PendingCounts returns open line counts per chef for the dashboard
// header badges.
func PendingCounts(queues map[string][]OrderGroup) map[string]int {
	counts := make(map[string]int, len(queues))
	for chefID, groups := range queues {
		n := 0
		for _, g := range groups {
			for _, l := range g.Lines {
				if !l.Ready {
					n++
				}
			}
		}
		counts[chefID] = n
	}
	return counts
}
