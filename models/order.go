package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrBackwardTransition marks a rejected status downgrade.
var ErrBackwardTransition = errors.New("order status cannot move backward")

// Order status lifecycle. Transitions only move forward; "delivered" is
// terminal and triggers cleanup of customer-side order caches.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
)

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypePreorder = "preorder"
)

// DefaultEstimatedMinutes is the preparation estimate stamped on new orders.
const DefaultEstimatedMinutes = 15

var statusRank = map[string]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusReady:     2,
	StatusDelivered: 3,
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Skipping ahead is allowed (ticking the last kitchen item jumps
// preparing straight to delivered) but going backward never is.
func CanTransition(from, to string) error {
	fr, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("unknown order status %q", from)
	}
	tr, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("unknown order status %q", to)
	}
	if tr <= fr {
		return fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, from, to)
	}
	return nil
}

// MenuItemRef is the snapshot of a menu item frozen into an order line.
type MenuItemRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// OrderItem is one line of an order. Each line carries a stable id so the
// kitchen can tick it off without relying on list positions; Position is
// the original index in the order and is kept for display only.
type OrderItem struct {
	ItemID         string      `json:"item_id"`
	MenuItem       MenuItemRef `json:"menu_item"`
	Quantity       int         `json:"quantity"`
	SelectedAddOns []AddOn     `json:"selected_add_ons,omitempty"`
	TotalPrice     int         `json:"total_price"`
	Position       int         `json:"position"`
	Ready          bool        `json:"ready"`
}

// OrderExtra is a standalone extra line frozen into an order.
type OrderExtra struct {
	Extra    Extra `json:"extra"`
	Quantity int   `json:"quantity"`
}

// PreorderDetails carry the pickup information for preorder-type orders.
type PreorderDetails struct {
	PickupTime    string `json:"pickup_time"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type Order struct {
	OrderID          string           `gorm:"primaryKey;type:varchar(32)" json:"order_id"`
	OrderType        string           `gorm:"type:varchar(16);not null" json:"order_type"`
	TableNumber      string           `gorm:"type:varchar(8)" json:"table_number,omitempty"`
	PreorderDetails  *PreorderDetails `gorm:"serializer:json;type:text" json:"preorder_details,omitempty"`
	TokenNumber      int              `gorm:"index" json:"token_number"`
	Items            []OrderItem      `gorm:"serializer:json;type:text" json:"items"`
	Extras           []OrderExtra     `gorm:"serializer:json;type:text" json:"extras,omitempty"`
	TotalAmount      int              `gorm:"not null" json:"total_amount"`
	Status           string           `gorm:"type:varchar(16);index;not null;default:'pending'" json:"status"`
	EstimatedMinutes int              `gorm:"not null;default:15" json:"estimated_minutes"`
	VisitorID        string           `gorm:"type:varchar(64);index" json:"visitor_id"`
	SessionID        string           `gorm:"type:varchar(64)" json:"session_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"-"`
}

// AllItemsReady reports whether every line of the order has been ticked off
// by the kitchen. An order with no items is never "all ready".
func (o *Order) AllItemsReady() bool {
	if len(o.Items) == 0 {
		return false
	}
	for _, it := range o.Items {
		if !it.Ready {
			return false
		}
	}
	return true
}
