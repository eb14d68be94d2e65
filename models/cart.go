package models

import "time"

// CartItem is one in-progress order line. Identical items added twice stay
// as separate lines; the id is derived from the menu item id plus the
// creation timestamp.
type CartItem struct {
	ID             string   `json:"id"`
	MenuItem       MenuItem `json:"menu_item"`
	Quantity       int      `json:"quantity"`
	SelectedAddOns []AddOn  `json:"selected_add_ons,omitempty"`
	TotalPrice     int      `json:"total_price"`
}

// CartExtra is a standalone extra in the cart. Its id is the extra's own id,
// so re-adding the same extra bumps the quantity instead of duplicating.
type CartExtra struct {
	ID       string `json:"id"`
	Extra    Extra  `json:"extra"`
	Quantity int    `json:"quantity"`
}

// CartSession is the durable mirror of one visitor's ordering session. Every
// cart mutation writes this row back so a reconnecting client resumes where
// it left off. ActiveOrderIDs and LastOrderID are the customer-side order
// caches that get purged when an order is delivered.
type CartSession struct {
	VisitorID       string           `gorm:"primaryKey;type:varchar(64)" json:"visitor_id"`
	Items           []CartItem       `gorm:"serializer:json;type:text" json:"items"`
	Extras          []CartExtra      `gorm:"serializer:json;type:text" json:"extras"`
	TableNumber     string           `gorm:"type:varchar(8)" json:"table_number,omitempty"`
	OrderType       string           `gorm:"type:varchar(16);not null;default:'dine-in'" json:"order_type"`
	PreorderDetails *PreorderDetails `gorm:"serializer:json;type:text" json:"preorder_details,omitempty"`
	ActiveOrderIDs  []string         `gorm:"serializer:json;type:text" json:"active_order_ids,omitempty"`
	LastOrderID     string           `gorm:"type:varchar(32)" json:"last_order_id,omitempty"`
	UpdatedAt       time.Time        `json:"-"`
}

// TotalItems sums every item and extra quantity in the cart.
func (c *CartSession) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	for _, e := range c.Extras {
		n += e.Quantity
	}
	return n
}

// TotalAmount sums item totals plus extra price times quantity. Both totals
// are derived on demand, never stored.
func (c *CartSession) TotalAmount() int {
	sum := 0
	for _, it := range c.Items {
		sum += it.TotalPrice
	}
	for _, e := range c.Extras {
		sum += e.Extra.Price * e.Quantity
	}
	return sum
}
