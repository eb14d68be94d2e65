package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campus-canteen/models"
	"campus-canteen/store"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrExtraNotFound    = errors.New("cart extra not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// CartService owns every visitor's in-progress order. The store row is the
// durable truth: each operation loads the session, applies a pure
// transformation and mirrors the result back, so a returning visitor
// resumes exactly where they left off and a delivered-order purge done
// behind our back is picked up on the next touch. Mirror failures are
// logged and otherwise ignored.
type CartService struct {
	store store.Store
	log   *logrus.Logger
	mu    sync.Mutex
}

func NewCartService(s store.Store, log *logrus.Logger) *CartService {
	return &CartService{store: s, log: log}
}

// load fetches the visitor's session, creating an empty dine-in one on
// first touch. Callers must hold cs.mu.
func (cs *CartService) load(ctx context.Context, visitorID string) *models.CartSession {
	sess, err := cs.store.CartSession(ctx, visitorID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			cs.log.Errorf("load cart for %s: %v", visitorID, err)
		}
		return &models.CartSession{
			VisitorID: visitorID,
			OrderType: models.OrderTypeDineIn,
		}
	}
	return sess
}

func (cs *CartService) persist(ctx context.Context, sess *models.CartSession) {
	if err := cs.store.SaveCartSession(ctx, sess); err != nil {
		cs.log.Errorf("persist cart for %s: %v", sess.VisitorID, err)
	}
}

// Snapshot returns a copy of the visitor's session for rendering.
func (cs *CartService) Snapshot(ctx context.Context, visitorID string) models.CartSession {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return *cs.load(ctx, visitorID)
}

// AddItem appends a new cart line. Identical items are never merged — two
// adds of the same dish stay two lines, each with its own id.
func (cs *CartService) AddItem(ctx context.Context, visitorID string, menuItem models.MenuItem, quantity int, addOns []models.AddOn) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, ErrInvalidQuantity
	}

	addOnsPrice := 0
	for _, a := range addOns {
		addOnsPrice += a.Price
	}
	item := models.CartItem{
		ID:             fmt.Sprintf("%s-%d", menuItem.ID, time.Now().UnixMilli()),
		MenuItem:       menuItem,
		Quantity:       quantity,
		SelectedAddOns: addOns,
		TotalPrice:     (menuItem.Price + addOnsPrice) * quantity,
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.Items = append(sess.Items, item)
	cs.persist(ctx, sess)
	return item, nil
}

// UpdateItemQuantity sets a line's quantity and recomputes its total.
// Quantities below 1 are not this container's business — callers remove
// the line instead.
func (cs *CartService) UpdateItemQuantity(ctx context.Context, visitorID, itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	for i := range sess.Items {
		if sess.Items[i].ID != itemID {
			continue
		}
		addOnsPrice := 0
		for _, a := range sess.Items[i].SelectedAddOns {
			addOnsPrice += a.Price
		}
		sess.Items[i].Quantity = quantity
		sess.Items[i].TotalPrice = (sess.Items[i].MenuItem.Price + addOnsPrice) * quantity
		cs.persist(ctx, sess)
		return nil
	}
	return ErrCartItemNotFound
}

func (cs *CartService) RemoveItem(ctx context.Context, visitorID, itemID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	for i := range sess.Items {
		if sess.Items[i].ID == itemID {
			sess.Items = append(sess.Items[:i], sess.Items[i+1:]...)
			cs.persist(ctx, sess)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// AddExtra inserts a standalone extra, or bumps its quantity by one if the
// same extra is already in the cart.
func (cs *CartService) AddExtra(ctx context.Context, visitorID string, extra models.Extra) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	for i := range sess.Extras {
		if sess.Extras[i].ID == extra.ID {
			sess.Extras[i].Quantity++
			cs.persist(ctx, sess)
			return
		}
	}
	sess.Extras = append(sess.Extras, models.CartExtra{
		ID:       extra.ID,
		Extra:    extra,
		Quantity: 1,
	})
	cs.persist(ctx, sess)
}

func (cs *CartService) UpdateExtraQuantity(ctx context.Context, visitorID, extraID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	for i := range sess.Extras {
		if sess.Extras[i].ID == extraID {
			sess.Extras[i].Quantity = quantity
			cs.persist(ctx, sess)
			return nil
		}
	}
	return ErrExtraNotFound
}

func (cs *CartService) RemoveExtra(ctx context.Context, visitorID, extraID string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	for i := range sess.Extras {
		if sess.Extras[i].ID == extraID {
			sess.Extras = append(sess.Extras[:i], sess.Extras[i+1:]...)
			cs.persist(ctx, sess)
			return nil
		}
	}
	return ErrExtraNotFound
}

func (cs *CartService) SetTableNumber(ctx context.Context, visitorID, table string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.TableNumber = table
	cs.persist(ctx, sess)
}

func (cs *CartService) SetOrderType(ctx context.Context, visitorID, orderType string) error {
	if orderType != models.OrderTypeDineIn && orderType != models.OrderTypePreorder {
		return fmt.Errorf("unknown order type %q", orderType)
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.OrderType = orderType
	cs.persist(ctx, sess)
	return nil
}

func (cs *CartService) SetPreorderDetails(ctx context.Context, visitorID string, details models.PreorderDetails) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.PreorderDetails = &details
	cs.persist(ctx, sess)
}

// Clear empties items and extras after checkout. Order type and preorder
// details survive so a second order needs no re-entry.
func (cs *CartService) Clear(ctx context.Context, visitorID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.Items = nil
	sess.Extras = nil
	cs.persist(ctx, sess)
}

// RecordOrder remembers a freshly placed order in the visitor's caches so
// the track-order view finds it; the delivered purge removes it again.
func (cs *CartService) RecordOrder(ctx context.Context, visitorID, orderID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	sess.ActiveOrderIDs = append(sess.ActiveOrderIDs, orderID)
	sess.LastOrderID = orderID
	cs.persist(ctx, sess)
}

// Totals computes the two derived cart numbers.
func (cs *CartService) Totals(ctx context.Context, visitorID string) (totalItems, totalAmount int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	sess := cs.load(ctx, visitorID)
	return sess.TotalItems(), sess.TotalAmount()
}
