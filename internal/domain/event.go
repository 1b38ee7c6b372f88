package domain

import (
	"errors"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventItemAdded         EventKind = "item_added"
	EventQuantityUpdated   EventKind = "quantity_updated"
	EventItemRemoved       EventKind = "item_removed"
	EventItemSavedForLater EventKind = "item_saved_for_later"
	EventItemMovedToCart   EventKind = "item_moved_to_cart"
	EventSavedItemRemoved  EventKind = "saved_item_removed"
	EventCartSaved         EventKind = "cart_saved"
	EventCartLoaded        EventKind = "cart_loaded"
	EventCartItemsMerged   EventKind = "cart_items_merged"
	EventCartLoadUndone    EventKind = "cart_load_undone"
	EventCartDeleted       EventKind = "cart_deleted"
	EventDiscountApplied   EventKind = "discount_applied"
	EventDiscountRemoved   EventKind = "discount_removed"
	EventCheckedOut        EventKind = "checked_out"
	EventProductWatched    EventKind = "product_watched"
	EventProductUnwatched  EventKind = "product_unwatched"
	EventStockReceived     EventKind = "stock_received"
	EventBackInStock       EventKind = "back_in_stock"
	EventOutOfStock        EventKind = "out_of_stock"
	EventInventoryLimit    EventKind = "inventory_limit_reached"
	EventInsufficientStock EventKind = "insufficient_inventory"
	EventNotFound          EventKind = "not_found"
	EventEmptyCart         EventKind = "empty_cart"
	EventCommandRejected   EventKind = "command_rejected"
)

// Event is the semantic notification raised after every command.
// Presentation layers map it to whatever they show the user.
// Available and CartLines describe the state once the command settled:
// the ledger count for ProductID and the number of active cart lines.
type Event struct {
	Kind      EventKind
	ProductID ProductID
	ItemID    uuid.UUID
	CartID    uuid.UUID
	Quantity  int
	Available int
	CartLines int
	Err       error
}

// Failed reports whether the event describes a rejected command.
func (e Event) Failed() bool {
	return e.Err != nil
}

// FailureKind maps a command error onto the event kind announcing it.
func FailureKind(err error) EventKind {
	switch {
	case errors.Is(err, ErrOutOfStock):
		return EventOutOfStock
	case errors.Is(err, ErrInventoryLimitReached):
		return EventInventoryLimit
	case errors.Is(err, ErrInsufficientInventory):
		return EventInsufficientStock
	case errors.Is(err, ErrNotFound):
		return EventNotFound
	case errors.Is(err, ErrEmptyCart):
		return EventEmptyCart
	default:
		return EventCommandRejected
	}
}
