package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfStock            = errors.New("out of stock")
	ErrInventoryLimitReached = errors.New("inventory limit reached")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrNotFound              = errors.New("not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidDiscountCode   = errors.New("discount code is empty")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
)

// InventoryLimitReachedError reports the most units a line may hold.
type InventoryLimitReachedError struct {
	ProductID ProductID
	Available int
}

func (e *InventoryLimitReachedError) Error() string {
	return fmt.Sprintf("product %d: %s: available %d", e.ProductID, ErrInventoryLimitReached, e.Available)
}

func (e *InventoryLimitReachedError) Is(target error) bool {
	return target == ErrInventoryLimitReached
}

type InsufficientInventoryError struct {
	ProductID ProductID
	Required  int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("product %d: %s: required %d, available %d",
		e.ProductID, ErrInsufficientInventory, e.Required, e.Available)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}
