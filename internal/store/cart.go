package store

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartrecon/internal/domain"
)

// AddToCart reserves one unit of productID and adds it to the cart, bumping
// the existing line when the product is already there.
func (s *Store) AddToCart(productID domain.ProductID, unitPrice domain.Money) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		tx.on(productID)

		if err := s.checkCurrency(unitPrice); err != nil {
			return domain.CartItem{}, err
		}
		if tx.ledger.Available(productID) == 0 {
			return domain.CartItem{}, fmt.Errorf("product %d: %w", productID, domain.ErrOutOfStock)
		}
		if err := tx.ledger.Reserve(productID, 1); err != nil {
			return domain.CartItem{}, fmt.Errorf("ledger.Reserve: %w", err)
		}

		var item domain.CartItem
		if idx := tx.cart.IndexOfProduct(productID); idx >= 0 {
			tx.cart.Items[idx].Quantity++
			item = tx.cart.Items[idx]
		} else {
			item = s.newItem(productID, 1, unitPrice)
			tx.cart.Items = append(tx.cart.Items, item)
		}

		tx.emit(domain.Event{
			Kind:      domain.EventItemAdded,
			ProductID: productID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
		})
		return item, nil
	})
}

// UpdateQuantity sets a cart line to quantity. The line may grow up to the
// free units plus what it already holds.
func (s *Store) UpdateQuantity(itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		idx := tx.cart.IndexOfItem(itemID)
		if idx < 0 {
			return domain.CartItem{}, fmt.Errorf("cart item %s: %w", itemID, domain.ErrNotFound)
		}

		item := &tx.cart.Items[idx]
		tx.on(item.ProductID)

		if quantity < 1 {
			return domain.CartItem{}, fmt.Errorf("cart item %s: %w", itemID, domain.ErrInvalidQuantity)
		}

		budget := tx.ledger.Available(item.ProductID) + item.Quantity
		if quantity > budget {
			return domain.CartItem{}, &domain.InventoryLimitReachedError{
				ProductID: item.ProductID,
				Available: budget,
			}
		}

		tx.ledger.Release(item.ProductID, item.Quantity)
		if err := tx.ledger.Reserve(item.ProductID, quantity); err != nil {
			return domain.CartItem{}, fmt.Errorf("ledger.Reserve: %w", err)
		}
		item.Quantity = quantity

		tx.emit(domain.Event{
			Kind:      domain.EventQuantityUpdated,
			ProductID: item.ProductID,
			ItemID:    item.ID,
			Quantity:  quantity,
		})
		return *item, nil
	})
}

// RemoveItem drops a cart line and frees every unit it held.
func (s *Store) RemoveItem(itemID uuid.UUID) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		idx := tx.cart.IndexOfItem(itemID)
		if idx < 0 {
			return domain.CartItem{}, fmt.Errorf("cart item %s: %w", itemID, domain.ErrNotFound)
		}

		item := tx.cart.Items[idx]
		tx.on(item.ProductID)

		tx.ledger.Release(item.ProductID, item.Quantity)
		tx.cart.Items = slices.Delete(tx.cart.Items, idx, idx+1)

		tx.emit(domain.Event{
			Kind:      domain.EventItemRemoved,
			ProductID: item.ProductID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
		})
		return item, nil
	})
}

// SaveForLater files a cart line under save-for-later. Its reservation moves
// with it.
func (s *Store) SaveForLater(itemID uuid.UUID) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		idx := tx.cart.IndexOfItem(itemID)
		if idx < 0 {
			return domain.CartItem{}, fmt.Errorf("cart item %s: %w", itemID, domain.ErrNotFound)
		}

		item := tx.cart.Items[idx]
		tx.on(item.ProductID)

		tx.cart.Items = slices.Delete(tx.cart.Items, idx, idx+1)
		tx.later.Items = append(tx.later.Items, item)

		tx.emit(domain.Event{
			Kind:      domain.EventItemSavedForLater,
			ProductID: item.ProductID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
		})
		return item, nil
	})
}

// MoveToCart brings a save-for-later line back, merging it into an existing
// cart line for the same product. The move is refused while fewer units are
// free than the line holds.
func (s *Store) MoveToCart(itemID uuid.UUID) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		idx := tx.later.IndexOfItem(itemID)
		if idx < 0 {
			return domain.CartItem{}, fmt.Errorf("saved item %s: %w", itemID, domain.ErrNotFound)
		}

		item := tx.later.Items[idx]
		tx.on(item.ProductID)

		if available := tx.ledger.Available(item.ProductID); available < item.Quantity {
			return domain.CartItem{}, &domain.InsufficientInventoryError{
				ProductID: item.ProductID,
				Required:  item.Quantity,
				Available: available,
			}
		}
		if s.doubleReserveOnMove {
			if err := tx.ledger.Reserve(item.ProductID, item.Quantity); err != nil {
				return domain.CartItem{}, fmt.Errorf("ledger.Reserve: %w", err)
			}
		}

		tx.later.Items = slices.Delete(tx.later.Items, idx, idx+1)

		merged := item
		if cidx := tx.cart.IndexOfProduct(item.ProductID); cidx >= 0 {
			tx.cart.Items[cidx].Quantity += item.Quantity
			merged = tx.cart.Items[cidx]
		} else {
			tx.cart.Items = append(tx.cart.Items, item)
		}

		tx.emit(domain.Event{
			Kind:      domain.EventItemMovedToCart,
			ProductID: item.ProductID,
			ItemID:    merged.ID,
			Quantity:  merged.Quantity,
		})
		return merged, nil
	})
}

// RemoveSavedItem drops a save-for-later line and frees its units.
func (s *Store) RemoveSavedItem(itemID uuid.UUID) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		idx := tx.later.IndexOfItem(itemID)
		if idx < 0 {
			return domain.CartItem{}, fmt.Errorf("saved item %s: %w", itemID, domain.ErrNotFound)
		}

		item := tx.later.Items[idx]
		tx.on(item.ProductID)

		tx.ledger.Release(item.ProductID, item.Quantity)
		tx.later.Items = slices.Delete(tx.later.Items, idx, idx+1)

		tx.emit(domain.Event{
			Kind:      domain.EventSavedItemRemoved,
			ProductID: item.ProductID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
		})
		return item, nil
	})
}

// SaveProductForLater reserves one unit of productID straight into the
// save-for-later list.
func (s *Store) SaveProductForLater(productID domain.ProductID, unitPrice domain.Money) (domain.CartItem, error) {
	return withTx(s, func(tx *txn) (domain.CartItem, error) {
		tx.on(productID)

		if err := s.checkCurrency(unitPrice); err != nil {
			return domain.CartItem{}, err
		}
		if tx.ledger.Available(productID) == 0 {
			return domain.CartItem{}, fmt.Errorf("product %d: %w", productID, domain.ErrOutOfStock)
		}
		if err := tx.ledger.Reserve(productID, 1); err != nil {
			return domain.CartItem{}, fmt.Errorf("ledger.Reserve: %w", err)
		}

		var item domain.CartItem
		if idx := tx.later.IndexOfProduct(productID); idx >= 0 {
			tx.later.Items[idx].Quantity++
			item = tx.later.Items[idx]
		} else {
			item = s.newItem(productID, 1, unitPrice)
			tx.later.Items = append(tx.later.Items, item)
		}

		tx.emit(domain.Event{
			Kind:      domain.EventItemSavedForLater,
			ProductID: productID,
			ItemID:    item.ID,
			Quantity:  item.Quantity,
		})
		return item, nil
	})
}
