package store

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartrecon/internal/domain"
)

// SaveCart stores a copy of the active cart, which stays as it is. An empty
// cart is not saved and the second result is false.
func (s *Store) SaveCart() (domain.SavedCart, bool, error) {
	saved, err := withTx(s, func(tx *txn) (domain.SavedCart, error) {
		if tx.cart.IsEmpty() {
			return domain.SavedCart{}, nil
		}

		id := s.newID()
		saved := domain.SavedCart{
			ID:        id,
			Name:      domain.Mnemonic(id.String()),
			CreatedAt: s.now(),
			Items:     tx.cart.Clone().Items,
		}
		tx.saved = append(tx.saved, saved)

		tx.emit(domain.Event{
			Kind:     domain.EventCartSaved,
			CartID:   saved.ID,
			Quantity: tx.cart.Units(),
		})
		return saved, nil
	})
	if err != nil {
		return domain.SavedCart{}, false, err
	}

	return saved, saved.ID != uuid.Nil, nil
}

// LoadCart replaces the active cart with a saved one. The current cart's
// reservations are handed back first and every saved line must then fit,
// otherwise nothing changes. A non-empty current cart is kept for UndoCartLoad.
func (s *Store) LoadCart(cartID uuid.UUID) (domain.Cart, error) {
	return withTx(s, func(tx *txn) (domain.Cart, error) {
		saved, err := tx.findSaved(cartID)
		if err != nil {
			return domain.Cart{}, err
		}

		if !tx.cart.IsEmpty() {
			s.pushHistory(tx, tx.cart)
		}

		releaseAll(tx, tx.cart)
		if err := reserveAll(tx, saved.Items); err != nil {
			return domain.Cart{}, err
		}

		loaded := domain.Cart{Items: make([]domain.CartItem, len(saved.Items))}
		for i, it := range saved.Items {
			it.ID = s.newID()
			loaded.Items[i] = it
		}
		tx.cart = loaded

		tx.emit(domain.Event{
			Kind:     domain.EventCartLoaded,
			CartID:   cartID,
			Quantity: loaded.Units(),
		})
		return loaded.Clone(), nil
	})
}

// AddCartItems merges a saved cart into the active cart, summing quantities
// per product. All added units must fit or nothing changes. The merge can be
// reverted with UndoCartLoad.
func (s *Store) AddCartItems(cartID uuid.UUID) (domain.Cart, error) {
	return withTx(s, func(tx *txn) (domain.Cart, error) {
		saved, err := tx.findSaved(cartID)
		if err != nil {
			return domain.Cart{}, err
		}

		if !tx.cart.IsEmpty() {
			s.pushHistory(tx, tx.cart)
		}

		if err := reserveAll(tx, saved.Items); err != nil {
			return domain.Cart{}, err
		}

		for _, it := range saved.Items {
			if idx := tx.cart.IndexOfProduct(it.ProductID); idx >= 0 {
				tx.cart.Items[idx].Quantity += it.Quantity
				continue
			}
			it.ID = s.newID()
			tx.cart.Items = append(tx.cart.Items, it)
		}

		tx.emit(domain.Event{
			Kind:     domain.EventCartItemsMerged,
			CartID:   cartID,
			Quantity: tx.cart.Units(),
		})
		return tx.cart.Clone(), nil
	})
}

// UndoCartLoad restores the cart that the latest load replaced and swaps the
// reservations back. It reports false when there is nothing to undo.
func (s *Store) UndoCartLoad() (bool, error) {
	return withTx(s, func(tx *txn) (bool, error) {
		if len(tx.history) == 0 {
			return false, nil
		}

		prev := tx.history[len(tx.history)-1]
		tx.history = tx.history[:len(tx.history)-1]

		releaseAll(tx, tx.cart)
		if err := reserveAll(tx, prev.Items); err != nil {
			return false, err
		}
		tx.cart = prev.Clone()

		tx.emit(domain.Event{
			Kind:     domain.EventCartLoadUndone,
			Quantity: prev.Units(),
		})
		return true, nil
	})
}

// DeleteCart forgets a saved cart. Saved carts hold no stock, so the ledger
// is untouched.
func (s *Store) DeleteCart(cartID uuid.UUID) error {
	_, err := withTx(s, func(tx *txn) (struct{}, error) {
		idx := slices.IndexFunc(tx.saved, func(c domain.SavedCart) bool { return c.ID == cartID })
		if idx < 0 {
			return struct{}{}, fmt.Errorf("saved cart %s: %w", cartID, domain.ErrNotFound)
		}

		tx.saved = slices.Delete(tx.saved, idx, idx+1)

		tx.emit(domain.Event{
			Kind:   domain.EventCartDeleted,
			CartID: cartID,
		})
		return struct{}{}, nil
	})
	return err
}

func (tx *txn) findSaved(cartID uuid.UUID) (domain.SavedCart, error) {
	idx := slices.IndexFunc(tx.saved, func(c domain.SavedCart) bool { return c.ID == cartID })
	if idx < 0 {
		return domain.SavedCart{}, fmt.Errorf("saved cart %s: %w", cartID, domain.ErrNotFound)
	}
	return tx.saved[idx], nil
}

func (s *Store) pushHistory(tx *txn, cart domain.Cart) {
	tx.history = append(tx.history, cart.Clone())
	if s.historyDepth > 0 && len(tx.history) > s.historyDepth {
		tx.history = slices.Delete(tx.history, 0, len(tx.history)-s.historyDepth)
	}
}

func releaseAll(tx *txn, cart domain.Cart) {
	for _, it := range cart.Items {
		tx.ledger.Release(it.ProductID, it.Quantity)
	}
}

func reserveAll(tx *txn, items []domain.CartItem) error {
	for _, it := range items {
		tx.on(it.ProductID)
		if err := tx.ledger.Reserve(it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("ledger.Reserve: %w", err)
		}
	}
	return nil
}
