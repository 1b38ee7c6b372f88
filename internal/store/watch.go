package store

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

// Watch subscribes to a back-in-stock notice for productID.
func (s *Store) Watch(productID domain.ProductID) {
	_, _ = withTx(s, func(tx *txn) (struct{}, error) {
		if slices.Contains(tx.watched, productID) {
			return struct{}{}, nil
		}

		tx.watched = append(tx.watched, productID)
		tx.emit(domain.Event{Kind: domain.EventProductWatched, ProductID: productID})
		return struct{}{}, nil
	})
}

// Unwatch reports whether productID was being watched.
func (s *Store) Unwatch(productID domain.ProductID) bool {
	removed, _ := withTx(s, func(tx *txn) (bool, error) {
		idx := slices.Index(tx.watched, productID)
		if idx < 0 {
			return false, nil
		}

		tx.watched = slices.Delete(tx.watched, idx, idx+1)
		tx.emit(domain.Event{Kind: domain.EventProductUnwatched, ProductID: productID})
		return true, nil
	})
	return removed
}

// Restock receives new units of productID. Watchers are told when the
// product was sold out before the delivery.
func (s *Store) Restock(productID domain.ProductID, units int) error {
	_, err := withTx(s, func(tx *txn) (struct{}, error) {
		tx.on(productID)

		if units < 1 {
			return struct{}{}, fmt.Errorf("restock %d units: %w", units, domain.ErrInvalidQuantity)
		}

		soldOut := tx.ledger.Available(productID) == 0
		tx.ledger.Restock(productID, units)

		tx.emit(domain.Event{
			Kind:      domain.EventStockReceived,
			ProductID: productID,
			Quantity:  units,
		})
		if soldOut && slices.Contains(tx.watched, productID) {
			tx.emit(domain.Event{
				Kind:      domain.EventBackInStock,
				ProductID: productID,
				Quantity:  units,
			})
		}
		return struct{}{}, nil
	})
	return err
}
