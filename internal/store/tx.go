package store

import (
	"errors"
	"slices"

	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/port"
)

// state is everything a command may change. Committing a transaction swaps
// the whole value, so a failed command never leaves partial effects behind.
type state struct {
	ledger   port.Ledger
	cart     domain.Cart
	later    domain.Cart
	saved    []domain.SavedCart
	history  []domain.Cart
	watched  []domain.ProductID
	discount string
}

func (s state) clone() state {
	return state{
		ledger:   s.ledger.Clone(),
		cart:     s.cart.Clone(),
		later:    s.later.Clone(),
		saved:    slices.Clone(s.saved),
		history:  slices.Clone(s.history),
		watched:  slices.Clone(s.watched),
		discount: s.discount,
	}
}

type txn struct {
	state

	subject domain.ProductID
	events  []domain.Event
}

// on names the product a failure event should refer to.
func (tx *txn) on(productID domain.ProductID) {
	tx.subject = productID
}

func (tx *txn) emit(e domain.Event) {
	tx.events = append(tx.events, e)
}

func withTx[T any](s *Store, fn func(tx *txn) (T, error)) (_ T, txErr error) {
	var zero T

	s.mu.Lock()
	tx := &txn{state: s.state.clone()}

	// Events go out after the lock is released so sinks may query the store.
	defer func() {
		events := tx.events
		if txErr != nil {
			events = []domain.Event{failureEvent(tx.subject, txErr)}
		}
		for i := range events {
			s.settle(&events[i])
		}
		s.mu.Unlock()

		for _, e := range events {
			s.sink.Publish(e)
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	s.state = tx.state

	return result, nil
}

func failureEvent(productID domain.ProductID, err error) domain.Event {
	e := domain.Event{
		Kind:      domain.FailureKind(err),
		ProductID: productID,
		Err:       err,
	}

	var insufficient *domain.InsufficientInventoryError
	var limit *domain.InventoryLimitReachedError
	switch {
	case errors.As(err, &insufficient):
		e.ProductID = insufficient.ProductID
		e.Quantity = insufficient.Required
	case errors.As(err, &limit):
		e.ProductID = limit.ProductID
		e.Quantity = limit.Available
	}

	return e
}

// settle stamps an event with the committed state it describes.
func (s *Store) settle(e *domain.Event) {
	if e.ProductID != 0 {
		e.Available = s.state.ledger.Available(e.ProductID)
	}
	e.CartLines = len(s.state.cart.Items)
}
