package port

import (
	"github.com/nikolayk812/cartrecon/internal/domain"
)

// Ledger tracks the units of each product that are still free to reserve.
type Ledger interface {
	Reserve(productID domain.ProductID, quantity int) error
	Release(productID domain.ProductID, quantity int)
	Available(productID domain.ProductID) int
	Total(productID domain.ProductID) int
	Restock(productID domain.ProductID, units int)
	Products() []domain.ProductID
	Clone() Ledger
}

// EventSink receives the semantic event raised by every store command.
type EventSink interface {
	Publish(e domain.Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(e domain.Event)

func (f EventSinkFunc) Publish(e domain.Event) { f(e) }
