package inventory

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/port"
)

// Ledger is the in-memory stock ledger shared by every cart operation.
// It is not safe for concurrent use; the store serialises access to it.
type Ledger struct {
	available map[domain.ProductID]int
	total     map[domain.ProductID]int
}

// NewLedger seeds a ledger where every product starts fully available.
func NewLedger(stock map[domain.ProductID]int) (*Ledger, error) {
	l := &Ledger{
		available: make(map[domain.ProductID]int, len(stock)),
		total:     make(map[domain.ProductID]int, len(stock)),
	}

	for id, units := range stock {
		if units < 0 {
			return nil, fmt.Errorf("product %d: negative stock %d", id, units)
		}
		l.available[id] = units
		l.total[id] = units
	}

	return l, nil
}

func (l *Ledger) Reserve(productID domain.ProductID, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("reserve %d units: %w", quantity, domain.ErrInvalidQuantity)
	}

	available := l.available[productID]
	if available < quantity {
		return &domain.InsufficientInventoryError{
			ProductID: productID,
			Required:  quantity,
			Available: available,
		}
	}

	l.available[productID] = available - quantity
	return nil
}

// Release returns units to the ledger. It does not check the product's
// total capacity; callers only release what they reserved.
func (l *Ledger) Release(productID domain.ProductID, quantity int) {
	if quantity <= 0 {
		return
	}
	l.available[productID] += quantity
}

func (l *Ledger) Available(productID domain.ProductID) int {
	return l.available[productID]
}

func (l *Ledger) Total(productID domain.ProductID) int {
	return l.total[productID]
}

// Restock adds newly received units to both the free pool and the capacity.
func (l *Ledger) Restock(productID domain.ProductID, units int) {
	if units <= 0 {
		return
	}
	l.available[productID] += units
	l.total[productID] += units
}

// Products lists every product the ledger knows, in ascending id order.
func (l *Ledger) Products() []domain.ProductID {
	return slices.Sorted(maps.Keys(l.total))
}

func (l *Ledger) Clone() port.Ledger {
	return &Ledger{
		available: maps.Clone(l.available),
		total:     maps.Clone(l.total),
	}
}

// Snapshot copies the free units per product.
func (l *Ledger) Snapshot() map[domain.ProductID]int {
	return maps.Clone(l.available)
}
