package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/port"
	"golang.org/x/text/currency"
)

const (
	DefaultHistoryDepth = 1
	discountPercent     = 10
)

// Store reconciles the active cart, the save-for-later list, saved carts and
// the inventory ledger. One Store serves one shopping session.
type Store struct {
	mu    sync.Mutex
	state state

	currency            currency.Unit
	sink                port.EventSink
	historyDepth        int
	doubleReserveOnMove bool
	now                 func() time.Time
	newID               func() uuid.UUID
}

type Option func(*Store)

func WithSink(sink port.EventSink) Option {
	return func(s *Store) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithHistoryDepth bounds the undo stack. Zero keeps every snapshot.
func WithHistoryDepth(depth int) Option {
	return func(s *Store) {
		if depth >= 0 {
			s.historyDepth = depth
		}
	}
}

// WithDoubleReserveOnMove makes MoveToCart reserve the moved units a second
// time. The ledger then undercounts the product by the moved quantity.
func WithDoubleReserveOnMove(on bool) Option {
	return func(s *Store) {
		s.doubleReserveOnMove = on
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithSavedCarts preloads saved carts. Saved carts hold no reservations,
// so the ledger is left alone.
func WithSavedCarts(carts ...domain.SavedCart) Option {
	return func(s *Store) {
		for _, c := range carts {
			c.Items = slices.Clone(c.Items)
			if c.Name == "" {
				c.Name = domain.Mnemonic(c.ID.String())
			}
			s.state.saved = append(s.state.saved, c)
		}
	}
}

func New(ledger port.Ledger, cur currency.Unit, opts ...Option) *Store {
	s := &Store{
		state:        state{ledger: ledger},
		currency:     cur,
		sink:         port.EventSinkFunc(func(domain.Event) {}),
		historyDepth: DefaultHistoryDepth,
		now:          time.Now,
		newID:        uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Currency() currency.Unit {
	return s.currency
}

func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.cart.Clone()
}

func (s *Store) SaveForLaterItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.later.Items)
}

func (s *Store) SavedCarts() []domain.SavedCart {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SavedCart, len(s.state.saved))
	for i, c := range s.state.saved {
		c.Items = slices.Clone(c.Items)
		out[i] = c
	}
	return out
}

func (s *Store) Inventory(productID domain.ProductID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.ledger.Available(productID)
}

// InventorySnapshot returns the free units of every known product.
func (s *Store) InventorySnapshot() map[domain.ProductID]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[domain.ProductID]int)
	for _, id := range s.state.ledger.Products() {
		out[id] = s.state.ledger.Available(id)
	}
	return out
}

func (s *Store) HasHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.state.history) > 0
}

func (s *Store) Watched() []domain.ProductID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.watched)
}

func (s *Store) DiscountCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.discount
}

// CheckInvariant verifies that every unit of every product is either free in
// the ledger or held by a cart or save-for-later line.
func (s *Store) CheckInvariant() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.state.ledger.Products()
	for _, it := range slices.Concat(s.state.cart.Items, s.state.later.Items) {
		if !slices.Contains(ids, it.ProductID) {
			ids = append(ids, it.ProductID)
		}
	}

	for _, id := range ids {
		available := s.state.ledger.Available(id)
		inCart := s.state.cart.QuantityOf(id)
		inLater := s.state.later.QuantityOf(id)
		total := s.state.ledger.Total(id)

		if available+inCart+inLater != total {
			return fmt.Errorf("product %d: available %d + cart %d + saved for later %d != total %d",
				id, available, inCart, inLater, total)
		}
	}

	return nil
}

func (s *Store) checkCurrency(price domain.Money) error {
	if price.Currency.String() != s.currency.String() {
		return fmt.Errorf("price in %s, store in %s: %w", price.Currency, s.currency, domain.ErrCurrencyMismatch)
	}
	return nil
}

func (s *Store) newItem(productID domain.ProductID, quantity int, price domain.Money) domain.CartItem {
	return domain.CartItem{
		ID:        s.newID(),
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: s.now(),
	}
}
