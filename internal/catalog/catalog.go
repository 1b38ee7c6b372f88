package catalog

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

// Catalog is the read-only product list the demo shop sells.
type Catalog struct {
	products map[domain.ProductID]domain.Product
}

func New(products ...domain.Product) *Catalog {
	c := &Catalog{products: make(map[domain.ProductID]domain.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Default returns the outdoor-gear line-up, priced in cur.
func Default(cur currency.Unit) *Catalog {
	price := func(s string) domain.Money {
		return domain.NewMoney(decimal.RequireFromString(s), cur)
	}

	return New(
		domain.Product{ID: 1, Name: "Alpha SV Jacket", Price: price("799.99"), Inventory: 5},
		domain.Product{ID: 2, Name: "Beta AR Pants", Price: price("449.99"), Inventory: 8},
		domain.Product{ID: 3, Name: "Atom LT Hoody", Price: price("299.99"), Inventory: 12},
		domain.Product{ID: 4, Name: "Cerium Down Vest", Price: price("279.99"), Inventory: 3},
		domain.Product{ID: 5, Name: "Gamma MX Softshell", Price: price("349.99"), Inventory: 2},
		domain.Product{ID: 6, Name: "Zeta SL Rain Jacket", Price: price("399.99"), Inventory: 0},
		domain.Product{ID: 7, Name: "Covert Fleece", Price: price("179.99"), Inventory: 15},
		domain.Product{ID: 8, Name: "Proton AR Insulated", Price: price("329.99"), Inventory: 4},
	)
}

func (c *Catalog) Get(id domain.ProductID) (domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// List returns every product ordered by id.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, id := range slices.Sorted(maps.Keys(c.products)) {
		out = append(out, c.products[id])
	}
	return out
}

// Stock is the starting inventory of every product.
func (c *Catalog) Stock() map[domain.ProductID]int {
	out := make(map[domain.ProductID]int, len(c.products))
	for id, p := range c.products {
		out[id] = p.Inventory
	}
	return out
}

// SampleSavedCarts builds the two carts a new session starts with.
func (c *Catalog) SampleSavedCarts(newID func() uuid.UUID) []domain.SavedCart {
	line := func(id domain.ProductID, qty int) domain.CartItem {
		p := c.products[id]
		return domain.CartItem{ID: newID(), ProductID: id, Quantity: qty, Price: p.Price}
	}

	return []domain.SavedCart{
		{ID: newID(), Items: []domain.CartItem{line(1, 1), line(6, 1), line(4, 2)}},
		{ID: newID(), Items: []domain.CartItem{line(2, 2), line(3, 1)}},
	}
}
