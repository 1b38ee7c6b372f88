package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type ProductID int64

type Product struct {
	ID        ProductID
	Name      string
	Price     Money
	Inventory int
}

type CartItem struct {
	ID        uuid.UUID
	ProductID ProductID
	Quantity  int
	Price     Money

	CreatedAt time.Time
}

// LineTotal is the unit price times quantity.
func (i CartItem) LineTotal() Money {
	return i.Price.MulInt(i.Quantity)
}

type Cart struct {
	Items []CartItem
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Units is the total quantity across all lines.
func (c Cart) Units() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Clone returns a deep copy; CartItem holds no reference types besides Money,
// whose decimal value is immutable.
func (c Cart) Clone() Cart {
	return Cart{Items: slices.Clone(c.Items)}
}

func (c Cart) IndexOfItem(id uuid.UUID) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ID == id })
}

func (c Cart) IndexOfProduct(productID ProductID) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool { return it.ProductID == productID })
}

// QuantityOf sums the quantity of every line holding productID.
func (c Cart) QuantityOf(productID ProductID) int {
	n := 0
	for _, it := range c.Items {
		if it.ProductID == productID {
			n += it.Quantity
		}
	}
	return n
}

// Subtotal sums every line total. Lines are assumed to be priced in cur.
func (c Cart) Subtotal(cur currency.Unit) Money {
	total := Zero(cur)
	for _, it := range c.Items {
		total.Amount = total.Amount.Add(it.LineTotal().Amount)
	}
	return total
}

type SavedCart struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	Items     []CartItem
}

// Receipt acknowledges a checkout. It carries totals only; nothing is charged.
type Receipt struct {
	Lines    int
	Units    int
	Subtotal Money
	Discount Money
	Total    Money
}
