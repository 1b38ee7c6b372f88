package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartrecon/internal/catalog"
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestDefault(t *testing.T) {
	c := catalog.Default(currency.EUR)

	products := c.List()
	require.Len(t, products, 8)
	for i, p := range products {
		assert.Equal(t, domain.ProductID(i+1), p.ID)
		assert.Equal(t, "EUR", p.Price.Currency.String())
	}

	jacket, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "799.99", jacket.Price.Amount.StringFixed(2))

	_, ok = c.Get(99)
	assert.False(t, ok)

	stock := c.Stock()
	assert.Equal(t, 5, stock[1])
	assert.Equal(t, 0, stock[6])
}

func TestSampleSavedCarts(t *testing.T) {
	c := catalog.Default(currency.USD)

	carts := c.SampleSavedCarts(uuid.New)
	require.Len(t, carts, 2)

	assert.Len(t, carts[0].Items, 3)
	assert.Len(t, carts[1].Items, 2)
	assert.NotEqual(t, carts[0].ID, carts[1].ID)

	rainJacket, _ := c.Get(6)
	assert.True(t, rainJacket.Price.Amount.Equal(carts[0].Items[1].Price.Amount))
}
