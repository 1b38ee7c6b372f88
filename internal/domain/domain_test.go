package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

func usd(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), currency.USD)
}

func TestMoney_Arithmetic(t *testing.T) {
	sum, err := usd("10.50").Add(usd("0.75"))
	require.NoError(t, err)
	assert.Equal(t, "11.25 USD", sum.String())

	diff, err := usd("10.50").Sub(usd("0.75"))
	require.NoError(t, err)
	assert.Equal(t, "9.75 USD", diff.String())

	assert.Equal(t, "31.50 USD", usd("10.50").MulInt(3).String())
	assert.Equal(t, "18.00 USD", usd("179.99").Percent(10).String())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	eur := domain.NewMoney(decimal.NewFromInt(1), currency.EUR)

	_, err := usd("1").Add(eur)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = usd("1").Sub(eur)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestCart_Totals(t *testing.T) {
	cart := domain.Cart{Items: []domain.CartItem{
		{ProductID: 1, Quantity: 2, Price: usd("799.99")},
		{ProductID: 3, Quantity: 1, Price: usd("299.99")},
		{ProductID: 1, Quantity: 1, Price: usd("799.99")},
	}}

	assert.Equal(t, 4, cart.Units())
	assert.Equal(t, 3, cart.QuantityOf(1))
	assert.Equal(t, 1, cart.IndexOfProduct(3))
	assert.Equal(t, -1, cart.IndexOfProduct(9))
	assert.Equal(t, "2699.96 USD", cart.Subtotal(currency.USD).String())
	assert.True(t, domain.Cart{}.IsEmpty())
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := domain.Cart{Items: []domain.CartItem{{ProductID: 1, Quantity: 1, Price: usd("1")}}}

	clone := cart.Clone()
	clone.Items[0].Quantity = 5

	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestTypedErrors(t *testing.T) {
	limit := fmt.Errorf("update: %w", &domain.InventoryLimitReachedError{ProductID: 5, Available: 2})
	assert.ErrorIs(t, limit, domain.ErrInventoryLimitReached)
	assert.NotErrorIs(t, limit, domain.ErrInsufficientInventory)

	var target *domain.InventoryLimitReachedError
	require.ErrorAs(t, limit, &target)
	assert.Equal(t, 2, target.Available)

	short := &domain.InsufficientInventoryError{ProductID: 4, Required: 2, Available: 1}
	assert.ErrorIs(t, short, domain.ErrInsufficientInventory)
	assert.EqualError(t, short, "product 4: insufficient inventory: required 2, available 1")
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		err  error
		want domain.EventKind
	}{
		{fmt.Errorf("x: %w", domain.ErrOutOfStock), domain.EventOutOfStock},
		{&domain.InventoryLimitReachedError{}, domain.EventInventoryLimit},
		{&domain.InsufficientInventoryError{}, domain.EventInsufficientStock},
		{domain.ErrNotFound, domain.EventNotFound},
		{domain.ErrEmptyCart, domain.EventEmptyCart},
		{errors.New("boom"), domain.EventCommandRejected},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FailureKind(tt.err))
		})
	}
}

func TestMnemonic(t *testing.T) {
	assert.Equal(t, "Happy Tiger", domain.Mnemonic(""))
	assert.Equal(t, "Happy Tiger", domain.Mnemonic("00000000-ffff"))
	assert.Equal(t, "Bright Tiger", domain.Mnemonic("1"))

	id := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	assert.Equal(t, domain.Mnemonic(id), domain.Mnemonic(id))
}
