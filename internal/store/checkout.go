package store

import (
	"fmt"
	"strings"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

// Subtotal is the undiscounted value of the active cart.
func (s *Store) Subtotal() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.cart.Subtotal(s.currency)
}

// Total is the subtotal less any applied discount.
func (s *Store) Total() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.receipt(s.state).Total
}

// ApplyDiscount records a discount code. Any non-blank code takes 10% off.
func (s *Store) ApplyDiscount(code string) error {
	_, err := withTx(s, func(tx *txn) (struct{}, error) {
		code = strings.TrimSpace(code)
		if code == "" {
			return struct{}{}, domain.ErrInvalidDiscountCode
		}

		tx.discount = code
		tx.emit(domain.Event{Kind: domain.EventDiscountApplied})
		return struct{}{}, nil
	})
	return err
}

func (s *Store) RemoveDiscount() {
	_, _ = withTx(s, func(tx *txn) (struct{}, error) {
		if tx.discount == "" {
			return struct{}{}, nil
		}

		tx.discount = ""
		tx.emit(domain.Event{Kind: domain.EventDiscountRemoved})
		return struct{}{}, nil
	})
}

// Checkout acknowledges a non-empty cart. Nothing is charged or cleared.
func (s *Store) Checkout() (domain.Receipt, error) {
	return withTx(s, func(tx *txn) (domain.Receipt, error) {
		if tx.cart.IsEmpty() {
			return domain.Receipt{}, fmt.Errorf("checkout: %w", domain.ErrEmptyCart)
		}

		r := s.receipt(tx.state)

		tx.emit(domain.Event{
			Kind:     domain.EventCheckedOut,
			Quantity: r.Units,
		})
		return r, nil
	})
}

func (s *Store) receipt(st state) domain.Receipt {
	subtotal := st.cart.Subtotal(s.currency)

	discount := domain.Zero(s.currency)
	if st.discount != "" {
		discount = subtotal.Percent(discountPercent)
	}

	return domain.Receipt{
		Lines:    len(st.cart.Items),
		Units:    st.cart.Units(),
		Subtotal: subtotal,
		Discount: discount,
		Total: domain.Money{
			Amount:   subtotal.Amount.Sub(discount.Amount),
			Currency: s.currency,
		},
	}
}
