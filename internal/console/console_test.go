package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/cartrecon/internal/catalog"
	"github.com/nikolayk812/cartrecon/internal/console"
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/inventory"
	"github.com/nikolayk812/cartrecon/internal/notify"
	"github.com/nikolayk812/cartrecon/internal/store"
)

type fixedCountdown struct{}

func (fixedCountdown) Remaining() time.Duration { return 29*time.Minute + 5*time.Second }
func (fixedCountdown) Running() bool { return true }

type harness struct {
	con   *console.Console
	store *store.Store
	out   *bytes.Buffer
}

func newHarness(t *testing.T) harness {
	t.Helper()

	cat := catalog.Default(currency.USD)
	ledger, err := inventory.NewLedger(cat.Stock())
	require.NoError(t, err)

	var (
		out  bytes.Buffer
		sink notify.Fanout
	)
	s := store.New(ledger, currency.USD, store.WithSink(&sink))
	con := console.New(s, cat, fixedCountdown{}, &out)
	sink = append(sink, con)

	return harness{con: con, store: s, out: &out}
}

func (h harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	h.out.Reset()
	require.NoError(t, h.con.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n"))))
	return h.out.String()
}

func TestConsole_AddAndShow(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 1", "add 1", "add 3", "cart")

	assert.Contains(t, out, "added Alpha SV Jacket (x2)")
	assert.Contains(t, out, "CART (3 items)")
	assert.Contains(t, out, "Atom LT Hoody")
	assert.Contains(t, out, "total 1899.97 USD")
	assert.Contains(t, out, "checkout within 29:05")
	assert.Equal(t, 3, h.store.Inventory(1))
}

func TestConsole_Failures(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "sold out product",
			lines: []string{"add 6"},
			want:  "! out of stock",
		},
		{
			name:  "quantity above stock",
			lines: []string{"add 5", "qty 1 3"},
			want:  "! only 2 available",
		},
		{
			name:  "empty checkout",
			lines: []string{"checkout"},
			want:  "! add some items before checking out",
		},
		{
			name:  "unknown line",
			lines: []string{"rm 4"},
			want:  "line 4: not found",
		},
		{
			name:  "unknown product",
			lines: []string{"add 99"},
			want:  "product 99: not found",
		},
		{
			name:  "bad argument",
			lines: []string{"qty 1 many"},
			want:  "! usage",
		},
		{
			name:  "unknown command",
			lines: []string{"fly"},
			want:  `unknown command "fly"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Contains(t, h.run(t, tt.lines...), tt.want)
		})
	}
}

func TestConsole_SoldOutNotice(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 6")

	assert.Contains(t, out, "Zeta SL Rain Jacket is sold out, 'watch 6'")
}

func TestConsole_SaveLoadUndo(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 2", "save", "rm 1", "add 3", "load 1", "undo", "undo")

	assert.Contains(t, out, "saved cart")
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "previous cart restored")
	assert.Contains(t, out, "nothing to undo")

	cart := h.store.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, domain.ProductID(3), cart.Items[0].ProductID)
	assert.Equal(t, 8, h.store.Inventory(2))
	assert.NoError(t, h.store.CheckInvariant())
}

func TestConsole_SaveForLaterRoundTrip(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 4", "later 1", "back 1", "later-add 7", "drop 1")

	assert.Contains(t, out, "saved Cerium Down Vest for later")
	assert.Contains(t, out, "moved Cerium Down Vest to cart (x1)")
	assert.Contains(t, out, "dropped Covert Fleece")
	assert.Len(t, h.store.Cart().Items, 1)
	assert.Empty(t, h.store.SaveForLaterItems())
	assert.NoError(t, h.store.CheckInvariant())
}

func TestConsole_WatchRestock(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "watch 6", "restock 6 4", "products")

	assert.Contains(t, out, "watching Zeta SL Rain Jacket")
	assert.Contains(t, out, "Zeta SL Rain Jacket is back in stock (4 available)")
	assert.Equal(t, 4, h.store.Inventory(6))
}

func TestConsole_DiscountAndCheckout(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "add 7", "discount SPRING", "cart", "checkout", "nodiscount")

	assert.Contains(t, out, "discount applied, total 161.99 USD")
	assert.Contains(t, out, `discount "SPRING": 179.99 USD -> 161.99 USD`)
	assert.Contains(t, out, "checking out 1 item(s) for 161.99 USD")
	assert.Contains(t, out, "discount removed")
	assert.Empty(t, h.store.DiscountCode())
}

func TestConsole_QuitStopsReading(t *testing.T) {
	h := newHarness(t)

	h.run(t, "add 1", "quit", "add 1")

	assert.Equal(t, 1, h.store.Cart().Units())
}

func TestConsole_CancelledContext(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.con.Run(ctx, strings.NewReader("add 1\n")))
	assert.True(t, h.store.Cart().IsEmpty())
}
