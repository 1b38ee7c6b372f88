// Package console is a line-oriented front end for a shopping session. It
// owns every user-facing string; the store only reports events and errors.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/nikolayk812/cartrecon/internal/catalog"
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/store"
)

var (
	errUsage   = errors.New("usage")
	errUnknown = errors.New("unknown command")
	errQuit    = errors.New("quit")
)

// Countdown is the part of the checkout timer the console displays.
type Countdown interface {
	Remaining() time.Duration
	Running() bool
}

type Console struct {
	store   *store.Store
	catalog *catalog.Catalog
	timer   Countdown
	out     io.Writer
}

func New(s *store.Store, c *catalog.Catalog, timer Countdown, out io.Writer) *Console {
	return &Console{store: s, catalog: c, timer: timer, out: out}
}

// Run reads commands from in until EOF, "quit" or ctx is cancelled. A read
// blocked on in does not hold Run up once ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errCh := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errCh <- sc.Err()
	}()

	c.printf("type 'help' for commands\n")

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errCh
			}
			if ctx.Err() != nil {
				return nil
			}

			err := c.Execute(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				c.printf("! %s\n", describe(err))
			}
		}
	}
}

// Publish prints the notices a shopper should see without asking.
func (c *Console) Publish(e domain.Event) {
	switch e.Kind {
	case domain.EventBackInStock:
		c.printf("* %s is back in stock (%d available)\n", c.productName(e.ProductID), e.Available)
	case domain.EventInventoryLimit, domain.EventOutOfStock:
		if e.Available == 0 {
			c.printf("* %s is sold out, 'watch %d' to hear when it returns\n", c.productName(e.ProductID), e.ProductID)
		}
	}
}

// Execute runs a single command line.
func (c *Console) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "help":
		c.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "products":
		c.products()
		return nil
	case "cart", "show":
		c.show()
		return nil
	case "add":
		return c.withProduct(args, func(p domain.Product) error {
			item, err := c.store.AddToCart(p.ID, p.Price)
			if err != nil {
				return err
			}
			c.printf("added %s (x%d)\n", p.Name, item.Quantity)
			return nil
		})
	case "later-add":
		return c.withProduct(args, func(p domain.Product) error {
			if _, err := c.store.SaveProductForLater(p.ID, p.Price); err != nil {
				return err
			}
			c.printf("saved %s for later\n", p.Name)
			return nil
		})
	case "qty":
		if len(args) != 2 {
			return fmt.Errorf("%w: qty <line> <quantity>", errUsage)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: quantity must be a number", errUsage)
		}
		id, err := c.cartLine(args[0])
		if err != nil {
			return err
		}
		item, err := c.store.UpdateQuantity(id, n)
		if err != nil {
			return err
		}
		c.printf("%s now x%d\n", c.productName(item.ProductID), item.Quantity)
		return nil
	case "rm":
		return c.withCartLine(args, func(id uuid.UUID) error {
			item, err := c.store.RemoveItem(id)
			if err != nil {
				return err
			}
			c.printf("removed %s\n", c.productName(item.ProductID))
			return nil
		})
	case "later":
		return c.withCartLine(args, func(id uuid.UUID) error {
			item, err := c.store.SaveForLater(id)
			if err != nil {
				return err
			}
			c.printf("saved %s for later\n", c.productName(item.ProductID))
			return nil
		})
	case "back":
		return c.withLaterLine(args, func(id uuid.UUID) error {
			item, err := c.store.MoveToCart(id)
			if err != nil {
				return err
			}
			c.printf("moved %s to cart (x%d)\n", c.productName(item.ProductID), item.Quantity)
			return nil
		})
	case "drop":
		return c.withLaterLine(args, func(id uuid.UUID) error {
			item, err := c.store.RemoveSavedItem(id)
			if err != nil {
				return err
			}
			c.printf("dropped %s\n", c.productName(item.ProductID))
			return nil
		})
	case "save":
		saved, ok, err := c.store.SaveCart()
		if err != nil {
			return err
		}
		if !ok {
			c.printf("nothing to save\n")
			return nil
		}
		c.printf("saved cart %q\n", saved.Name)
		return nil
	case "load":
		return c.withSavedCart(args, func(sc domain.SavedCart) error {
			if _, err := c.store.LoadCart(sc.ID); err != nil {
				return err
			}
			c.printf("loaded %q ('undo' to go back)\n", sc.Name)
			return nil
		})
	case "merge":
		return c.withSavedCart(args, func(sc domain.SavedCart) error {
			if _, err := c.store.AddCartItems(sc.ID); err != nil {
				return err
			}
			c.printf("added items from %q\n", sc.Name)
			return nil
		})
	case "delete":
		return c.withSavedCart(args, func(sc domain.SavedCart) error {
			if err := c.store.DeleteCart(sc.ID); err != nil {
				return err
			}
			c.printf("deleted %q\n", sc.Name)
			return nil
		})
	case "undo":
		undone, err := c.store.UndoCartLoad()
		if err != nil {
			return err
		}
		if !undone {
			c.printf("nothing to undo\n")
			return nil
		}
		c.printf("previous cart restored\n")
		return nil
	case "discount":
		if err := c.store.ApplyDiscount(strings.Join(args, " ")); err != nil {
			return err
		}
		c.printf("discount applied, total %s\n", c.store.Total())
		return nil
	case "nodiscount":
		c.store.RemoveDiscount()
		c.printf("discount removed\n")
		return nil
	case "checkout":
		r, err := c.store.Checkout()
		if err != nil {
			return err
		}
		c.printf("checking out %d item(s) for %s\n", r.Units, r.Total)
		return nil
	case "watch":
		return c.withProduct(args, func(p domain.Product) error {
			c.store.Watch(p.ID)
			c.printf("watching %s\n", p.Name)
			return nil
		})
	case "unwatch":
		return c.withProduct(args, func(p domain.Product) error {
			if c.store.Unwatch(p.ID) {
				c.printf("stopped watching %s\n", p.Name)
			}
			return nil
		})
	case "restock":
		if len(args) != 2 {
			return fmt.Errorf("%w: restock <product> <units>", errUsage)
		}
		return c.withProduct(args[:1], func(p domain.Product) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: units must be a number", errUsage)
			}
			if err := c.store.Restock(p.ID, n); err != nil {
				return err
			}
			c.printf("received %d x %s\n", n, p.Name)
			return nil
		})
	}

	return fmt.Errorf("%w %q", errUnknown, cmd)
}

func (c *Console) withProduct(args []string, fn func(p domain.Product) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a product id", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: product id must be a number", errUsage)
	}
	p, ok := c.catalog.Get(domain.ProductID(id))
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return fn(p)
}

func (c *Console) withCartLine(args []string, fn func(id uuid.UUID) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a cart line number", errUsage)
	}
	id, err := c.cartLine(args[0])
	if err != nil {
		return err
	}
	return fn(id)
}

func (c *Console) withLaterLine(args []string, fn func(id uuid.UUID) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a saved-for-later line number", errUsage)
	}
	items := c.store.SaveForLaterItems()
	idx, err := lineIndex(args[0], len(items))
	if err != nil {
		return err
	}
	return fn(items[idx].ID)
}

func (c *Console) withSavedCart(args []string, fn func(sc domain.SavedCart) error) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected a saved cart number", errUsage)
	}
	carts := c.store.SavedCarts()
	idx, err := lineIndex(args[0], len(carts))
	if err != nil {
		return err
	}
	return fn(carts[idx])
}

func (c *Console) cartLine(arg string) (uuid.UUID, error) {
	items := c.store.Cart().Items
	idx, err := lineIndex(arg, len(items))
	if err != nil {
		return uuid.Nil, err
	}
	return items[idx].ID, nil
}

// lineIndex turns a 1-based line number into a slice index.
func lineIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: line must be a number", errUsage)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("line %d: %w", i, domain.ErrNotFound)
	}
	return i - 1, nil
}

func (c *Console) productName(id domain.ProductID) string {
	if p, ok := c.catalog.Get(id); ok {
		return p.Name
	}
	return fmt.Sprintf("product %d", id)
}

func (c *Console) products() {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tAVAILABLE")
	for _, p := range c.catalog.List() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.Name, p.Price, c.store.Inventory(p.ID))
	}
	_ = tw.Flush()
}

func (c *Console) show() {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)

	cart := c.store.Cart()
	fmt.Fprintf(tw, "CART (%d items)\n", cart.Units())
	for i, it := range cart.Items {
		fmt.Fprintf(tw, "  %d\t%s\tx%d\t%s\n", i+1, c.productName(it.ProductID), it.Quantity, it.LineTotal())
	}

	if later := c.store.SaveForLaterItems(); len(later) > 0 {
		fmt.Fprintln(tw, "SAVED FOR LATER")
		for i, it := range later {
			fmt.Fprintf(tw, "  %d\t%s\tx%d\t%s\n", i+1, c.productName(it.ProductID), it.Quantity, it.LineTotal())
		}
	}

	if saved := c.store.SavedCarts(); len(saved) > 0 {
		fmt.Fprintln(tw, "SAVED CARTS")
		for i, sc := range saved {
			fmt.Fprintf(tw, "  %d\t%s\t%d lines\t\n", i+1, sc.Name, len(sc.Items))
		}
	}
	_ = tw.Flush()

	if cart.IsEmpty() {
		return
	}

	if code := c.store.DiscountCode(); code != "" {
		c.printf("discount %q: %s -> %s\n", code, c.store.Subtotal(), c.store.Total())
	} else {
		c.printf("total %s\n", c.store.Total())
	}
	if c.timer != nil && c.timer.Running() {
		left := c.timer.Remaining().Round(time.Second)
		c.printf("checkout within %d:%02d\n", int(left.Minutes()), int(left.Seconds())%60)
	}
}

func (c *Console) help() {
	c.printf(`products                list products and stock
cart                    show cart, saved-for-later and saved carts
add <product>           add one unit to the cart
qty <line> <n>          change a cart line quantity
rm <line>               remove a cart line
later <line>            move a cart line to saved-for-later
later-add <product>     save a product for later
back <line>             move a saved-for-later line to the cart
drop <line>             remove a saved-for-later line
save                    save a copy of the cart
load|merge <n>          replace the cart with / add items from saved cart n
delete <n>              delete saved cart n
undo                    undo the last load or merge
discount <code>         apply a discount code
nodiscount              remove the discount
checkout                check out
watch|unwatch <product> follow restocks of a product
restock <product> <n>   receive stock
quit
`)
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// describe renders an error for the shopper.
func describe(err error) string {
	var limit *domain.InventoryLimitReachedError
	var insufficient *domain.InsufficientInventoryError

	switch {
	case errors.As(err, &limit):
		return fmt.Sprintf("only %d available", limit.Available)
	case errors.As(err, &insufficient):
		return fmt.Sprintf("not enough stock: need %d, %d available", insufficient.Required, insufficient.Available)
	case errors.Is(err, domain.ErrOutOfStock):
		return "out of stock"
	case errors.Is(err, domain.ErrEmptyCart):
		return "add some items before checking out"
	default:
		return err.Error()
	}
}
