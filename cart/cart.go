// Package cart manages the per-session shopping cart: a mapping from product
// id to quantity and a unit price frozen at the time the product was first
// added. The cart never re-reads prices from the catalog, so in-cart totals
// stay stable even when catalog prices change mid-session.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"webshop/models"
	"webshop/sessions"
)

const sessionKey = "cart"

// schemaVersion tags the persisted cart record so the format can evolve.
const schemaVersion = 1

var ErrInvalidQuantity = errors.New("cart: quantity must not be negative")

// Catalog is the read-only slice of the product store the cart needs:
// one batched lookup for all ids currently in the cart.
type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error)
}

// Entry is one cart line as persisted in the session.
type Entry struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

type state struct {
	Version int              `json:"version"`
	Order   []string         `json:"order,omitempty"`
	Items   map[string]Entry `json:"items"`
}

// Line is an enriched cart entry produced by Lines: the raw entry joined with
// its catalog product and the derived line total.
type Line struct {
	Product    models.Product  `json:"product"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type Cart struct {
	session *sessions.Session
	state   state
}

// New binds a cart to the session's cart entry, starting empty when the
// session has none. Calling it repeatedly on the same session is idempotent.
func New(sess *sessions.Session) (*Cart, error) {
	c := &Cart{session: sess}
	ok, err := sess.Get(sessionKey, &c.state)
	if err != nil {
		return nil, fmt.Errorf("cart: decode session entry: %w", err)
	}
	if !ok || c.state.Items == nil {
		c.state = state{Version: schemaVersion, Items: map[string]Entry{}}
	}
	return c, nil
}

// Add puts quantity units of product into the cart. The unit price is
// snapshotted from the product on first add and never overwritten afterwards.
// With replace set the quantity overwrites the existing one, otherwise it is
// added to it.
func (c *Cart) Add(product *models.Product, quantity int, replace bool) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	id := strconv.Itoa(product.ID)
	entry, ok := c.state.Items[id]
	if !ok {
		entry = Entry{Price: product.Price.String()}
		c.state.Order = append(c.state.Order, id)
	}

	if replace {
		entry.Quantity = quantity
	} else {
		entry.Quantity += quantity
	}

	c.state.Items[id] = entry
	return c.save()
}

// Remove deletes the entry for the given product id. Removing a product that
// is not in the cart is a no-op, not an error.
func (c *Cart) Remove(productID int) error {
	id := strconv.Itoa(productID)
	if _, ok := c.state.Items[id]; !ok {
		return nil
	}

	delete(c.state.Items, id)
	for i, v := range c.state.Order {
		if v == id {
			c.state.Order = append(c.state.Order[:i], c.state.Order[i+1:]...)
			break
		}
	}
	return c.save()
}

// Lines joins the cart entries with their catalog products through a single
// batched lookup and returns one enriched line per entry, in insertion order.
// Entries whose product no longer resolves in the catalog are skipped here
// but stay in the underlying cart state until removed or cleared.
func (c *Cart) Lines(ctx context.Context, catalog Catalog) ([]Line, error) {
	if len(c.state.Items) == 0 {
		return []Line{}, nil
	}

	ids := make([]int, 0, len(c.state.Order))
	for _, id := range c.state.Order {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}

	products, err := catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cart: resolve products: %w", err)
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[strconv.Itoa(p.ID)] = p
	}

	lines := make([]Line, 0, len(c.state.Order))
	for _, id := range c.state.Order {
		product, ok := byID[id]
		if !ok {
			continue
		}
		entry := c.state.Items[id]
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("cart: bad price %q for product %s: %w", entry.Price, id, err)
		}
		lines = append(lines, Line{
			Product:    product,
			Quantity:   entry.Quantity,
			Price:      price,
			TotalPrice: price.Mul(decimal.NewFromInt(int64(entry.Quantity))),
		})
	}
	return lines, nil
}

// Len is the sum of quantities across all entries, not the number of
// distinct lines.
func (c *Cart) Len() int {
	total := 0
	for _, entry := range c.state.Items {
		total += entry.Quantity
	}
	return total
}

// TotalPrice sums price times quantity over all entries using the frozen
// add-time prices.
func (c *Cart) TotalPrice() (decimal.Decimal, error) {
	total := decimal.Zero
	for id, entry := range c.state.Items {
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cart: bad price %q for product %s: %w", entry.Price, id, err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total, nil
}

// Clear removes the cart entry from the session entirely.
func (c *Cart) Clear() {
	c.session.Delete(sessionKey)
	c.state = state{Version: schemaVersion, Items: map[string]Entry{}}
}

// Entry returns the raw persisted entry for a product id, mainly for tests
// and diagnostics.
func (c *Cart) Entry(productID int) (Entry, bool) {
	entry, ok := c.state.Items[strconv.Itoa(productID)]
	return entry, ok
}

func (c *Cart) save() error {
	return c.session.Set(sessionKey, c.state)
}
