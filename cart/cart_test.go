package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"webshop/cart"
	"webshop/models"
	"webshop/sessions"
)

type stubCatalog struct {
	products map[int]models.Product
}

func (s *stubCatalog) ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func product(id int, price string) models.Product {
	return models.Product{
		ID:        id,
		Name:      "product",
		Slug:      "product",
		Price:     decimal.RequireFromString(price),
		Available: true,
	}
}

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	sess, err := sessions.NewMemoryStore().Load(context.Background(), "test")
	require.NoError(t, err)
	crt, err := cart.New(sess)
	require.NoError(t, err)
	return crt
}

func TestAddAccumulatesQuantity(t *testing.T) {
	crt := newTestCart(t)
	p := product(1, "4.50")

	require.NoError(t, crt.Add(&p, 2, false))
	require.NoError(t, crt.Add(&p, 3, false))

	entry, ok := crt.Entry(1)
	require.True(t, ok)
	require.Equal(t, 5, entry.Quantity)
	require.Equal(t, 5, crt.Len())
}

func TestAddReplaceOverwritesQuantity(t *testing.T) {
	crt := newTestCart(t)
	p := product(1, "4.50")

	require.NoError(t, crt.Add(&p, 2, false))
	require.NoError(t, crt.Add(&p, 5, true))

	entry, _ := crt.Entry(1)
	require.Equal(t, 5, entry.Quantity)
}

func TestAddRejectsNegativeQuantity(t *testing.T) {
	crt := newTestCart(t)
	p := product(1, "4.50")

	err := crt.Add(&p, -1, false)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)
	require.Equal(t, 0, crt.Len())
}

func TestPriceFrozenAtFirstAdd(t *testing.T) {
	crt := newTestCart(t)
	p := product(1, "10.00")
	require.NoError(t, crt.Add(&p, 2, false))

	// Catalog price changes mid-session; the cart must not notice.
	p.Price = decimal.RequireFromString("12.00")
	require.NoError(t, crt.Add(&p, 1, false))

	entry, _ := crt.Entry(1)
	require.True(t, decimal.RequireFromString("10").Equal(decimal.RequireFromString(entry.Price)))

	total, err := crt.TotalPrice()
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("30.00").Equal(total), "got %s", total)
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	crt := newTestCart(t)
	p := product(1, "4.50")
	require.NoError(t, crt.Add(&p, 2, false))

	require.NoError(t, crt.Remove(99))
	require.Equal(t, 2, crt.Len())
}

func TestTotalPriceEmptyCartIsZero(t *testing.T) {
	crt := newTestCart(t)

	total, err := crt.TotalPrice()
	require.NoError(t, err)
	require.True(t, total.IsZero())
	require.Equal(t, 0, crt.Len())
}

func TestLinesJoinInInsertionOrder(t *testing.T) {
	crt := newTestCart(t)
	p2 := product(2, "1.25")
	p1 := product(1, "4.50")
	require.NoError(t, crt.Add(&p2, 1, false))
	require.NoError(t, crt.Add(&p1, 3, false))

	catalog := &stubCatalog{products: map[int]models.Product{1: p1, 2: p2}}
	lines, err := crt.Lines(context.Background(), catalog)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Equal(t, 2, lines[0].Product.ID)
	require.Equal(t, 1, lines[1].Product.ID)
	require.True(t, decimal.RequireFromString("13.50").Equal(lines[1].TotalPrice))
}

func TestLinesExcludesOrphanedEntries(t *testing.T) {
	crt := newTestCart(t)
	p1 := product(1, "4.50")
	p2 := product(2, "1.25")
	require.NoError(t, crt.Add(&p1, 1, false))
	require.NoError(t, crt.Add(&p2, 2, false))

	// Product 2 has since been deleted from the catalog.
	catalog := &stubCatalog{products: map[int]models.Product{1: p1}}
	lines, err := crt.Lines(context.Background(), catalog)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 1, lines[0].Product.ID)

	// The orphaned entry stays in the raw cart state.
	_, ok := crt.Entry(2)
	require.True(t, ok)
	require.Equal(t, 3, crt.Len())
}

func TestClearThenReinitializeYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore()

	sess, err := store.Load(ctx, "visitor")
	require.NoError(t, err)
	crt, err := cart.New(sess)
	require.NoError(t, err)
	p := product(1, "4.50")
	require.NoError(t, crt.Add(&p, 2, false))
	crt.Clear()
	require.NoError(t, store.Save(ctx, sess))

	sess, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
	crt, err = cart.New(sess)
	require.NoError(t, err)
	require.Equal(t, 0, crt.Len())
}

func TestCartRoundTripsThroughStore(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewMemoryStore()

	sess, err := store.Load(ctx, "visitor")
	require.NoError(t, err)
	crt, err := cart.New(sess)
	require.NoError(t, err)
	p := product(7, "19.99")
	require.NoError(t, crt.Add(&p, 2, false))
	require.NoError(t, store.Save(ctx, sess))

	sess, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
	crt, err = cart.New(sess)
	require.NoError(t, err)

	entry, ok := crt.Entry(7)
	require.True(t, ok)
	require.Equal(t, 2, entry.Quantity)
	require.Equal(t, "19.99", entry.Price)
}

func TestExampleSequence(t *testing.T) {
	crt := newTestCart(t)
	p := product(7, "19.99")

	require.NoError(t, crt.Add(&p, 2, false))
	require.Equal(t, 2, crt.Len())
	total, err := crt.TotalPrice()
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("39.98").Equal(total), "got %s", total)

	require.NoError(t, crt.Add(&p, 1, false))
	require.Equal(t, 3, crt.Len())
	total, err = crt.TotalPrice()
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("59.97").Equal(total), "got %s", total)

	require.NoError(t, crt.Remove(7))
	require.Equal(t, 0, crt.Len())
}
