package reconcile

import (
	"testing"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_EmptyCart(t *testing.T) {
	items, total, err := Add(nil, 1, 2, 10.00, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].Price)
	assert.Equal(t, 20.00, total)
}

func TestAdd_MergesExistingLine(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 2, Price: 10.00}}

	next, total, err := Add(items, 1, 3, 10.00, 5)
	require.NoError(t, err)
	require.Len(t, next, 1, "same product must never produce two lines")
	assert.Equal(t, 5, next[0].Quantity)
	assert.Equal(t, 50.00, total)
}

func TestAdd_MergeRefreshesPriceSnapshot(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 2, Price: 10.00}}

	next, total, err := Add(items, 1, 1, 12.50, 10)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, 12.50, next[0].Price, "price snapshot follows the most recent add")
	assert.Equal(t, 37.50, total)
}

func TestAdd_InvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, _, err := Add(nil, 1, qty, 10.00, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestAdd_OutOfStock_LeavesItemsUntouched(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 5, Price: 10.00}}

	_, _, err := Add(items, 1, 1, 10.00, 4)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, 5, items[0].Quantity, "input slice must not be mutated")
}

func TestAdd_ExistingQuantityCountsAgainstStock(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 3, Price: 5.00}}

	// 3 already in cart + 3 requested > 5 available
	_, _, err := Add(items, 1, 3, 5.00, 5)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	// exactly fills remaining stock
	next, _, err := Add(items, 1, 2, 5.00, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, next[0].Quantity)
}

func TestAdd_SecondProductAppends(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 2, Price: 10.00}}

	next, total, err := Add(items, 2, 1, 35.00, 3)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, int64(2), next[1].ProductID, "insertion order preserved")
	assert.Equal(t, 55.00, total)
}

func TestUpdateQuantity_ReplacesQuantity(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 2, Price: 10.00},
		{ProductID: 2, Quantity: 1, Price: 5.00},
	}

	next, total, err := UpdateQuantity(items, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, next[0].Quantity)
	assert.Equal(t, 75.00, total)
	assert.Equal(t, 2, items[0].Quantity, "input slice must not be mutated")
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	_, _, err := UpdateQuantity(nil, 99, 3)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 2, Price: 10.00}}

	next, total, err := UpdateQuantity(items, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, next)
	assert.Equal(t, 0.00, total)
}

func TestUpdateQuantity_ZeroOnAbsentLineIsNoOp(t *testing.T) {
	items := []domain.CartItem{{ProductID: 1, Quantity: 2, Price: 10.00}}

	next, total, err := UpdateQuantity(items, 99, -1)
	require.NoError(t, err)
	assert.Len(t, next, 1)
	assert.Equal(t, 20.00, total)
}

func TestRemove_Idempotent(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 2, Price: 10.00},
		{ProductID: 2, Quantity: 1, Price: 5.00},
	}

	once, totalOnce := Remove(items, 1)
	twice, totalTwice := Remove(once, 1)

	assert.Equal(t, once, twice)
	assert.Equal(t, totalOnce, totalTwice)
	assert.Equal(t, 5.00, totalTwice)
}

func TestClear(t *testing.T) {
	items, total := Clear()
	assert.Empty(t, items)
	assert.Equal(t, 0.00, total)
}

func TestTotal_RoundsHalfUpToCents(t *testing.T) {
	// 3 x 0.115 = 0.345 -> 0.35 with half-up rounding
	items := []domain.CartItem{{ProductID: 1, Quantity: 3, Price: 0.115}}
	assert.Equal(t, 0.35, Total(items))

	// classic float trap: 0.1 + 0.2
	items = []domain.CartItem{
		{ProductID: 1, Quantity: 1, Price: 0.1},
		{ProductID: 2, Quantity: 1, Price: 0.2},
	}
	assert.Equal(t, 0.3, Total(items))
}

func TestTotal_MatchesSumOfSubtotals(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 3, Price: 19.99},
		{ProductID: 2, Quantity: 2, Price: 4.50},
		{ProductID: 3, Quantity: 1, Price: 120.00},
	}
	var want float64
	for _, it := range items {
		want += it.Subtotal()
	}
	assert.Equal(t, domain.RoundMoney(want), Total(items))
	assert.Equal(t, 188.97, Total(items))
}
