package cart_test

import (
	"errors"
	"testing"

	"kiosk/internal/domain/cart"
	"kiosk/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	americano = model.MenuItem{ID: 1, Name: "Americano", Price: 25000}
	latte     = model.MenuItem{ID: 2, Name: "Latte", Price: 30000}
)

func assertNoZeroEntries(t *testing.T, c *cart.Cart) {
	t.Helper()
	for _, e := range c.Entries() {
		assert.Greater(t, e.Quantity, int64(0), "item %d", e.Item.ID)
	}
}

func stage(t *testing.T, c *cart.Cart, itemID, delta int64) int64 {
	t.Helper()
	q, err := c.SetQuantity(itemID, delta)
	require.NoError(t, err)
	return q
}

func assertTotalConsistent(t *testing.T, c *cart.Cart) {
	t.Helper()
	var sum int64
	for _, e := range c.Entries() {
		assert.Equal(t, e.Quantity*e.Item.Price.Int64(), e.LineTotal())
		sum += e.LineTotal()
	}
	assert.Equal(t, sum, c.Total())
}

func TestCart_SetQuantity_NeverNegative(t *testing.T) {
	c := cart.New()

	deltas := []int64{-1, 1, -1, -1, 1, 1, 1, -1, -1, -1, -1}
	for _, d := range deltas {
		got := stage(t, c, 1, d)
		assert.GreaterOrEqual(t, got, int64(0))
		assert.Equal(t, got, c.Staged(1))
	}
	assert.Equal(t, int64(0), c.Staged(1))
}

func TestCart_SetQuantity_NoUpperBound(t *testing.T) {
	c := cart.New()
	for i := 0; i < 500; i++ {
		stage(t, c, 1, 1)
	}
	assert.Equal(t, int64(500), c.Staged(1))
	assert.Equal(t, 0, c.Len())
}

func TestCart_CommitToCart_ZeroStagesOne(t *testing.T) {
	c := cart.New()

	committed, err := c.CommitToCart(americano, 0)
	require.NoError(t, err)

	assert.False(t, committed)
	assert.Equal(t, int64(1), c.Staged(americano.ID))
	assert.Equal(t, 0, c.Len())
}

func TestCart_CommitToCart_StagingRoundTrip(t *testing.T) {
	c := cart.New()

	stage(t, c, americano.ID, 1)
	stage(t, c, americano.ID, 1)
	require.Equal(t, int64(2), c.Staged(americano.ID))

	committed, err := c.CommitToCart(americano, 2)
	require.NoError(t, err)
	assert.True(t, committed)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].Quantity)
	assert.Equal(t, int64(50000), entries[0].LineTotal())
	assert.Equal(t, int64(0), c.Staged(americano.ID))
}

func TestCart_CommitToCart_OverwritesExisting(t *testing.T) {
	c := cart.New()

	_, err := c.CommitToCart(americano, 3)
	require.NoError(t, err)
	_, err = c.CommitToCart(americano, 1)
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].Quantity)
}

func TestCart_CommitToCart_Negative(t *testing.T) {
	c := cart.New()

	_, err := c.CommitToCart(americano, -2)
	assert.True(t, errors.Is(err, cart.ErrInvalidQuantity))
	assert.Equal(t, 0, c.Len())
}

func TestCart_CommitStaged_UsesStagedCounter(t *testing.T) {
	c := cart.New()

	committed, err := c.CommitStaged(latte)
	require.NoError(t, err)
	assert.False(t, committed)

	committed, err = c.CommitStaged(latte)
	require.NoError(t, err)
	assert.True(t, committed)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].Quantity)
	assert.Equal(t, int64(0), c.Staged(latte.ID))
}

func TestCart_QuickAdd_OverwritesNotMerges(t *testing.T) {
	c := cart.New()

	_, err := c.CommitToCart(americano, 3)
	require.NoError(t, err)
	stage(t, c, americano.ID, 4)

	require.NoError(t, c.QuickAdd(americano))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].Quantity)
	assert.Equal(t, int64(25000), entries[0].LineTotal())
	assert.Equal(t, int64(0), c.Staged(americano.ID))
}

func TestCart_EntrySnapshotKeepsPrice(t *testing.T) {
	c := cart.New()

	item := americano
	require.NoError(t, c.QuickAdd(item))
	item.Price = 99000

	assert.Equal(t, int64(25000), c.Total())
}

func TestCart_RemoveOrZero_DropsEntryAtZero(t *testing.T) {
	c := cart.New()

	_, err := c.CommitToCart(americano, 2)
	require.NoError(t, err)

	ok, err := c.RemoveOrZero(americano.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), c.Entries()[0].Quantity)
	assertNoZeroEntries(t, c)

	ok, err = c.RemoveOrZero(americano.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, c.Len())

	ok, err = c.RemoveOrZero(americano.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCart_AdjustQuantity(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.QuickAdd(latte))

	ok, err := c.AdjustQuantity(latte.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), c.ItemCount())
	assertTotalConsistent(t, c)

	ok, err = c.AdjustQuantity(latte.ID, -10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, c.Len())
	assertNoZeroEntries(t, c)
}

func TestCart_Remove(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.QuickAdd(americano))
	require.NoError(t, c.QuickAdd(latte))

	ok, err := c.Remove(americano.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Remove(americano.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, latte.ID, entries[0].Item.ID)
}

func TestCart_Clear_Idempotent(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.QuickAdd(americano))
	stage(t, c, latte.ID, 2)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, int64(0), c.Staged(latte.ID))

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Total())
	assert.Empty(t, c.Entries())
}

func TestCart_Entries_InsertionOrder(t *testing.T) {
	c := cart.New()
	mocha := model.MenuItem{ID: 7, Name: "Mocha", Price: 32000}

	require.NoError(t, c.QuickAdd(latte))
	require.NoError(t, c.QuickAdd(mocha))
	require.NoError(t, c.QuickAdd(americano))
	require.NoError(t, c.QuickAdd(mocha))

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []int64{2, 7, 1}, []int64{entries[0].Item.ID, entries[1].Item.ID, entries[2].Item.ID})
}

func TestCart_ToOrderRequest_Empty(t *testing.T) {
	c := cart.New()

	_, err := c.ToOrderRequest()
	assert.True(t, errors.Is(err, cart.ErrEmptyCart))
}

func TestCart_SubmissionFailure_PreservesState(t *testing.T) {
	c := cart.New()
	_, err := c.CommitToCart(americano, 1)
	require.NoError(t, err)
	_, err = c.CommitToCart(latte, 2)
	require.NoError(t, err)

	before, err := c.ToOrderRequest()
	require.NoError(t, err)

	fail := errors.New("connection refused")
	_, err = c.ApplySubmissionResult(model.SubmissionResult{Err: fail})
	assert.Equal(t, fail, err)

	after, err := c.ToOrderRequest()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(85000), c.Total())
}

func TestCart_SubmissionSuccess_ClearsState(t *testing.T) {
	c := cart.New()
	_, err := c.CommitToCart(americano, 1)
	require.NoError(t, err)
	_, err = c.CommitToCart(latte, 2)
	require.NoError(t, err)

	total, err := c.ApplySubmissionResult(model.SubmissionResult{Total: 85000})
	require.NoError(t, err)

	assert.Equal(t, int64(85000), total)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Total())
}

func TestCart_ServerTotalIsAuthoritative(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.QuickAdd(americano))

	total, err := c.ApplySubmissionResult(model.SubmissionResult{Total: 20000})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), total)
}

func TestCart_SubmitGuard(t *testing.T) {
	c := cart.New()

	require.NoError(t, c.BeginSubmit())
	assert.True(t, c.Submitting())
	assert.True(t, errors.Is(c.BeginSubmit(), cart.ErrSubmissionInFlight))

	c.EndSubmit()
	assert.False(t, c.Submitting())
	assert.NoError(t, c.BeginSubmit())
}

func TestCart_Scenario_CommitQuickAddSubmit(t *testing.T) {
	c := cart.New()

	_, err := c.CommitToCart(americano, 2)
	require.NoError(t, err)
	require.NoError(t, c.QuickAdd(latte))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].Quantity)
	assert.Equal(t, int64(50000), entries[0].LineTotal())
	assert.Equal(t, int64(1), entries[1].Quantity)
	assert.Equal(t, int64(30000), entries[1].LineTotal())
	assert.Equal(t, int64(80000), c.Total())
	assertTotalConsistent(t, c)

	req, err := c.ToOrderRequest()
	require.NoError(t, err)
	assert.Equal(t, []model.OrderLine{{MenuID: 1, Quantity: 2}, {MenuID: 2, Quantity: 1}}, req.Orders)

	total, err := c.ApplySubmissionResult(model.SubmissionResult{Total: 80000})
	require.NoError(t, err)
	assert.Equal(t, int64(80000), total)
	assert.Equal(t, 0, c.Len())
}

func TestCart_MutationsRejectedWhileSubmitting(t *testing.T) {
	c := cart.New()
	_, err := c.CommitToCart(americano, 2)
	require.NoError(t, err)
	stage(t, c, latte.ID, 1)

	before, err := c.ToOrderRequest()
	require.NoError(t, err)
	require.NoError(t, c.BeginSubmit())

	// 送信中に届いた操作はどれも反映しない
	_, err = c.SetQuantity(latte.ID, 1)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	_, err = c.CommitToCart(latte, 1)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	_, err = c.CommitStaged(latte)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	assert.True(t, errors.Is(c.QuickAdd(latte), cart.ErrSubmissionInFlight))
	_, err = c.RemoveOrZero(americano.ID)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	_, err = c.AdjustQuantity(americano.ID, 3)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	_, err = c.Remove(americano.ID)
	assert.True(t, errors.Is(err, cart.ErrSubmissionInFlight))
	assert.True(t, errors.Is(c.Clear(), cart.ErrSubmissionInFlight))

	after, err := c.ToOrderRequest()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int64(1), c.Staged(latte.ID))

	// 送信成功でカートは空になる
	total, err := c.ApplySubmissionResult(model.SubmissionResult{Total: 50000})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), total)
	c.EndSubmit()

	assert.Equal(t, 0, c.Len())
	require.NoError(t, c.QuickAdd(latte))
	assert.Equal(t, 1, c.Len())
}
