package portfolio

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/mock"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	return NewLedger(NewSnapshotStore(t.TempDir(), "positions.json"))
}

func newOptionPosition(code string, quantity float64) *eventmodels.Position {
	return &eventmodels.Position{
		Code:       code,
		AssetType:  eventmodels.Option,
		Expiration: time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		Strike:     40.0,
		Right:      eventmodels.CallRight,
		Ownership:  eventmodels.Long,
		Quantity:   quantity,
	}
}

func newOptionTrade(code string, contractID eventmodels.ContractID) *eventmodels.Trade {
	return &eventmodels.Trade{
		ID:           uuid.New(),
		Code:         code,
		AssetType:    eventmodels.Option,
		Expiration:   time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		Strike:       40.0,
		Right:        eventmodels.CallRight,
		Ownership:    eventmodels.Long,
		Quantity:     1,
		Price:        1.52,
		Timestamp:    time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
		Algorithm:    "manual",
		StrategyType: "vertical",
		StrategyID:   "vertical-eem-1",
		Role:         "front",
		ContractID:   contractID,
	}
}

func TestLedgerApplyPosition(t *testing.T) {
	t.Run("first event creates the position", func(t *testing.T) {
		ledger := newTestLedger(t)

		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Equal(t, 2.0, position.Quantity)
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("repeated identical event is a no-op", func(t *testing.T) {
		ledger := newTestLedger(t)

		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		assert.Equal(t, 1, ledger.Len())

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Equal(t, 2.0, position.Quantity)
	})

	t.Run("restatement updates quantity but keeps trades", func(t *testing.T) {
		ledger := newTestLedger(t)

		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))

		ledger.ApplyPosition(newOptionPosition("EEM", 3))

		position, found := ledger.Get(newOptionPosition("EEM", 3).Key())
		require.True(t, found)
		assert.Equal(t, 3.0, position.Quantity)
		assert.Len(t, position.Trades, 1)
	})

	t.Run("positions on different dimensions do not collide", func(t *testing.T) {
		ledger := newTestLedger(t)

		option := newOptionPosition("EEM", 2)
		equity := &eventmodels.Position{
			Code:      "EEM",
			AssetType: eventmodels.Stock,
			Strike:    math.NaN(),
			Quantity:  100,
		}

		ledger.ApplyPosition(option)
		ledger.ApplyPosition(equity)

		assert.Equal(t, 2, ledger.Len())
	})
}

func TestLedgerApplyTrade(t *testing.T) {
	t.Run("trade before position fails", func(t *testing.T) {
		ledger := newTestLedger(t)

		err := ledger.ApplyTrade(newOptionTrade("EEM", 101))

		assert.ErrorIs(t, err, eventmodels.UnknownPositionErr)
	})

	t.Run("trade after position succeeds and persists", func(t *testing.T) {
		ledger := newTestLedger(t)

		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Len(t, position.Trades, 1)

		persisted, err := ledger.store.Load()
		require.NoError(t, err)
		assert.Len(t, persisted[position.Key()].Trades, 1)
	})

	t.Run("second trade appends without altering the first", func(t *testing.T) {
		ledger := newTestLedger(t)

		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		first := newOptionTrade("EEM", 101)
		second := newOptionTrade("EEM", 101)
		second.Price = 1.61

		require.NoError(t, ledger.ApplyTrade(first))
		require.NoError(t, ledger.ApplyTrade(second))

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		require.Len(t, position.Trades, 2)
		assert.Equal(t, first.ID, position.Trades[0].ID)
		assert.Equal(t, 1.52, position.Trades[0].Price)
		assert.Equal(t, 1.61, position.Trades[1].Price)
	})
}

func TestLedgerMergeTradeHistory(t *testing.T) {
	t.Run("adopts persisted trades into an empty live position", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		seeded := NewLedger(store)
		seeded.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, seeded.ApplyTrade(newOptionTrade("EEM", 101)))

		ledger := NewLedger(store)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		require.NoError(t, ledger.MergeTradeHistory())

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Len(t, position.Trades, 1)
	})

	t.Run("never overwrites a populated trade sequence", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		seeded := NewLedger(store)
		seeded.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, seeded.ApplyTrade(newOptionTrade("EEM", 101)))
		require.NoError(t, seeded.ApplyTrade(newOptionTrade("EEM", 101)))

		ledger := NewLedger(store)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		live := newOptionTrade("EEM", 101)
		require.NoError(t, ledger.ApplyTrade(live))
		require.NoError(t, ledger.MergeTradeHistory())

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		require.Len(t, position.Trades, 1)
		assert.Equal(t, live.ID, position.Trades[0].ID)
	})

	t.Run("never introduces keys absent from the live ledger", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		seeded := NewLedger(store)
		seeded.ApplyPosition(newOptionPosition("EEM", 2))
		seeded.ApplyPosition(newOptionPosition("IWM", 1))
		require.NoError(t, seeded.ApplyTrade(newOptionTrade("EEM", 101)))
		require.NoError(t, seeded.ApplyTrade(newOptionTrade("IWM", 102)))

		ledger := NewLedger(store)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		require.NoError(t, ledger.MergeTradeHistory())

		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("missing snapshot is not an error", func(t *testing.T) {
		ledger := newTestLedger(t)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))

		assert.NoError(t, ledger.MergeTradeHistory())
	})
}

func TestLedgerRefreshEconomics(t *testing.T) {
	contract := &eventmodels.OptionContract{
		ContractID:       101,
		Code:             "EEM",
		AssetType:        eventmodels.Option,
		Expiration:       time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		Strike:           40.0,
		Right:            eventmodels.CallRight,
		OptionPrice:      1.74,
		UnderlyingPrice:  41.2,
		Delta:            0.55,
		DaysToExpiration: 21,
	}

	t.Run("projects the resolved contract onto the position", func(t *testing.T) {
		ledger := newTestLedger(t)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))

		ds := mock.NewMockMarketDataSource()
		ds.Options[101] = []*eventmodels.OptionContract{contract}

		require.NoError(t, ledger.RefreshEconomics(context.Background(), ds, nil))

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Equal(t, 1.74, position.OptionPrice)
		assert.Equal(t, 41.2, position.UnderlyingPrice)
		assert.Equal(t, 0.55, position.Delta)
		assert.Equal(t, 21, position.DaysToExpiration)
		assert.Equal(t, 1.52, position.TradePrice)
		assert.Equal(t, "manual", position.Algorithm)
		assert.Equal(t, eventmodels.StrategyID("vertical-eem-1"), position.StrategyID)
	})

	t.Run("two results for one id fail loudly and leave economics untouched", func(t *testing.T) {
		ledger := newTestLedger(t)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))

		ds := mock.NewMockMarketDataSource()
		ds.Options[101] = []*eventmodels.OptionContract{contract, contract}

		err := ledger.RefreshEconomics(context.Background(), ds, nil)

		assert.ErrorIs(t, err, eventmodels.AmbiguousLookupErr)

		position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
		require.True(t, found)
		assert.Equal(t, 0.0, position.OptionPrice)
		assert.Equal(t, 0.0, position.Delta)
	})

	t.Run("transport failure skips only the affected position", func(t *testing.T) {
		ledger := newTestLedger(t)
		ledger.ApplyPosition(newOptionPosition("EEM", 2))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))

		// nothing staged for id 101: the mock returns an error
		ds := mock.NewMockMarketDataSource()

		assert.NoError(t, ledger.RefreshEconomics(context.Background(), ds, nil))
	})

	t.Run("skips flat and trade-less positions", func(t *testing.T) {
		ledger := newTestLedger(t)
		ledger.ApplyPosition(newOptionPosition("EEM", 0))
		require.NoError(t, ledger.ApplyTrade(newOptionTrade("EEM", 101)))
		ledger.ApplyPosition(newOptionPosition("IWM", 1))

		ds := mock.NewMockMarketDataSource()

		require.NoError(t, ledger.RefreshEconomics(context.Background(), ds, nil))

		assert.Equal(t, 0, ds.OptionCalls)
	})
}

func TestLedgerPruneClosed(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.ApplyPosition(newOptionPosition("EEM", 0))
	ledger.ApplyPosition(newOptionPosition("IWM", 1))

	pruned := ledger.PruneClosed()

	assert.Equal(t, 1, pruned)
	assert.Equal(t, 1, ledger.Len())

	_, found := ledger.Get(newOptionPosition("IWM", 1).Key())
	assert.True(t, found)
}

func TestLedgerCopy(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.ApplyPosition(newOptionPosition("EEM", 2))

	copied := ledger.Copy()
	copied[newOptionPosition("EEM", 2).Key()].Quantity = 99

	position, found := ledger.Get(newOptionPosition("EEM", 2).Key())
	require.True(t, found)
	assert.Equal(t, 2.0, position.Quantity)
}
