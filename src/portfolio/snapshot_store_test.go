package portfolio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiazm/optrack/src/eventmodels"
)

func TestSnapshotStore(t *testing.T) {
	t.Run("load of a missing file signals SnapshotUnavailableErr", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		_, err := store.Load()

		assert.ErrorIs(t, err, eventmodels.SnapshotUnavailableErr)
	})

	t.Run("round-trips an option position with trades", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		position := newOptionPosition("EEM", 2)
		position.Trades = []*eventmodels.Trade{newOptionTrade("EEM", 101)}
		positions := map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}

		require.NoError(t, store.Save(positions))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		restored := loaded[position.Key()]
		require.NotNil(t, restored)
		assert.Equal(t, position.Key(), restored.Key())
		assert.Equal(t, position.Quantity, restored.Quantity)
		require.Len(t, restored.Trades, 1)
		assert.Equal(t, position.Trades[0].ID, restored.Trades[0].ID)
		assert.Equal(t, position.Trades[0].Price, restored.Trades[0].Price)
		assert.Equal(t, position.Trades[0].ContractID, restored.Trades[0].ContractID)
	})

	t.Run("round-trips an equity position's NA dimensions", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		position := &eventmodels.Position{
			Code:      "SPY",
			AssetType: eventmodels.Stock,
			Strike:    math.NaN(),
			Quantity:  100,
		}
		positions := map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}

		require.NoError(t, store.Save(positions))

		loaded, err := store.Load()
		require.NoError(t, err)

		restored := loaded[position.Key()]
		require.NotNil(t, restored)
		assert.True(t, restored.Expiration.IsZero())
		assert.True(t, math.IsNaN(restored.Strike))
		assert.Equal(t, eventmodels.OptionRight(""), restored.Right)
		assert.Equal(t, eventmodels.OwnershipType(""), restored.Ownership)
		assert.Equal(t, position.Key(), restored.Key())
	})

	t.Run("save is a whole-file overwrite", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		first := newOptionPosition("EEM", 2)
		require.NoError(t, store.Save(map[eventmodels.PositionKey]*eventmodels.Position{
			first.Key(): first,
		}))

		second := newOptionPosition("IWM", 1)
		require.NoError(t, store.Save(map[eventmodels.PositionKey]*eventmodels.Position{
			second.Key(): second,
		}))

		loaded, err := store.Load()
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.NotNil(t, loaded[second.Key()])
	})

	t.Run("preserves trade timestamps", func(t *testing.T) {
		store := NewSnapshotStore(t.TempDir(), "positions.json")

		position := newOptionPosition("EEM", 2)
		trade := newOptionTrade("EEM", 101)
		position.Trades = []*eventmodels.Trade{trade}

		require.NoError(t, store.Save(map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}))

		loaded, err := store.Load()
		require.NoError(t, err)

		restored := loaded[position.Key()]
		require.Len(t, restored.Trades, 1)
		assert.True(t, restored.Trades[0].Timestamp.Equal(time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)))
	})
}
