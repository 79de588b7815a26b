package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiazm/optrack/src/eventmodels"
)

func TestRebuildStrategies(t *testing.T) {
	t.Run("partitions positions by strategy id", func(t *testing.T) {
		front := newOptionPosition("EEM", 1)
		front.StrategyID = "vertical-eem-1"
		front.StrategyType = "vertical"

		back := newOptionPosition("IWM", -1)
		back.StrategyID = "vertical-eem-1"
		back.StrategyType = "vertical"

		other := newOptionPosition("FXI", 1)
		other.StrategyID = "strangle-fxi-1"
		other.StrategyType = "strangle"

		strategies := RebuildStrategies(map[eventmodels.PositionKey]*eventmodels.Position{
			front.Key(): front,
			back.Key():  back,
			other.Key(): other,
		})

		require.Len(t, strategies, 2)
		assert.Len(t, strategies["vertical-eem-1"].Positions, 2)
		assert.Equal(t, eventmodels.StrategyType("vertical"), strategies["vertical-eem-1"].Type)
		assert.Len(t, strategies["strangle-fxi-1"].Positions, 1)
	})

	t.Run("positions without a strategy id form the unassigned group", func(t *testing.T) {
		equity := newOptionPosition("SPY", 100)
		equity.StrategyID = ""

		strategies := RebuildStrategies(map[eventmodels.PositionKey]*eventmodels.Position{
			equity.Key(): equity,
		})

		require.Len(t, strategies, 1)
		group, found := strategies[eventmodels.UnassignedStrategyID]
		require.True(t, found)
		assert.Len(t, group.Positions, 1)
	})

	t.Run("every position lands in exactly one group", func(t *testing.T) {
		positions := make(map[eventmodels.PositionKey]*eventmodels.Position)
		for _, code := range []string{"EEM", "IWM", "FXI", "VXX"} {
			position := newOptionPosition(code, 1)
			if code == "EEM" || code == "IWM" {
				position.StrategyID = "vertical-1"
			}
			positions[position.Key()] = position
		}

		strategies := RebuildStrategies(positions)

		total := 0
		seen := make(map[eventmodels.PositionKey]bool)
		for _, strategy := range strategies {
			for _, position := range strategy.Positions {
				assert.False(t, seen[position.Key()], "position %s appears twice", position.Key())
				seen[position.Key()] = true
				total++
			}
		}

		assert.Equal(t, len(positions), total)
	})

	t.Run("rebuild is idempotent", func(t *testing.T) {
		position := newOptionPosition("EEM", 1)
		position.StrategyID = "vertical-1"
		positions := map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}

		first := RebuildStrategies(positions)
		second := RebuildStrategies(positions)

		require.Len(t, second, len(first))
		assert.Len(t, second["vertical-1"].Positions, len(first["vertical-1"].Positions))
	})

	t.Run("groups reference the ledger's positions", func(t *testing.T) {
		position := newOptionPosition("EEM", 1)
		position.StrategyID = "vertical-1"
		positions := map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}

		strategies := RebuildStrategies(positions)

		assert.Same(t, position, strategies["vertical-1"].Positions[0])
	})
}
