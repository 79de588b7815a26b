package eventservices

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiazm/optrack/src/eventmodels"
)

func exportFixture() map[eventmodels.PositionKey]*eventmodels.Position {
	position := &eventmodels.Position{
		Code:       "EEM",
		AssetType:  eventmodels.Option,
		Expiration: time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		Strike:     40.0,
		Right:      eventmodels.CallRight,
		Ownership:  eventmodels.Long,
		Quantity:   2,
		StrategyID: "vertical-eem-1",
		Trades: []*eventmodels.Trade{
			{ID: uuid.New(), Code: "EEM", Price: 1.52, Quantity: 1, Timestamp: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)},
			{ID: uuid.New(), Code: "EEM", Price: 1.61, Quantity: 1, Timestamp: time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)},
		},
	}

	return map[eventmodels.PositionKey]*eventmodels.Position{
		position.Key(): position,
	}
}

func TestExportPositionsCSV(t *testing.T) {
	t.Run("writes one row per trade", func(t *testing.T) {
		out := &strings.Builder{}

		require.NoError(t, ExportPositionsCSV(exportFixture(), out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3, "header plus two trade rows")
		assert.Contains(t, lines[0], "trade_price")
		assert.Contains(t, lines[1], "1.52")
		assert.Contains(t, lines[2], "1.61")
	})

	t.Run("a trade-less position still contributes a row", func(t *testing.T) {
		position := &eventmodels.Position{Code: "SPY", AssetType: eventmodels.Stock, Quantity: 100}
		out := &strings.Builder{}

		require.NoError(t, ExportPositionsCSV(map[eventmodels.PositionKey]*eventmodels.Position{
			position.Key(): position,
		}, out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "SPY")
	})
}

func TestUnderlyingsTable(t *testing.T) {
	table := UnderlyingsTable(map[string]eventmodels.AssetQuote{
		"SPY": {Code: "SPY", MarketPrice: 512.40, IV: 0.14, IVRank: 35.0, Volume: 1250000},
	})

	assert.Contains(t, table, "SPY")
	assert.Contains(t, table, "$512.40")
	assert.Contains(t, table, "1,250,000")
}

func TestPositionsTable(t *testing.T) {
	table := PositionsTable(exportFixture())

	assert.Contains(t, table, "EEM_OPT_20240621_40_call_long")
	assert.Contains(t, table, "vertical-eem-1")
}
