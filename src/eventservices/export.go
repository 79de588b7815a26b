package eventservices

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/idiazm/optrack/src/eventmodels"
)

// PositionCSVRow flattens one trade of one position for the CSV export: the
// position's identity and economics repeat on every trade row, so the file
// opens cleanly in a spreadsheet without joins.
type PositionCSVRow struct {
	Key              string  `csv:"key"`
	Code             string  `csv:"code"`
	AssetType        string  `csv:"asset_type"`
	Quantity         float64 `csv:"quantity"`
	OptionPrice      float64 `csv:"option_price"`
	UnderlyingPrice  float64 `csv:"underlying_price"`
	Delta            float64 `csv:"delta"`
	DaysToExpiration int     `csv:"days_to_expiration"`
	Beta             float64 `csv:"beta"`
	StrategyID       string  `csv:"strategy_id"`
	StrategyType     string  `csv:"strategy_type"`
	TradeID          string  `csv:"trade_id"`
	TradePrice       float64 `csv:"trade_price"`
	TradeQuantity    float64 `csv:"trade_quantity"`
	TradeTimestamp   string  `csv:"trade_timestamp"`
	TradeAlgorithm   string  `csv:"trade_algorithm"`
	TradeRole        string  `csv:"trade_role"`
}

// ExportPositionsCSV writes the ledger as flattened trade rows, ordered by
// position key then trade arrival. A position without trades still
// contributes one row, with the trade columns empty.
func ExportPositionsCSV(positions map[eventmodels.PositionKey]*eventmodels.Position, out io.Writer) error {
	keys := make([]eventmodels.PositionKey, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var rows []*PositionCSVRow
	for _, key := range keys {
		position := positions[key]

		base := PositionCSVRow{
			Key:              string(key),
			Code:             position.Code,
			AssetType:        string(position.AssetType),
			Quantity:         position.Quantity,
			OptionPrice:      position.OptionPrice,
			UnderlyingPrice:  position.UnderlyingPrice,
			Delta:            position.Delta,
			DaysToExpiration: position.DaysToExpiration,
			Beta:             position.Beta,
			StrategyID:       string(position.StrategyID),
			StrategyType:     string(position.StrategyType),
		}

		if len(position.Trades) == 0 {
			row := base
			rows = append(rows, &row)
			continue
		}

		for _, trade := range position.Trades {
			row := base
			row.TradeID = trade.ID.String()
			row.TradePrice = trade.Price
			row.TradeQuantity = trade.Quantity
			row.TradeTimestamp = trade.Timestamp.Format("2006-01-02T15:04:05Z07:00")
			row.TradeAlgorithm = trade.Algorithm
			row.TradeRole = trade.Role
			rows = append(rows, &row)
		}
	}

	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("ExportPositionsCSV: failed to marshal rows: %w", err)
	}

	return nil
}
