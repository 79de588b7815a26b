package eventmodels

import (
	"fmt"
	"time"
)

// AssetQuote is the latest market snapshot of a watched underlying. The
// venue fields come straight from the data source; Stdev, IVRank,
// IVPercentile and Beta are derived locally after each refresh cycle.
type AssetQuote struct {
	Code         string    `json:"code"`
	MarketPrice  float64   `json:"market_price"`
	Bid          float64   `json:"bid"`
	Ask          float64   `json:"ask"`
	Volume       float64   `json:"volume"`
	IV           float64   `json:"iv"`
	Stdev        float64   `json:"stdev"`
	IVRank       float64   `json:"iv_rank"`
	IVPercentile float64   `json:"iv_percentile"`
	Beta         float64   `json:"beta"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FieldValue projects one quote field by its wire name, for callers that
// render a chosen subset of columns.
func (q *AssetQuote) FieldValue(field string) (float64, error) {
	switch field {
	case "market_price":
		return q.MarketPrice, nil
	case "bid":
		return q.Bid, nil
	case "ask":
		return q.Ask, nil
	case "volume":
		return q.Volume, nil
	case "iv":
		return q.IV, nil
	case "stdev":
		return q.Stdev, nil
	case "iv_rank":
		return q.IVRank, nil
	case "iv_percentile":
		return q.IVPercentile, nil
	case "beta":
		return q.Beta, nil
	default:
		return 0, fmt.Errorf("AssetQuote: FieldValue: %s: %w", field, UnknownQuoteFieldErr)
	}
}
