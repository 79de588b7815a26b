package eventmodels

import "time"

// historicalMaxAge is how long a historical series stays fresh. Daily bars
// and daily IV observations only gain a new point once a day, so refreshing
// them more often than this is wasted load on the data source.
const historicalMaxAge = 24 * time.Hour

// Asset is one watched underlying: its venue identity, latest quote,
// historical series and current option chain. The asset registry exclusively
// owns Asset records.
type Asset struct {
	Code         string
	Type         AssetType
	ContractID   ContractID
	Current      *AssetQuote
	Historical   []*Candle
	HistoricalIV []*IVPoint
	OptionChain  []*OptionContract

	historicalUpdatedAt   time.Time
	historicalIVUpdatedAt time.Time
}

func NewAsset(code string, assetType AssetType) *Asset {
	return &Asset{
		Code: code,
		Type: assetType,
	}
}

func (a *Asset) HistoricalIsFresh() bool {
	return !a.historicalUpdatedAt.IsZero() && time.Since(a.historicalUpdatedAt) < historicalMaxAge
}

func (a *Asset) HistoricalIVIsFresh() bool {
	return !a.historicalIVUpdatedAt.IsZero() && time.Since(a.historicalIVUpdatedAt) < historicalMaxAge
}

func (a *Asset) SetHistorical(bars []*Candle) {
	a.Historical = bars
	a.historicalUpdatedAt = time.Now().UTC()
}

func (a *Asset) SetHistoricalIV(points []*IVPoint) {
	a.HistoricalIV = points
	a.historicalIVUpdatedAt = time.Now().UTC()
}

// BarValues projects one field of the historical bars into a series, oldest
// first.
func (a *Asset) BarValues(field CandleField) []float64 {
	values := make([]float64, 0, len(a.Historical))
	for _, bar := range a.Historical {
		switch field {
		case CandleOpen:
			values = append(values, bar.Open)
		case CandleHigh:
			values = append(values, bar.High)
		case CandleLow:
			values = append(values, bar.Low)
		case CandleClose:
			values = append(values, bar.Close)
		case CandleVolume:
			values = append(values, bar.Volume)
		}
	}

	return values
}

func (a *Asset) IVValues() []float64 {
	values := make([]float64, 0, len(a.HistoricalIV))
	for _, point := range a.HistoricalIV {
		values = append(values, point.Value)
	}

	return values
}
