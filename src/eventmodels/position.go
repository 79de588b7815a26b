package eventmodels

import "time"

// Position is one economic position in the ledger: its identity dimensions,
// live size, the economics derived on the last refresh cycle, the
// attribution of its most recent trade, and the ordered trades that built
// it. The position ledger exclusively owns Position records.
type Position struct {
	Code       string
	AssetType  AssetType
	Expiration time.Time
	Strike     float64
	Right      OptionRight
	Ownership  OwnershipType
	Quantity   float64

	OptionPrice      float64
	UnderlyingPrice  float64
	Delta            float64
	DaysToExpiration int
	Beta             float64

	TradePrice     float64
	TradeTimestamp time.Time
	Algorithm      string
	StrategyType   StrategyType
	StrategyID     StrategyID
	Role           string

	Trades []*Trade
}

func (p *Position) Key() PositionKey {
	return NewPositionKey(p.Code, p.AssetType, p.Expiration, p.Strike, p.Right, p.Ownership)
}

// LastTrade returns the most recent trade recorded against the position, or
// nil when no trade has been seen yet.
func (p *Position) LastTrade() *Trade {
	if len(p.Trades) == 0 {
		return nil
	}

	return p.Trades[len(p.Trades)-1]
}
