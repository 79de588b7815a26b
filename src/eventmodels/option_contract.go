package eventmodels

import "time"

// OptionContract is a single resolved contract row from the data source: its
// venue identity, the key dimensions except ownership, and the live
// economics attached to it. Equity contracts come back through the same
// shape, with the option dimensions left at their NA values and the market
// price doubled into both price fields.
type OptionContract struct {
	ContractID       ContractID
	Code             string
	AssetType        AssetType
	Expiration       time.Time
	Strike           float64
	Right            OptionRight
	OptionPrice      float64
	UnderlyingPrice  float64
	Delta            float64
	DaysToExpiration int
}

// Key derives the position key this contract belongs to when held on the
// given side.
func (c *OptionContract) Key(ownership OwnershipType) PositionKey {
	return NewPositionKey(c.Code, c.AssetType, c.Expiration, c.Strike, c.Right, ownership)
}
