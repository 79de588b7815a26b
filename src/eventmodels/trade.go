package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Trade is one fill reported by the broker, carrying the identity dimensions
// of the position it belongs to plus the strategy attribution recorded by
// whichever algorithm placed the order.
type Trade struct {
	ID           uuid.UUID
	Code         string
	AssetType    AssetType
	Expiration   time.Time
	Strike       float64
	Right        OptionRight
	Ownership    OwnershipType
	Quantity     float64
	Price        float64
	Timestamp    time.Time
	Algorithm    string
	StrategyType StrategyType
	StrategyID   StrategyID
	Role         string
	ContractID   ContractID
}

func (t *Trade) Key() PositionKey {
	return NewPositionKey(t.Code, t.AssetType, t.Expiration, t.Strike, t.Right, t.Ownership)
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade: %s %.2f %s @ %.2f", t.Ownership, t.Quantity, t.Key(), t.Price)
}
