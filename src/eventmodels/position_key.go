package eventmodels

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// PositionKey is the composite identity of an economic position. Two events
// describing the same position must collide on this key, so the encoding is
// stable across restarts: persisted records are re-matched against live
// records by it.
type PositionKey string

const positionKeyNA = "NA"

const positionKeyExpirationLayout = "20060102"

// NewPositionKey encodes the six identity dimensions as
// code_type_expiration_strike_right_ownership. Dimensions that do not apply
// (a zero expiration, a NaN strike, an empty right or ownership) encode as
// the "NA" sentinel rather than being omitted, so positions that differ only
// in an optional dimension never collide.
func NewPositionKey(code string, assetType AssetType, expiration time.Time, strike float64, right OptionRight, ownership OwnershipType) PositionKey {
	expirationStr := positionKeyNA
	if !expiration.IsZero() {
		expirationStr = expiration.Format(positionKeyExpirationLayout)
	}

	strikeStr := positionKeyNA
	if !math.IsNaN(strike) {
		strikeStr = strconv.FormatFloat(strike, 'f', -1, 64)
	}

	rightStr := positionKeyNA
	if right != "" {
		rightStr = string(right)
	}

	ownershipStr := positionKeyNA
	if ownership != "" {
		ownershipStr = string(ownership)
	}

	return PositionKey(fmt.Sprintf("%s_%s_%s_%s_%s_%s", code, assetType, expirationStr, strikeStr, rightStr, ownershipStr))
}
