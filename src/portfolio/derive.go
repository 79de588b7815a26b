package portfolio

import (
	"github.com/idiazm/optrack/src/eventmodels"
)

// DeriveEconomics overwrites a position's derived fields from its latest
// trade and the contract the data source resolved for that trade: the live
// economics come from the contract, the attribution comes from the trade,
// and beta comes from the underlying's quote. Identity, quantity and the
// trade sequence are left untouched, so the projection can run on every
// refresh cycle without disturbing reconciliation state.
func DeriveEconomics(position *eventmodels.Position, trade *eventmodels.Trade, contract *eventmodels.OptionContract, beta float64) {
	position.OptionPrice = contract.OptionPrice
	position.UnderlyingPrice = contract.UnderlyingPrice
	position.Delta = contract.Delta
	position.DaysToExpiration = contract.DaysToExpiration

	position.TradePrice = trade.Price
	position.TradeTimestamp = trade.Timestamp
	position.Algorithm = trade.Algorithm
	position.StrategyType = trade.StrategyType
	position.StrategyID = trade.StrategyID
	position.Role = trade.Role

	position.Beta = beta
}
