package eventmodels

import "context"

// MarketDataSource is the venue gateway the portfolio refreshes from.
//
// FetchOptions must return exactly one contract per requested id; callers
// treat any other cardinality as a violated contract (AmbiguousLookupErr).
type MarketDataSource interface {
	FetchContractIdentities(ctx context.Context, assets []*Asset) (map[string]ContractID, error)
	FetchQuotes(ctx context.Context, assets []*Asset) ([]*AssetQuote, error)
	FetchHistoricalBars(ctx context.Context, asset *Asset) ([]*Candle, error)
	FetchHistoricalIV(ctx context.Context, asset *Asset) ([]*IVPoint, error)
	FetchOptionChain(ctx context.Context, asset *Asset) ([]*OptionContract, error)
	FetchOptions(ctx context.Context, contractIDs []ContractID) ([]*OptionContract, error)
}
