package mock

import (
	"context"
	"fmt"

	"github.com/idiazm/optrack/src/eventmodels"
)

// MockMarketDataSource is a scripted MarketDataSource for tests. Each fetch
// serves whatever the test staged for it and counts its calls; FetchOptions
// can be rigged to return the wrong cardinality to exercise the exactly-one
// contract.
type MockMarketDataSource struct {
	Identities map[string]eventmodels.ContractID
	Quotes     []*eventmodels.AssetQuote
	Bars       map[string][]*eventmodels.Candle
	IVPoints   map[string][]*eventmodels.IVPoint
	Chains     map[string][]*eventmodels.OptionContract
	Options    map[eventmodels.ContractID][]*eventmodels.OptionContract

	FetchErr error

	IdentityCalls int
	QuoteCalls    int
	BarCalls      int
	IVCalls       int
	ChainCalls    int
	OptionCalls   int
}

func NewMockMarketDataSource() *MockMarketDataSource {
	return &MockMarketDataSource{
		Identities: make(map[string]eventmodels.ContractID),
		Bars:       make(map[string][]*eventmodels.Candle),
		IVPoints:   make(map[string][]*eventmodels.IVPoint),
		Chains:     make(map[string][]*eventmodels.OptionContract),
		Options:    make(map[eventmodels.ContractID][]*eventmodels.OptionContract),
	}
}

func (m *MockMarketDataSource) FetchContractIdentities(ctx context.Context, assets []*eventmodels.Asset) (map[string]eventmodels.ContractID, error) {
	m.IdentityCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	return m.Identities, nil
}

func (m *MockMarketDataSource) FetchQuotes(ctx context.Context, assets []*eventmodels.Asset) ([]*eventmodels.AssetQuote, error) {
	m.QuoteCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	return m.Quotes, nil
}

func (m *MockMarketDataSource) FetchHistoricalBars(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.Candle, error) {
	m.BarCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	return m.Bars[asset.Code], nil
}

func (m *MockMarketDataSource) FetchHistoricalIV(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.IVPoint, error) {
	m.IVCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	return m.IVPoints[asset.Code], nil
}

func (m *MockMarketDataSource) FetchOptionChain(ctx context.Context, asset *eventmodels.Asset) ([]*eventmodels.OptionContract, error) {
	m.ChainCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	return m.Chains[asset.Code], nil
}

func (m *MockMarketDataSource) FetchOptions(ctx context.Context, contractIDs []eventmodels.ContractID) ([]*eventmodels.OptionContract, error) {
	m.OptionCalls++

	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	var contracts []*eventmodels.OptionContract
	for _, contractID := range contractIDs {
		staged, found := m.Options[contractID]
		if !found {
			return nil, fmt.Errorf("MockMarketDataSource.FetchOptions: no contract staged for id %d", contractID)
		}

		contracts = append(contracts, staged...)
	}

	return contracts, nil
}
