package portfolio

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventmodels"
)

// AssetRegistry owns the Asset records for the configured watch list. It is
// populated once at construction and refreshed in place by the periodic
// cycles; assets are never added or removed during a session.
type AssetRegistry struct {
	assets map[string]*eventmodels.Asset
}

func NewAssetRegistry(watchList map[string]eventmodels.AssetType) *AssetRegistry {
	assets := make(map[string]*eventmodels.Asset, len(watchList))
	for code, assetType := range watchList {
		assets[code] = eventmodels.NewAsset(code, assetType)
	}

	return &AssetRegistry{
		assets: assets,
	}
}

func (r *AssetRegistry) Get(code string) (*eventmodels.Asset, error) {
	asset, found := r.assets[code]
	if !found {
		return nil, fmt.Errorf("AssetRegistry.Get: %s: %w", code, eventmodels.UnknownAssetErr)
	}

	return asset, nil
}

func (r *AssetRegistry) Len() int {
	return len(r.assets)
}

// Codes returns the watched symbols in lexical order.
func (r *AssetRegistry) Codes() []string {
	codes := make([]string, 0, len(r.assets))
	for code := range r.assets {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Assets returns the asset records ordered by code, so batch passes are
// deterministic.
func (r *AssetRegistry) Assets() []*eventmodels.Asset {
	assets := make([]*eventmodels.Asset, 0, len(r.assets))
	for _, code := range r.Codes() {
		assets = append(assets, r.assets[code])
	}

	return assets
}

// InitializeIdentities resolves the venue contract id of every watched
// asset. Runs once at startup; without identities no other refresh can
// address the data source.
func (r *AssetRegistry) InitializeIdentities(ctx context.Context, ds eventmodels.MarketDataSource) error {
	log.Info("Retrieving underlying contract identities")

	identities, err := ds.FetchContractIdentities(ctx, r.Assets())
	if err != nil {
		return fmt.Errorf("AssetRegistry.InitializeIdentities: %w", err)
	}

	for code, contractID := range identities {
		asset, found := r.assets[code]
		if !found {
			log.Warnf("AssetRegistry.InitializeIdentities: %s is not on the watch list, ignoring", code)
			continue
		}

		asset.ContractID = contractID
	}

	log.Infof("Underlying contract identities retrieved: %d", len(identities))

	return nil
}

// RefreshCurrent replaces every asset's current quote with the latest from
// the data source. Derived measures are recomputed by the compute pass that
// follows in the cycle.
func (r *AssetRegistry) RefreshCurrent(ctx context.Context, ds eventmodels.MarketDataSource) error {
	log.Info("Updating underlying current values")

	quotes, err := ds.FetchQuotes(ctx, r.Assets())
	if err != nil {
		return fmt.Errorf("AssetRegistry.RefreshCurrent: %w", err)
	}

	updated := 0
	for _, quote := range quotes {
		asset, found := r.assets[quote.Code]
		if !found {
			log.Warnf("AssetRegistry.RefreshCurrent: %s is not on the watch list, ignoring quote", quote.Code)
			continue
		}

		asset.Current = quote
		updated++
	}

	log.Infof("Underlying current values updated: %d", updated)

	return nil
}

// RefreshHistoricalBars pulls the daily bar history of every asset whose
// series has gone stale. The asset entity owns the freshness policy, so
// repeated cycles inside the same day skip the pull. Failures are isolated
// per asset: one broken series never blocks the rest of the batch.
func (r *AssetRegistry) RefreshHistoricalBars(ctx context.Context, ds eventmodels.MarketDataSource) {
	log.Info("Updating underlying historical bars")

	for _, asset := range r.Assets() {
		if asset.HistoricalIsFresh() {
			log.Debugf("[AssetRegistry.RefreshHistoricalBars] %s is fresh, skipping", asset.Code)
			continue
		}

		bars, err := ds.FetchHistoricalBars(ctx, asset)
		if err != nil {
			log.Errorf("AssetRegistry.RefreshHistoricalBars: %s: %v", asset.Code, err)
			continue
		}

		asset.SetHistorical(bars)
	}

	log.Info("Underlying historical bars updated")
}

// RefreshHistoricalIV pulls the implied-volatility history of every asset
// whose series has gone stale, under the same freshness and isolation rules
// as the bar refresh.
func (r *AssetRegistry) RefreshHistoricalIV(ctx context.Context, ds eventmodels.MarketDataSource) {
	log.Info("Updating underlying historical IV")

	for _, asset := range r.Assets() {
		if asset.HistoricalIVIsFresh() {
			log.Debugf("[AssetRegistry.RefreshHistoricalIV] %s is fresh, skipping", asset.Code)
			continue
		}

		points, err := ds.FetchHistoricalIV(ctx, asset)
		if err != nil {
			log.Errorf("AssetRegistry.RefreshHistoricalIV: %s: %v", asset.Code, err)
			continue
		}

		asset.SetHistoricalIV(points)
	}

	log.Info("Underlying historical IV updated")
}

// RefreshOptionChain pulls the current option chain for one underlying and
// stores it on the asset.
func (r *AssetRegistry) RefreshOptionChain(ctx context.Context, ds eventmodels.MarketDataSource, code string) ([]*eventmodels.OptionContract, error) {
	asset, err := r.Get(code)
	if err != nil {
		return nil, fmt.Errorf("AssetRegistry.RefreshOptionChain: %w", err)
	}

	chain, err := ds.FetchOptionChain(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("AssetRegistry.RefreshOptionChain: %s: %w", code, err)
	}

	asset.OptionChain = chain

	return chain, nil
}

// ColumnView projects one historical bar field across all assets, keyed by
// code, each series in its own chronological order. Assets with shorter
// histories contribute shorter series; nothing is padded or aligned here.
func (r *AssetRegistry) ColumnView(field string) (map[string][]float64, error) {
	candleField, err := eventmodels.ParseCandleField(field)
	if err != nil {
		return nil, fmt.Errorf("AssetRegistry.ColumnView: %w", err)
	}

	view := make(map[string][]float64, len(r.assets))
	for code, asset := range r.assets {
		view[code] = asset.BarValues(candleField)
	}

	return view, nil
}
