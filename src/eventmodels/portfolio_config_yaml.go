package eventmodels

import (
	"fmt"
	"time"
)

type UnderlyingYAML struct {
	Symbol    string `yaml:"symbol"`
	AssetType string `yaml:"assetType"`
}

type PortfolioConfigYAML struct {
	Underlyings            []UnderlyingYAML `yaml:"underlyings"`
	Benchmark              string           `yaml:"benchmark"`
	DataDir                string           `yaml:"dataDir"`
	PositionsFile          string           `yaml:"positionsFile"`
	StdevWindowDays        int              `yaml:"stdevWindowDays"`
	HistoricalYears        int              `yaml:"historicalYears"`
	RefreshIntervalSeconds int              `yaml:"refreshIntervalSeconds"`
	PruneClosedPositions   bool             `yaml:"pruneClosedPositions"`
}

// WatchList validates the configured underlyings and returns them as a
// symbol to asset type map.
func (c *PortfolioConfigYAML) WatchList() (map[string]AssetType, error) {
	watchList := make(map[string]AssetType, len(c.Underlyings))
	for _, underlying := range c.Underlyings {
		assetType := AssetType(underlying.AssetType)
		if err := assetType.Validate(); err != nil {
			return nil, fmt.Errorf("PortfolioConfigYAML: WatchList: %s: %w", underlying.Symbol, err)
		}

		watchList[underlying.Symbol] = assetType
	}

	if len(watchList) == 0 {
		return nil, fmt.Errorf("PortfolioConfigYAML: WatchList: no underlyings configured")
	}

	return watchList, nil
}

func (c *PortfolioConfigYAML) SetDefaults() {
	if c.Benchmark == "" {
		c.Benchmark = "SPY"
	}

	if c.DataDir == "" {
		c.DataDir = "data"
	}

	if c.PositionsFile == "" {
		c.PositionsFile = "positions.json"
	}

	if c.StdevWindowDays == 0 {
		c.StdevWindowDays = 30
	}

	if c.HistoricalYears == 0 {
		c.HistoricalYears = 2
	}

	if c.RefreshIntervalSeconds == 0 {
		c.RefreshIntervalSeconds = 60
	}
}

func (c *PortfolioConfigYAML) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}
