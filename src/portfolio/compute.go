package portfolio

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/indicators"
)

// ComputeMeasures fills in the derived fields of every asset's current
// quote: close-price standard deviation over the configured window, IV rank
// and percentile against the asset's own IV history, and beta of daily
// returns against the benchmark. Failures are isolated per asset; a series
// too short for one measure never blocks the others.
func ComputeMeasures(registry *AssetRegistry, benchmark string, stdevWindow int) {
	log.Info("Computing underlying measures")

	closeView, err := registry.ColumnView(string(eventmodels.CandleClose))
	if err != nil {
		log.Errorf("ComputeMeasures: %v", err)
		return
	}

	benchmarkCloses, found := closeView[benchmark]
	if !found {
		log.Warnf("ComputeMeasures: benchmark %s is not on the watch list, betas unavailable", benchmark)
	}

	for _, asset := range registry.Assets() {
		if asset.Current == nil {
			log.Debugf("[ComputeMeasures] %s has no quote yet, skipping", asset.Code)
			continue
		}

		if err := computeAssetMeasures(asset, stdevWindow); err != nil {
			log.Errorf("ComputeMeasures: %s: %v", asset.Code, err)
		}

		if len(benchmarkCloses) == 0 {
			continue
		}

		beta, err := indicators.Beta(closeView[asset.Code], benchmarkCloses)
		if err != nil {
			log.Errorf("ComputeMeasures: %s: %v", asset.Code, err)
			continue
		}

		asset.Current.Beta = beta
	}

	log.Info("Underlying measures computed")
}

func computeAssetMeasures(asset *eventmodels.Asset, stdevWindow int) error {
	closes := asset.BarValues(eventmodels.CandleClose)

	stdev, err := indicators.StandardDeviation(closes, stdevWindow)
	if err != nil {
		return fmt.Errorf("computeAssetMeasures: %w", err)
	}

	asset.Current.Stdev = stdev

	ivHistory := asset.IVValues()

	rank, err := indicators.IVRank(asset.Current.IV, ivHistory)
	if err != nil {
		return fmt.Errorf("computeAssetMeasures: %w", err)
	}

	percentile, err := indicators.IVPercentile(asset.Current.IV, ivHistory)
	if err != nil {
		return fmt.Errorf("computeAssetMeasures: %w", err)
	}

	asset.Current.IVRank = rank
	asset.Current.IVPercentile = percentile

	return nil
}
