package indicators

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// StandardDeviation returns the sample standard deviation of the last window
// values of the series.
func StandardDeviation(values []float64, window int) (float64, error) {
	if window <= 1 {
		return 0, fmt.Errorf("StandardDeviation: window must be greater than one, got %d", window)
	}

	if len(values) < window {
		return 0, fmt.Errorf("StandardDeviation: need %d values, got %d", window, len(values))
	}

	sd, err := stats.StandardDeviationSample(values[len(values)-window:])
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the standard deviation: %v", err)
	}

	return sd, nil
}

// IVRank places the current implied volatility between the historical
// extremes, as a percentage: 0 at the historical low, 100 at the high. A
// flat history has no range to rank against and yields 0.
func IVRank(current float64, history []float64) (float64, error) {
	if len(history) == 0 {
		return 0, fmt.Errorf("IVRank: empty history")
	}

	low, err := stats.Min(history)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the minimum: %v", err)
	}

	high, err := stats.Max(history)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the maximum: %v", err)
	}

	if high == low {
		return 0, nil
	}

	return (current - low) / (high - low) * 100, nil
}

// IVPercentile is the share of historical observations strictly below the
// current implied volatility, as a percentage.
func IVPercentile(current float64, history []float64) (float64, error) {
	if len(history) == 0 {
		return 0, fmt.Errorf("IVPercentile: empty history")
	}

	below := 0
	for _, value := range history {
		if value < current {
			below++
		}
	}

	return float64(below) / float64(len(history)) * 100, nil
}

// Beta regresses the asset's daily returns on the benchmark's over the
// overlapping tail of the two close series.
func Beta(closes []float64, benchmark []float64) (float64, error) {
	overlap := min(len(closes), len(benchmark))
	if overlap < 2 {
		return 0, fmt.Errorf("Beta: need at least two overlapping closes, got %d", overlap)
	}

	assetReturns := dailyReturns(closes[len(closes)-overlap:])
	benchmarkReturns := dailyReturns(benchmark[len(benchmark)-overlap:])

	covariance, err := stats.CovariancePopulation(assetReturns, benchmarkReturns)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the covariance: %v", err)
	}

	variance, err := stats.PopulationVariance(benchmarkReturns)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate the variance: %v", err)
	}

	if variance == 0 {
		return 0, fmt.Errorf("Beta: benchmark returns have zero variance")
	}

	return covariance / variance, nil
}

// dailyReturns keeps the output aligned with its input offset by one, so two
// series of equal length produce return series of equal length.
func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}

		returns = append(returns, (closes[i]-prev)/prev)
	}

	return returns
}
