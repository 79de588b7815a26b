package eventmodels

import "time"

// IVPoint is one daily observation of an underlying's implied volatility.
type IVPoint struct {
	Timestamp time.Time
	Value     float64
}
