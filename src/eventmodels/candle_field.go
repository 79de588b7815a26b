package eventmodels

import "fmt"

type CandleField string

const (
	CandleOpen   CandleField = "open"
	CandleHigh   CandleField = "high"
	CandleLow    CandleField = "low"
	CandleClose  CandleField = "close"
	CandleVolume CandleField = "volume"
)

func ParseCandleField(value string) (CandleField, error) {
	switch CandleField(value) {
	case CandleOpen, CandleHigh, CandleLow, CandleClose, CandleVolume:
		return CandleField(value), nil
	default:
		return "", fmt.Errorf("ParseCandleField: %s: %w", value, UnknownBarFieldErr)
	}
}
