package eventmodels

import (
	"fmt"
	"time"
)

// CandleDTO is the gateway's wire form of a daily bar.
type CandleDTO struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (dto CandleDTO) ToModel() (*Candle, error) {
	timestamp, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("CandleDTO: ToModel: failed to parse timestamp: %w", err)
	}

	return &Candle{
		Timestamp: timestamp,
		Open:      dto.Open,
		High:      dto.High,
		Low:       dto.Low,
		Close:     dto.Close,
		Volume:    dto.Volume,
	}, nil
}
