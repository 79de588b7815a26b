package eventmodels

import (
	"fmt"
	"time"
)

// IVPointDTO is the gateway's wire form of an implied-volatility
// observation.
type IVPointDTO struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

func (dto IVPointDTO) ToModel() (*IVPoint, error) {
	timestamp, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("IVPointDTO: ToModel: failed to parse timestamp: %w", err)
	}

	return &IVPoint{
		Timestamp: timestamp,
		Value:     dto.Value,
	}, nil
}
