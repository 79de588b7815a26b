package eventmodels

import "fmt"

// PositionEventDTO is a broker position update: the identity dimensions plus
// the current signed size. The broker restates the full position on every
// change, so applying the same event twice is a no-op.
type PositionEventDTO struct {
	Code       string   `json:"code"`
	AssetType  string   `json:"asset_type"`
	Expiration *string  `json:"expiration,omitempty"`
	Strike     *float64 `json:"strike,omitempty"`
	Right      *string  `json:"right,omitempty"`
	Ownership  *string  `json:"ownership,omitempty"`
	Quantity   float64  `json:"quantity"`
}

func (dto PositionEventDTO) ToModel() (*Position, error) {
	assetType := AssetType(dto.AssetType)
	if err := assetType.Validate(); err != nil {
		return nil, fmt.Errorf("PositionEventDTO: ToModel: %w", err)
	}

	expiration, err := expirationFromDTO(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("PositionEventDTO: ToModel: %w", err)
	}

	right, err := rightFromDTO(dto.Right)
	if err != nil {
		return nil, fmt.Errorf("PositionEventDTO: ToModel: %w", err)
	}

	ownership, err := ownershipFromDTO(dto.Ownership)
	if err != nil {
		return nil, fmt.Errorf("PositionEventDTO: ToModel: %w", err)
	}

	return &Position{
		Code:       dto.Code,
		AssetType:  assetType,
		Expiration: expiration,
		Strike:     strikeFromDTO(dto.Strike),
		Right:      right,
		Ownership:  ownership,
		Quantity:   dto.Quantity,
	}, nil
}
