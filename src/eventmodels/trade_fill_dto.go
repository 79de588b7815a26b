package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TradeFillDTO is a broker fill report. It always follows the position event
// for the same key, so a fill for an unknown position is a data defect. The
// broker does not assign fill ids, so one is minted when absent.
type TradeFillDTO struct {
	ID           string   `json:"id,omitempty"`
	Code         string   `json:"code"`
	AssetType    string   `json:"asset_type"`
	Expiration   *string  `json:"expiration,omitempty"`
	Strike       *float64 `json:"strike,omitempty"`
	Right        *string  `json:"right,omitempty"`
	Ownership    *string  `json:"ownership,omitempty"`
	Quantity     float64  `json:"quantity"`
	Price        float64  `json:"price"`
	Timestamp    string   `json:"timestamp"`
	Algorithm    string   `json:"algorithm,omitempty"`
	StrategyType string   `json:"strategy_type,omitempty"`
	StrategyID   string   `json:"strategy_id,omitempty"`
	Role         string   `json:"role,omitempty"`
	ContractID   int64    `json:"contract_id"`
}

func (dto TradeFillDTO) ToModel() (*Trade, error) {
	id := uuid.New()
	if dto.ID != "" {
		parsed, err := uuid.Parse(dto.ID)
		if err != nil {
			return nil, fmt.Errorf("TradeFillDTO: ToModel: failed to parse id: %w", err)
		}

		id = parsed
	}

	assetType := AssetType(dto.AssetType)
	if err := assetType.Validate(); err != nil {
		return nil, fmt.Errorf("TradeFillDTO: ToModel: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("TradeFillDTO: ToModel: failed to parse timestamp: %w", err)
	}

	expiration, err := expirationFromDTO(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("TradeFillDTO: ToModel: %w", err)
	}

	right, err := rightFromDTO(dto.Right)
	if err != nil {
		return nil, fmt.Errorf("TradeFillDTO: ToModel: %w", err)
	}

	ownership, err := ownershipFromDTO(dto.Ownership)
	if err != nil {
		return nil, fmt.Errorf("TradeFillDTO: ToModel: %w", err)
	}

	return &Trade{
		ID:           id,
		Code:         dto.Code,
		AssetType:    assetType,
		Expiration:   expiration,
		Strike:       strikeFromDTO(dto.Strike),
		Right:        right,
		Ownership:    ownership,
		Quantity:     dto.Quantity,
		Price:        dto.Price,
		Timestamp:    timestamp,
		Algorithm:    dto.Algorithm,
		StrategyType: StrategyType(dto.StrategyType),
		StrategyID:   StrategyID(dto.StrategyID),
		Role:         dto.Role,
		ContractID:   ContractID(dto.ContractID),
	}, nil
}
