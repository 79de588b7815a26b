package eventmodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TradeDTO is the wire and snapshot form of a Trade. Optional identity
// dimensions are pointers so that an equity trade omits them instead of
// writing a NaN strike, which JSON cannot encode.
type TradeDTO struct {
	ID           string   `json:"id"`
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

func (dto TradeDTO) ToModel() (*Trade, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("TradeDTO: ToModel: failed to parse id: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339, dto.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("TradeDTO: ToModel: failed to parse timestamp: %w", err)
	}

	expiration, err := expirationFromDTO(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("TradeDTO: ToModel: %w", err)
	}

	right, err := rightFromDTO(dto.Right)
	if err != nil {
		return nil, fmt.Errorf("TradeDTO: ToModel: %w", err)
	}

	ownership, err := ownershipFromDTO(dto.Ownership)
	if err != nil {
		return nil, fmt.Errorf("TradeDTO: ToModel: %w", err)
	}

	return &Trade{
		ID:           id,
		Code:         dto.Code,
		AssetType:    AssetType(dto.AssetType),
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

func (t *Trade) ToDTO() *TradeDTO {
	return &TradeDTO{
		ID:           t.ID.String(),
		Code:         t.Code,
		AssetType:    string(t.AssetType),
		Expiration:   expirationToDTO(t.Expiration),
		Strike:       strikeToDTO(t.Strike),
		Right:        rightToDTO(t.Right),
		Ownership:    ownershipToDTO(t.Ownership),
		Quantity:     t.Quantity,
		Price:        t.Price,
		Timestamp:    t.Timestamp.Format(time.RFC3339),
		Algorithm:    t.Algorithm,
		StrategyType: string(t.StrategyType),
		StrategyID:   string(t.StrategyID),
		Role:         t.Role,
		ContractID:   int64(t.ContractID),
	}
}
