package eventmodels

import (
	"fmt"
	"time"
)

// PositionDTO is the snapshot and API form of a Position.
type PositionDTO struct {
	Code       string   `json:"code"`
	AssetType  string   `json:"asset_type"`
	Expiration *string  `json:"expiration,omitempty"`
	Strike     *float64 `json:"strike,omitempty"`
	Right      *string  `json:"right,omitempty"`
	Ownership  *string  `json:"ownership,omitempty"`
	Quantity   float64  `json:"quantity"`

	OptionPrice      float64 `json:"option_price"`
	UnderlyingPrice  float64 `json:"underlying_price"`
	Delta            float64 `json:"delta"`
	DaysToExpiration int     `json:"days_to_expiration"`
	Beta             float64 `json:"beta"`

	TradePrice     float64 `json:"trade_price"`
	TradeTimestamp string  `json:"trade_timestamp,omitempty"`
	Algorithm      string  `json:"algorithm,omitempty"`
	StrategyType   string  `json:"strategy_type,omitempty"`
	StrategyID     string  `json:"strategy_id,omitempty"`
	Role           string  `json:"role,omitempty"`

	Trades []*TradeDTO `json:"trades"`
}

func (dto PositionDTO) ToModel() (*Position, error) {
	expiration, err := expirationFromDTO(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("PositionDTO: ToModel: %w", err)
	}

	right, err := rightFromDTO(dto.Right)
	if err != nil {
		return nil, fmt.Errorf("PositionDTO: ToModel: %w", err)
	}

	ownership, err := ownershipFromDTO(dto.Ownership)
	if err != nil {
		return nil, fmt.Errorf("PositionDTO: ToModel: %w", err)
	}

	var tradeTimestamp time.Time
	if dto.TradeTimestamp != "" {
		tradeTimestamp, err = time.Parse(time.RFC3339, dto.TradeTimestamp)
		if err != nil {
			return nil, fmt.Errorf("PositionDTO: ToModel: failed to parse trade timestamp: %w", err)
		}
	}

	trades := make([]*Trade, 0, len(dto.Trades))
	for _, tradeDTO := range dto.Trades {
		trade, err := tradeDTO.ToModel()
		if err != nil {
			return nil, fmt.Errorf("PositionDTO: ToModel: %w", err)
		}

		trades = append(trades, trade)
	}

	return &Position{
		Code:             dto.Code,
		AssetType:        AssetType(dto.AssetType),
		Expiration:       expiration,
		Strike:           strikeFromDTO(dto.Strike),
		Right:            right,
		Ownership:        ownership,
		Quantity:         dto.Quantity,
		OptionPrice:      dto.OptionPrice,
		UnderlyingPrice:  dto.UnderlyingPrice,
		Delta:            dto.Delta,
		DaysToExpiration: dto.DaysToExpiration,
		Beta:             dto.Beta,
		TradePrice:       dto.TradePrice,
		TradeTimestamp:   tradeTimestamp,
		Algorithm:        dto.Algorithm,
		StrategyType:     StrategyType(dto.StrategyType),
		StrategyID:       StrategyID(dto.StrategyID),
		Role:             dto.Role,
		Trades:           trades,
	}, nil
}

func (p *Position) ToDTO() *PositionDTO {
	tradeTimestamp := ""
	if !p.TradeTimestamp.IsZero() {
		tradeTimestamp = p.TradeTimestamp.Format(time.RFC3339)
	}

	trades := make([]*TradeDTO, 0, len(p.Trades))
	for _, trade := range p.Trades {
		trades = append(trades, trade.ToDTO())
	}

	return &PositionDTO{
		Code:             p.Code,
		AssetType:        string(p.AssetType),
		Expiration:       expirationToDTO(p.Expiration),
		Strike:           strikeToDTO(p.Strike),
		Right:            rightToDTO(p.Right),
		Ownership:        ownershipToDTO(p.Ownership),
		Quantity:         p.Quantity,
		OptionPrice:      p.OptionPrice,
		UnderlyingPrice:  p.UnderlyingPrice,
		Delta:            p.Delta,
		DaysToExpiration: p.DaysToExpiration,
		Beta:             p.Beta,
		TradePrice:       p.TradePrice,
		TradeTimestamp:   tradeTimestamp,
		Algorithm:        p.Algorithm,
		StrategyType:     string(p.StrategyType),
		StrategyID:       string(p.StrategyID),
		Role:             p.Role,
		Trades:           trades,
	}
}
