package eventmodels

import (
	"fmt"
	"time"

	"github.com/idiazm/optrack/src/utils"
)

// OptionContractDTO is the wire form of a contract row, shared by the data
// gateway responses and the option chain API. Days to expiration travels
// explicitly when the source computes it; otherwise it is derived from the
// expiration date on conversion.
type OptionContractDTO struct {
	ContractID       int64    `json:"contract_id"`
	Code             string   `json:"code"`
	AssetType        string   `json:"asset_type"`
	Expiration       *string  `json:"expiration,omitempty"`
	Strike           *float64 `json:"strike,omitempty"`
	Right            *string  `json:"right,omitempty"`
	OptionPrice      float64  `json:"option_price"`
	UnderlyingPrice  float64  `json:"underlying_price"`
	Delta            float64  `json:"delta"`
	DaysToExpiration int      `json:"days_to_expiration,omitempty"`
}

func (dto OptionContractDTO) ToModel() (*OptionContract, error) {
	assetType := AssetType(dto.AssetType)
	if err := assetType.Validate(); err != nil {
		return nil, fmt.Errorf("OptionContractDTO: ToModel: %w", err)
	}

	expiration, err := expirationFromDTO(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("OptionContractDTO: ToModel: %w", err)
	}

	right, err := rightFromDTO(dto.Right)
	if err != nil {
		return nil, fmt.Errorf("OptionContractDTO: ToModel: %w", err)
	}

	dte := dto.DaysToExpiration
	if dte == 0 && !expiration.IsZero() {
		dte = utils.DaysUntil(time.Now().UTC(), expiration)
	}

	return &OptionContract{
		ContractID:       ContractID(dto.ContractID),
		Code:             dto.Code,
		AssetType:        assetType,
		Expiration:       expiration,
		Strike:           strikeFromDTO(dto.Strike),
		Right:            right,
		OptionPrice:      dto.OptionPrice,
		UnderlyingPrice:  dto.UnderlyingPrice,
		Delta:            dto.Delta,
		DaysToExpiration: dte,
	}, nil
}

func (c *OptionContract) ToDTO() *OptionContractDTO {
	return &OptionContractDTO{
		ContractID:       int64(c.ContractID),
		Code:             c.Code,
		AssetType:        string(c.AssetType),
		Expiration:       expirationToDTO(c.Expiration),
		Strike:           strikeToDTO(c.Strike),
		Right:            rightToDTO(c.Right),
		OptionPrice:      c.OptionPrice,
		UnderlyingPrice:  c.UnderlyingPrice,
		Delta:            c.Delta,
		DaysToExpiration: c.DaysToExpiration,
	}
}
