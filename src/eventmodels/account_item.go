package eventmodels

import (
	"fmt"
	"strconv"
)

// AccountItem is one account attribute update from the broker stream.
type AccountItem struct {
	Name  string
	Value float64
}

// AccountItemDTO carries the value as a string because the broker reports
// every account attribute that way, including the numeric ones.
type AccountItemDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (dto AccountItemDTO) ToModel() (AccountItem, error) {
	value, err := strconv.ParseFloat(dto.Value, 64)
	if err != nil {
		return AccountItem{}, fmt.Errorf("AccountItemDTO: ToModel: failed to parse value for %s: %w", dto.Name, err)
	}

	return AccountItem{
		Name:  dto.Name,
		Value: value,
	}, nil
}
