package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// Shared conversions between optional identity dimensions and their DTO
// form: a nil pointer stands for "does not apply" (zero expiration, NaN
// strike, empty right/ownership).

const expirationDTOLayout = "2006-01-02"

func expirationToDTO(expiration time.Time) *string {
	if expiration.IsZero() {
		return nil
	}

	value := expiration.Format(expirationDTOLayout)
	return &value
}

func expirationFromDTO(value *string) (time.Time, error) {
	if value == nil {
		return time.Time{}, nil
	}

	expiration, err := time.Parse(expirationDTOLayout, *value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse expiration: %w", err)
	}

	return expiration, nil
}

func strikeToDTO(strike float64) *float64 {
	if math.IsNaN(strike) {
		return nil
	}

	value := strike
	return &value
}

func strikeFromDTO(value *float64) float64 {
	if value == nil {
		return math.NaN()
	}

	return *value
}

func rightToDTO(right OptionRight) *string {
	if right == "" {
		return nil
	}

	value := string(right)
	return &value
}

func rightFromDTO(value *string) (OptionRight, error) {
	if value == nil {
		return "", nil
	}

	right := OptionRight(*value)
	if err := right.Validate(); err != nil {
		return "", err
	}

	return right, nil
}

func ownershipToDTO(ownership OwnershipType) *string {
	if ownership == "" {
		return nil
	}

	value := string(ownership)
	return &value
}

func ownershipFromDTO(value *string) (OwnershipType, error) {
	if value == nil {
		return "", nil
	}

	ownership := OwnershipType(*value)
	if err := ownership.Validate(); err != nil {
		return "", err
	}

	return ownership, nil
}
