package eventmodels

import "fmt"

// OwnershipType is the holding side of an option position. Equity positions
// carry no ownership dimension: their direction is the sign of the quantity.
type OwnershipType string

func (o OwnershipType) Validate() error {
	if o != Long && o != Short {
		return fmt.Errorf("OwnershipType: Validate: invalid ownership type: %s", o)
	}

	return nil
}

const (
	Long  OwnershipType = "long"
	Short OwnershipType = "short"
)
