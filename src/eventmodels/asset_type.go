package eventmodels

import "fmt"

type AssetType string

func (t AssetType) Validate() error {
	if t != Stock && t != Index && t != Option {
		return fmt.Errorf("AssetType: Validate: invalid asset type: %s", t)
	}

	return nil
}

const (
	Stock  AssetType = "STK"
	Index  AssetType = "IND"
	Option AssetType = "OPT"
)
