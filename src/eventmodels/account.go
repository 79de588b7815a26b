package eventmodels

import (
	"fmt"
	"time"
)

// Account is the margin and balance snapshot of the brokerage account,
// updated attribute by attribute as the broker streams account items.
type Account struct {
	NetLiquidation     float64   `json:"net_liquidation"`
	TotalCashValue     float64   `json:"total_cash_value"`
	BuyingPower        float64   `json:"buying_power"`
	AvailableFunds     float64   `json:"available_funds"`
	ExcessLiquidity    float64   `json:"excess_liquidity"`
	Cushion            float64   `json:"cushion"`
	GrossPositionValue float64   `json:"gross_position_value"`
	InitMarginReq      float64   `json:"init_margin_req"`
	MaintMarginReq     float64   `json:"maint_margin_req"`
	UnrealizedPnL      float64   `json:"unrealized_pnl"`
	RealizedPnL        float64   `json:"realized_pnl"`
	DayTradesRemaining float64   `json:"day_trades_remaining"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UpdateItemValue applies one account item to its attribute. An unrecognized
// attribute name leaves the account unchanged and returns UnknownAttributeErr.
func (a *Account) UpdateItemValue(item AccountItem) error {
	switch item.Name {
	case "NetLiquidation":
		a.NetLiquidation = item.Value
	case "TotalCashValue":
		a.TotalCashValue = item.Value
	case "BuyingPower":
		a.BuyingPower = item.Value
	case "AvailableFunds":
		a.AvailableFunds = item.Value
	case "ExcessLiquidity":
		a.ExcessLiquidity = item.Value
	case "Cushion":
		a.Cushion = item.Value
	case "GrossPositionValue":
		a.GrossPositionValue = item.Value
	case "InitMarginReq":
		a.InitMarginReq = item.Value
	case "MaintMarginReq":
		a.MaintMarginReq = item.Value
	case "UnrealizedPnL":
		a.UnrealizedPnL = item.Value
	case "RealizedPnL":
		a.RealizedPnL = item.Value
	case "DayTradesRemaining":
		a.DayTradesRemaining = item.Value
	default:
		return fmt.Errorf("Account: UpdateItemValue: %s: %w", item.Name, UnknownAttributeErr)
	}

	a.UpdatedAt = time.Now().UTC()

	return nil
}
