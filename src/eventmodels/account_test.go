package eventmodels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountUpdateItemValue(t *testing.T) {
	t.Run("applies a known attribute", func(t *testing.T) {
		account := &Account{}

		err := account.UpdateItemValue(AccountItem{Name: "NetLiquidation", Value: 125000.50})

		assert.Nil(t, err)
		assert.Equal(t, 125000.50, account.NetLiquidation)
		assert.False(t, account.UpdatedAt.IsZero())
	})

	t.Run("applies each margin attribute independently", func(t *testing.T) {
		account := &Account{}

		assert.Nil(t, account.UpdateItemValue(AccountItem{Name: "BuyingPower", Value: 40000}))
		assert.Nil(t, account.UpdateItemValue(AccountItem{Name: "ExcessLiquidity", Value: 15000}))
		assert.Nil(t, account.UpdateItemValue(AccountItem{Name: "MaintMarginReq", Value: 9000}))

		assert.Equal(t, 40000.0, account.BuyingPower)
		assert.Equal(t, 15000.0, account.ExcessLiquidity)
		assert.Equal(t, 9000.0, account.MaintMarginReq)
	})

	t.Run("unknown attribute leaves the account unchanged", func(t *testing.T) {
		account := &Account{}
		assert.Nil(t, account.UpdateItemValue(AccountItem{Name: "Cushion", Value: 0.8}))
		before := *account

		err := account.UpdateItemValue(AccountItem{Name: "LookAheadNextChange", Value: 1.0})

		assert.True(t, errors.Is(err, UnknownAttributeErr))
		assert.Equal(t, before, *account)
	})
}

func TestAccountItemDTO(t *testing.T) {
	t.Run("parses the string value", func(t *testing.T) {
		dto := AccountItemDTO{Name: "TotalCashValue", Value: "98250.75"}

		item, err := dto.ToModel()

		assert.Nil(t, err)
		assert.Equal(t, "TotalCashValue", item.Name)
		assert.Equal(t, 98250.75, item.Value)
	})

	t.Run("rejects a non-numeric value", func(t *testing.T) {
		dto := AccountItemDTO{Name: "AccountType", Value: "INDIVIDUAL"}

		_, err := dto.ToModel()

		assert.NotNil(t, err)
	})
}
