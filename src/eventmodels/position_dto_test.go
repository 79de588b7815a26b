package eventmodels

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionDTORoundTrip(t *testing.T) {
	expiration := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	tradeTime := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)

	t.Run("option position with trades", func(t *testing.T) {
		position := &Position{
			Code:             "EEM",
			AssetType:        Option,
			Expiration:       expiration,
			Strike:           40.0,
			Right:            CallRight,
			Ownership:        Long,
			Quantity:         2,
			OptionPrice:      1.25,
			UnderlyingPrice:  41.8,
			Delta:            0.45,
			DaysToExpiration: 32,
			Beta:             1.1,
			TradePrice:       1.10,
			TradeTimestamp:   tradeTime,
			Algorithm:        "wheel",
			StrategyType:     "covered_call",
			StrategyID:       "wheel-007",
			Role:             "income_leg",
			Trades: []*Trade{
				{
					ID:         uuid.New(),
					Code:       "EEM",
					AssetType:  Option,
					Expiration: expiration,
					Strike:     40.0,
					Right:      CallRight,
					Ownership:  Long,
					Quantity:   2,
					Price:      1.10,
					Timestamp:  tradeTime,
					StrategyID: "wheel-007",
					ContractID: 7711,
				},
			},
		}

		restored, err := position.ToDTO().ToModel()
		require.Nil(t, err)

		assert.Equal(t, position.Key(), restored.Key())
		assert.Equal(t, position.Quantity, restored.Quantity)
		assert.Equal(t, position.OptionPrice, restored.OptionPrice)
		assert.Equal(t, position.DaysToExpiration, restored.DaysToExpiration)
		assert.Equal(t, position.StrategyID, restored.StrategyID)
		assert.True(t, position.TradeTimestamp.Equal(restored.TradeTimestamp))
		require.Len(t, restored.Trades, 1)
		assert.Equal(t, position.Trades[0].ID, restored.Trades[0].ID)
		assert.Equal(t, position.Trades[0].ContractID, restored.Trades[0].ContractID)
	})

	t.Run("equity position restores its NA dimensions", func(t *testing.T) {
		position := &Position{
			Code:      "SPY",
			AssetType: Stock,
			Strike:    math.NaN(),
			Quantity:  100,
		}

		dto := position.ToDTO()
		assert.Nil(t, dto.Expiration)
		assert.Nil(t, dto.Strike)
		assert.Nil(t, dto.Right)
		assert.Nil(t, dto.Ownership)

		restored, err := dto.ToModel()
		require.Nil(t, err)

		assert.True(t, math.IsNaN(restored.Strike))
		assert.True(t, restored.Expiration.IsZero())
		assert.Equal(t, position.Key(), restored.Key())
	})

	t.Run("rejects an invalid right", func(t *testing.T) {
		right := "straddle"
		dto := PositionDTO{Code: "EEM", AssetType: "OPT", Right: &right}

		_, err := dto.ToModel()

		assert.NotNil(t, err)
	})
}

func TestTradeFillDTOToModel(t *testing.T) {
	t.Run("mints an id when the broker omits one", func(t *testing.T) {
		dto := TradeFillDTO{
			Code:      "EEM",
			AssetType: "OPT",
			Quantity:  1,
			Price:     1.05,
			Timestamp: "2024-03-04T15:30:00Z",
		}

		trade, err := dto.ToModel()
		require.Nil(t, err)

		assert.NotEqual(t, uuid.Nil, trade.ID)
	})

	t.Run("keeps the broker id when present", func(t *testing.T) {
		id := uuid.New()
		dto := TradeFillDTO{
			ID:        id.String(),
			Code:      "EEM",
			AssetType: "OPT",
			Quantity:  1,
			Price:     1.05,
			Timestamp: "2024-03-04T15:30:00Z",
		}

		trade, err := dto.ToModel()
		require.Nil(t, err)

		assert.Equal(t, id, trade.ID)
	})

	t.Run("rejects a malformed timestamp", func(t *testing.T) {
		dto := TradeFillDTO{
			Code:      "EEM",
			AssetType: "OPT",
			Timestamp: "yesterday",
		}

		_, err := dto.ToModel()

		assert.NotNil(t, err)
	})
}
