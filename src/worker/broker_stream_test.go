package worker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idiazm/optrack/src/eventmodels"
)

func TestBrokerEnvelopeDecoding(t *testing.T) {
	t.Run("position envelope", func(t *testing.T) {
		message := []byte(`{"topic":"position","payload":{"code":"EEM","asset_type":"OPT","expiration":"2024-06-21","strike":40,"right":"call","ownership":"long","quantity":2}}`)

		var envelope BrokerEnvelope
		require.NoError(t, json.Unmarshal(message, &envelope))
		assert.Equal(t, "position", envelope.Topic)

		var dto eventmodels.PositionEventDTO
		require.NoError(t, json.Unmarshal(envelope.Payload, &dto))

		position, err := dto.ToModel()
		require.NoError(t, err)
		assert.Equal(t, eventmodels.PositionKey("EEM_OPT_20240621_40_call_long"), position.Key())
		assert.Equal(t, 2.0, position.Quantity)
	})

	t.Run("commission envelope mints a trade id", func(t *testing.T) {
		message := []byte(`{"topic":"commission","payload":{"code":"EEM","asset_type":"OPT","expiration":"2024-06-21","strike":40,"right":"call","ownership":"long","quantity":1,"price":1.52,"timestamp":"2024-05-01T14:30:00Z","contract_id":101}}`)

		var envelope BrokerEnvelope
		require.NoError(t, json.Unmarshal(message, &envelope))

		var dto eventmodels.TradeFillDTO
		require.NoError(t, json.Unmarshal(envelope.Payload, &dto))

		trade, err := dto.ToModel()
		require.NoError(t, err)
		assert.NotEmpty(t, trade.ID)
		assert.Equal(t, eventmodels.ContractID(101), trade.ContractID)
	})

	t.Run("account envelope carries string values", func(t *testing.T) {
		message := []byte(`{"topic":"account","payload":{"name":"NetLiquidation","value":"125000.50"}}`)

		var envelope BrokerEnvelope
		require.NoError(t, json.Unmarshal(message, &envelope))

		var dto eventmodels.AccountItemDTO
		require.NoError(t, json.Unmarshal(envelope.Payload, &dto))

		item, err := dto.ToModel()
		require.NoError(t, err)
		assert.Equal(t, 125000.50, item.Value)
	})
}

func TestBrokerSubscribe(t *testing.T) {
	payload := BrokerSubscribe("U1234567")

	assert.Equal(t, `sub+U1234567+{"streams":["account","position","commission"]}`, string(payload))
}
