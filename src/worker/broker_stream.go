package worker

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/eventpubsub"
)

// BrokerSubscribe is the gateway's subscription payload for one account's
// account, position and commission streams.
func BrokerSubscribe(accountID string) []byte {
	return []byte(fmt.Sprintf(`sub+%s+{"streams":["account","position","commission"]}`, accountID))
}

// BrokerConnect dials the gateway's websocket endpoint and subscribes the
// account streams. The gateway runs on localhost with a self-signed
// certificate, so verification is skipped.
func BrokerConnect(urlStr string, accountID string) (*websocket.Conn, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	log.Infof("connecting to %s", u.String())

	dialer := *websocket.DefaultDialer
	dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	c, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, fmt.Errorf("broker gateway: failed to connect to websocket server: connection is nil")
	}

	payload := BrokerSubscribe(accountID)

	if err := c.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		return nil, fmt.Errorf("broker gateway: connect: failed to write message: %v, using payload %s", err, payload)
	}

	return c, nil
}

type BrokerStreamInfo struct {
	AccountID string
	ServerURL string
}

// BrokerEnvelope wraps every inbound stream message: the topic names the
// stream, the payload carries the topic's DTO.
type BrokerEnvelope struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// BrokerEventListener reads the gateway stream until the context ends,
// decoding each envelope and publishing it to the matching pubsub topic.
// Publishes are synchronous, so subscribers handle each event on this
// goroutine before the next read, in arrival order. A read failure
// reconnects and resubscribes.
func BrokerEventListener(ctx context.Context, info BrokerStreamInfo, c *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			log.Info("stopping BrokerEventListener")
			return
		default:
			c.SetReadDeadline(time.Now().UTC().Add(30 * time.Second))
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Errorf("ReadMessage(): %v", err)

				newConn, newErr := BrokerConnect(info.ServerURL, info.AccountID)
				if newErr != nil {
					log.Errorf("failed to reconnect: %v", newErr)
					continue
				}

				if e := c.Close(); e != nil {
					log.Errorf("error closing old connection: %v", e)
				}

				c = newConn
				continue
			}

			var envelope BrokerEnvelope
			if err := json.Unmarshal(message, &envelope); err != nil {
				log.Errorf("BrokerEventListener: failed to unmarshal message: %v", err)
				continue
			}

			if envelope.Topic == "" {
				log.Warnf("BrokerEventListener: unknown message: %v", string(message))
				continue
			}

			// heartbeats and session notices carry no payload
			if envelope.Topic == "system" {
				continue
			}

			switch envelope.Topic {
			case "account":
				var dto eventmodels.AccountItemDTO
				if err := json.Unmarshal(envelope.Payload, &dto); err != nil {
					log.Errorf("BrokerEventListener: failed to unmarshal account item: %v", err)
					continue
				}

				eventpubsub.PublishEventResult("BrokerEventListener", eventpubsub.AccountItemEvent, dto)
			case "position":
				var dto eventmodels.PositionEventDTO
				if err := json.Unmarshal(envelope.Payload, &dto); err != nil {
					log.Errorf("BrokerEventListener: failed to unmarshal position: %v", err)
					continue
				}

				eventpubsub.PublishEventResult("BrokerEventListener", eventpubsub.PositionEvent, dto)
			case "commission":
				var dto eventmodels.TradeFillDTO
				if err := json.Unmarshal(envelope.Payload, &dto); err != nil {
					log.Errorf("BrokerEventListener: failed to unmarshal commission report: %v", err)
					continue
				}

				eventpubsub.PublishEventResult("BrokerEventListener", eventpubsub.TradeFillEvent, dto)
			default:
				log.Warnf("BrokerEventListener: unknown topic: %v", envelope.Topic)
			}
		}
	}
}
