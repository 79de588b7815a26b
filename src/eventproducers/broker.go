package eventproducers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/worker"
)

// BrokerClient owns the lifecycle of the gateway event stream: it makes the
// initial connection and keeps the listener running until the context ends.
type BrokerClient struct {
	wg        *sync.WaitGroup
	serverURL string
	accountID string
}

func (c *BrokerClient) Start(ctx context.Context) {
	c.wg.Add(1)

	info := worker.BrokerStreamInfo{
		AccountID: c.accountID,
		ServerURL: c.serverURL,
	}

	conn, connErr := worker.BrokerConnect(info.ServerURL, info.AccountID)
	if connErr != nil {
		log.Fatalf("BrokerClient: initial connect failed: %v", connErr)
	}

	go func() {
		defer c.wg.Done()
		defer conn.Close()

		worker.BrokerEventListener(ctx, info, conn)

		log.Info("stopping Broker producer")
	}()
}

func NewBrokerClient(wg *sync.WaitGroup, serverURL string, accountID string) *BrokerClient {
	return &BrokerClient{
		wg:        wg,
		serverURL: serverURL,
		accountID: accountID,
	}
}
