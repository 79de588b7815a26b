package eventconsumers

import (
	"context"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventmodels"
	pubsub "github.com/idiazm/optrack/src/eventpubsub"
	"github.com/idiazm/optrack/src/portfolio"
)

// PortfolioWorker owns the account's working set: the position ledger, the
// account snapshot, the asset registry and the derived strategy groups. It
// consumes the broker's account/position/fill events off the pubsub and
// runs the periodic refresh cycle; a single mutex serializes both paths, so
// there is exactly one writer at a time and a refresh never runs
// reentrantly.
type PortfolioWorker struct {
	wg         *sync.WaitGroup
	mutex      *pubsub.SafeMutex
	ledger     *portfolio.Ledger
	account    *eventmodels.Account
	registry   *portfolio.AssetRegistry
	strategies map[eventmodels.StrategyID]*eventmodels.Strategy
	dataSource eventmodels.MarketDataSource

	benchmark       string
	stdevWindow     int
	refreshInterval time.Duration
	pruneClosed     bool
}

func NewPortfolioWorker(wg *sync.WaitGroup, ledger *portfolio.Ledger, registry *portfolio.AssetRegistry, dataSource eventmodels.MarketDataSource, config *eventmodels.PortfolioConfigYAML) *PortfolioWorker {
	return &PortfolioWorker{
		wg:              wg,
		mutex:           &pubsub.SafeMutex{},
		ledger:          ledger,
		account:         &eventmodels.Account{},
		registry:        registry,
		strategies:      make(map[eventmodels.StrategyID]*eventmodels.Strategy),
		dataSource:      dataSource,
		benchmark:       config.Benchmark,
		stdevWindow:     config.StdevWindowDays,
		refreshInterval: config.RefreshInterval(),
		pruneClosed:     config.PruneClosedPositions,
	}
}

func (w *PortfolioWorker) accountItemHandler(dto eventmodels.AccountItemDTO) {
	log.Debug("<- PortfolioWorker.accountItemHandler")

	w.mutex.Lock()
	defer w.mutex.Unlock()

	item, err := dto.ToModel()
	if err != nil {
		pubsub.PublishEventError("PortfolioWorker.accountItemHandler", err)
		return
	}

	if err := w.account.UpdateItemValue(item); err != nil {
		pubsub.PublishEventError("PortfolioWorker.accountItemHandler", err)
	}
}

func (w *PortfolioWorker) positionHandler(dto eventmodels.PositionEventDTO) {
	log.Debug("<- PortfolioWorker.positionHandler")

	w.mutex.Lock()
	defer w.mutex.Unlock()

	position, err := dto.ToModel()
	if err != nil {
		pubsub.PublishEventError("PortfolioWorker.positionHandler", err)
		return
	}

	w.ledger.ApplyPosition(position)
}

func (w *PortfolioWorker) tradeFillHandler(dto eventmodels.TradeFillDTO) {
	log.Debug("<- PortfolioWorker.tradeFillHandler")

	w.mutex.Lock()
	defer w.mutex.Unlock()

	trade, err := dto.ToModel()
	if err != nil {
		pubsub.PublishEventError("PortfolioWorker.tradeFillHandler", err)
		return
	}

	if err := w.ledger.ApplyTrade(trade); err != nil {
		pubsub.PublishEventError("PortfolioWorker.tradeFillHandler", err)
	}
}

// refresh runs one full cycle: current values, historical series, derived
// measures, position economics, strategy regroup, and the optional pruning
// of closed positions before the final persist.
func (w *PortfolioWorker) refresh(ctx context.Context) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	start := time.Now()

	if err := w.registry.RefreshCurrent(ctx, w.dataSource); err != nil {
		log.Errorf("PortfolioWorker.refresh: %v", err)
	}

	w.registry.RefreshHistoricalBars(ctx, w.dataSource)
	w.registry.RefreshHistoricalIV(ctx, w.dataSource)

	portfolio.ComputeMeasures(w.registry, w.benchmark, w.stdevWindow)

	if err := w.ledger.RefreshEconomics(ctx, w.dataSource, w.registry); err != nil {
		log.Errorf("PortfolioWorker.refresh: %v", err)
	}

	if w.pruneClosed {
		if pruned := w.ledger.PruneClosed(); pruned > 0 {
			log.Infof("PortfolioWorker.refresh: pruned %d closed positions", pruned)

			if err := w.ledger.Persist(); err != nil {
				log.Errorf("PortfolioWorker.refresh: %v", err)
			}
		}
	}

	w.strategies = portfolio.RebuildStrategies(w.ledger.Positions())

	events.Emit(eventmodels.RefreshCompletedEvent, eventmodels.RefreshSummary{
		Assets:      w.registry.Len(),
		Positions:   w.ledger.Len(),
		Strategies:  len(w.strategies),
		Elapsed:     time.Since(start),
		CompletedAt: time.Now().UTC(),
	})
}

// Account returns a copy of the account snapshot, safe to hand to readers
// outside the writer lock.
func (w *PortfolioWorker) Account() eventmodels.Account {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return *w.account
}

// Positions returns a deep copy of the position map, safe to hand to
// readers outside the writer lock.
func (w *PortfolioWorker) Positions() map[eventmodels.PositionKey]*eventmodels.Position {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.ledger.Copy()
}

// Strategies returns a deep copy of the strategy groups from the last
// rebuild.
func (w *PortfolioWorker) Strategies() map[eventmodels.StrategyID]*eventmodels.Strategy {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	strategies := make(map[eventmodels.StrategyID]*eventmodels.Strategy, len(w.strategies))
	copier.Copy(&strategies, w.strategies)
	return strategies
}

// Underlyings returns a copy of the current quotes of every watched asset,
// keyed by code.
func (w *PortfolioWorker) Underlyings() map[string]eventmodels.AssetQuote {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	quotes := make(map[string]eventmodels.AssetQuote)
	for _, asset := range w.registry.Assets() {
		if asset.Current == nil {
			continue
		}

		quotes[asset.Code] = *asset.Current
	}

	return quotes
}

// OptionChain pulls the current option chain of one watched underlying
// through the data source and returns a copy of it.
func (w *PortfolioWorker) OptionChain(ctx context.Context, code string) ([]*eventmodels.OptionContract, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	chain, err := w.registry.RefreshOptionChain(ctx, w.dataSource, code)
	if err != nil {
		return nil, err
	}

	copied := make([]*eventmodels.OptionContract, 0, len(chain))
	copier.Copy(&copied, chain)
	return copied, nil
}

// ColumnView projects one historical bar field across the watch list. The
// series are copied out so the caller can hold them outside the lock.
func (w *PortfolioWorker) ColumnView(field string) (map[string][]float64, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	view, err := w.registry.ColumnView(field)
	if err != nil {
		return nil, err
	}

	copied := make(map[string][]float64, len(view))
	for code, series := range view {
		copied[code] = append([]float64(nil), series...)
	}

	return copied, nil
}

// Start resolves contract identities, merges persisted trade history into
// the live ledger, subscribes the event handlers and launches the refresh
// loop. The first refresh runs immediately; a final persist runs on
// shutdown.
func (w *PortfolioWorker) Start(ctx context.Context) {
	w.wg.Add(1)

	if err := w.registry.InitializeIdentities(ctx, w.dataSource); err != nil {
		log.Errorf("PortfolioWorker.Start: %v", err)
	}

	if err := w.ledger.MergeTradeHistory(); err != nil {
		log.Errorf("PortfolioWorker.Start: %v", err)
	}

	pubsub.Subscribe("PortfolioWorker", pubsub.AccountItemEvent, w.accountItemHandler)
	pubsub.Subscribe("PortfolioWorker", pubsub.PositionEvent, w.positionHandler)
	pubsub.Subscribe("PortfolioWorker", pubsub.TradeFillEvent, w.tradeFillHandler)

	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.refreshInterval)
		defer ticker.Stop()

		w.refresh(ctx)

		for {
			select {
			case <-ticker.C:
				w.refresh(ctx)
			case <-ctx.Done():
				log.Info("stopping PortfolioWorker consumer")

				w.mutex.Lock()
				if err := w.ledger.Persist(); err != nil {
					log.Errorf("PortfolioWorker.Start: final persist failed: %v", err)
				}
				w.mutex.Unlock()

				return
			}
		}
	}()
}
