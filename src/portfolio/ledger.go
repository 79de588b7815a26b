package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jinzhu/copier"
	log "github.com/sirupsen/logrus"

	"github.com/idiazm/optrack/src/eventmodels"
)

// Ledger is the authoritative in-memory position map of one account, keyed
// by the composite position key. It reconciles broker position and fill
// events with the trade history persisted in the snapshot store, and
// re-derives each position's economics from its latest trade on every
// refresh cycle.
//
// The ledger itself is not safe for concurrent use: callers serialize event
// handling and refresh cycles behind a single writer, which is the
// portfolio worker's job.
type Ledger struct {
	store     *SnapshotStore
	positions map[eventmodels.PositionKey]*eventmodels.Position
}

func NewLedger(store *SnapshotStore) *Ledger {
	return &Ledger{
		store:     store,
		positions: make(map[eventmodels.PositionKey]*eventmodels.Position),
	}
}

// ApplyPosition inserts the position at its key, or restates the identity
// and quantity of the one already there. The broker restates the whole
// position on every change, so a repeated event is a no-op. Trades and
// derived economics belong to other flows and survive the restatement.
func (l *Ledger) ApplyPosition(position *eventmodels.Position) {
	key := position.Key()

	existing, found := l.positions[key]
	if !found {
		l.positions[key] = position
		log.Debugf("[Ledger.ApplyPosition] new position %s", key)
		return
	}

	existing.Code = position.Code
	existing.AssetType = position.AssetType
	existing.Expiration = position.Expiration
	existing.Strike = position.Strike
	existing.Right = position.Right
	existing.Ownership = position.Ownership
	existing.Quantity = position.Quantity

	log.Debugf("[Ledger.ApplyPosition] position %s restated, quantity %.2f", key, position.Quantity)
}

// ApplyTrade appends the trade to the position it belongs to and persists
// the ledger right away, keeping the crash window for trade history as
// small as possible. A fill always follows the position event for the same
// key, so a miss is a data defect that surfaces as UnknownPositionErr. A
// persist failure is logged and the in-memory state stays authoritative.
func (l *Ledger) ApplyTrade(trade *eventmodels.Trade) error {
	key := trade.Key()

	position, found := l.positions[key]
	if !found {
		return fmt.Errorf("Ledger.ApplyTrade: %s: %w", key, eventmodels.UnknownPositionErr)
	}

	position.Trades = append(position.Trades, trade)

	log.Debugf("[Ledger.ApplyTrade] %s now has %d trades", key, len(position.Trades))

	if err := l.store.Save(l.positions); err != nil {
		log.Errorf("Ledger.ApplyTrade: failed to persist positions: %v", err)
	}

	return nil
}

// MergeTradeHistory adopts persisted trade sequences into live positions
// that have none yet. The merge is additive: it never overwrites a
// populated trade sequence and never introduces keys the live ledger does
// not know. A missing snapshot simply means no history has been recorded
// yet.
func (l *Ledger) MergeTradeHistory() error {
	persisted, err := l.store.Load()
	if err != nil {
		if errors.Is(err, eventmodels.SnapshotUnavailableErr) {
			log.Infof("Ledger.MergeTradeHistory: no snapshot yet: %v", err)
			return nil
		}

		return fmt.Errorf("Ledger.MergeTradeHistory: %w", err)
	}

	for key, position := range l.positions {
		if len(position.Trades) > 0 {
			continue
		}

		backup, found := persisted[key]
		if !found || len(backup.Trades) == 0 {
			continue
		}

		position.Trades = backup.Trades
		log.Debugf("[Ledger.MergeTradeHistory] %s adopted %d persisted trades", key, len(backup.Trades))
	}

	return nil
}

// RefreshEconomics re-derives the economics of every position that has
// trade history and a live quantity. It merges persisted trade history
// first, then resolves each position's latest trade through the data
// source and projects the result onto the position, and finally persists
// the ledger.
//
// A data source that returns anything but exactly one contract for a
// requested id has violated its contract; that aborts the refresh with
// AmbiguousLookupErr and leaves the position untouched. A resolved contract
// whose re-derived key is absent from the ledger is likewise a defect and
// surfaces as UnknownPositionErr. Ordinary transport failures are logged
// and skip only the affected position.
func (l *Ledger) RefreshEconomics(ctx context.Context, ds eventmodels.MarketDataSource, registry *AssetRegistry) error {
	if err := l.MergeTradeHistory(); err != nil {
		return fmt.Errorf("Ledger.RefreshEconomics: %w", err)
	}

	var trades []*eventmodels.Trade
	for _, key := range l.Keys() {
		position := l.positions[key]
		if len(position.Trades) > 0 && position.Quantity != 0 {
			trades = append(trades, position.LastTrade())
		}
	}

	log.Debugf("[Ledger.RefreshEconomics] positions to update: %d", len(trades))

	for _, trade := range trades {
		contracts, err := ds.FetchOptions(ctx, []eventmodels.ContractID{trade.ContractID})
		if err != nil {
			log.Errorf("Ledger.RefreshEconomics: contract %d: fetch failed: %v", trade.ContractID, err)
			continue
		}

		if len(contracts) != 1 {
			return fmt.Errorf("Ledger.RefreshEconomics: contract %d returned %d results: %w", trade.ContractID, len(contracts), eventmodels.AmbiguousLookupErr)
		}

		contract := contracts[0]

		key := contract.Key(trade.Ownership)
		position, found := l.positions[key]
		if !found {
			return fmt.Errorf("Ledger.RefreshEconomics: resolved contract %d maps to %s: %w", trade.ContractID, key, eventmodels.UnknownPositionErr)
		}

		DeriveEconomics(position, trade, contract, l.lookupBeta(registry, contract.Code))

		log.Debugf("[Ledger.RefreshEconomics] position %s updated", key)
	}

	if err := l.store.Save(l.positions); err != nil {
		log.Errorf("Ledger.RefreshEconomics: failed to persist positions: %v", err)
	}

	return nil
}

// lookupBeta pulls the underlying's derived beta from the registry. A
// position on an unwatched underlying has no beta to offer, which is not a
// reason to abort its refresh.
func (l *Ledger) lookupBeta(registry *AssetRegistry, code string) float64 {
	if registry == nil {
		return 0
	}

	asset, err := registry.Get(code)
	if err != nil || asset.Current == nil {
		log.Warnf("Ledger.lookupBeta: no quote for %s, beta unavailable", code)
		return 0
	}

	return asset.Current.Beta
}

// PruneClosed drops zero-quantity positions from the ledger and reports how
// many were removed. Whether closed positions accumulate or get pruned is
// the caller's policy.
func (l *Ledger) PruneClosed() int {
	pruned := 0
	for key, position := range l.positions {
		if position.Quantity == 0 {
			delete(l.positions, key)
			pruned++

			log.Debugf("[Ledger.PruneClosed] pruned %s", key)
		}
	}

	return pruned
}

// Persist writes the current position map to the snapshot store.
func (l *Ledger) Persist() error {
	if err := l.store.Save(l.positions); err != nil {
		return fmt.Errorf("Ledger.Persist: %w", err)
	}

	return nil
}

func (l *Ledger) Get(key eventmodels.PositionKey) (*eventmodels.Position, bool) {
	position, found := l.positions[key]
	return position, found
}

func (l *Ledger) Len() int {
	return len(l.positions)
}

// Keys returns the position keys in lexical order, so batch passes over the
// ledger are deterministic.
func (l *Ledger) Keys() []eventmodels.PositionKey {
	keys := make([]eventmodels.PositionKey, 0, len(l.positions))
	for key := range l.positions {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// Positions exposes the live map for single-writer callers. Readers outside
// the writer lock use Copy instead.
func (l *Ledger) Positions() map[eventmodels.PositionKey]*eventmodels.Position {
	return l.positions
}

// Copy deep-copies the position map for hand-off to readers that outlive
// the writer lock.
func (l *Ledger) Copy() map[eventmodels.PositionKey]*eventmodels.Position {
	positions := make(map[eventmodels.PositionKey]*eventmodels.Position, len(l.positions))
	copier.Copy(&positions, l.positions)
	return positions
}
