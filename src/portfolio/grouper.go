package portfolio

import (
	"sort"

	"github.com/idiazm/optrack/src/eventmodels"
)

// RebuildStrategies partitions the position map into strategy groups by
// strategy id. Every position lands in exactly one group: positions whose
// trades never carried strategy attribution collect under the unassigned
// pseudo-group rather than being dropped. Groups hold references into the
// ledger, not copies, and are rebuilt from scratch on every call, so the
// result is total and idempotent.
func RebuildStrategies(positions map[eventmodels.PositionKey]*eventmodels.Position) map[eventmodels.StrategyID]*eventmodels.Strategy {
	strategies := make(map[eventmodels.StrategyID]*eventmodels.Strategy)

	for _, key := range sortedKeys(positions) {
		position := positions[key]

		id := position.StrategyID
		if id == "" {
			id = eventmodels.UnassignedStrategyID
		}

		strategy, found := strategies[id]
		if !found {
			strategy = eventmodels.NewStrategy(id, position.StrategyType)
			strategies[id] = strategy
		}

		strategy.AddPosition(position)
	}

	return strategies
}

// sortedKeys orders the map's keys lexically so group members always appear
// in the same order between rebuilds.
func sortedKeys(positions map[eventmodels.PositionKey]*eventmodels.Position) []eventmodels.PositionKey {
	keys := make([]eventmodels.PositionKey, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
