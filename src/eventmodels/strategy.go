package eventmodels

type StrategyID string

type StrategyType string

// UnassignedStrategyID buckets positions whose trades carry no strategy
// attribution, so a strategies listing always accounts for every position.
const UnassignedStrategyID StrategyID = "unassigned"

// Strategy groups the positions opened under one strategy instance. It holds
// non-owning references into the ledger and is rebuilt from scratch after
// every refresh cycle.
type Strategy struct {
	ID        StrategyID
	Type      StrategyType
	Positions []*Position
}

func NewStrategy(id StrategyID, strategyType StrategyType) *Strategy {
	return &Strategy{
		ID:   id,
		Type: strategyType,
	}
}

func (s *Strategy) AddPosition(position *Position) {
	s.Positions = append(s.Positions, position)
}
