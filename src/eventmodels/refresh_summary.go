package eventmodels

import "time"

// RefreshCompletedEvent fires after every portfolio refresh cycle with a
// RefreshSummary payload.
const RefreshCompletedEvent = "refresh_completed"

type RefreshSummary struct {
	Assets      int
	Positions   int
	Strategies  int
	Elapsed     time.Duration
	CompletedAt time.Time
}
