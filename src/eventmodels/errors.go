package eventmodels

import "fmt"

var (
	// UnknownPositionErr marks a trade event whose key matched no position in
	// the ledger. Trades are only ever recorded against positions already
	// announced by a position event, so this is a data defect that must
	// surface rather than be swallowed.
	UnknownPositionErr = fmt.Errorf("no position exists for key")

	// AmbiguousLookupErr marks a data source that returned zero or multiple
	// contracts where its contract requires exactly one.
	AmbiguousLookupErr = fmt.Errorf("contract lookup did not return exactly one result")

	UnknownAttributeErr    = fmt.Errorf("unknown account attribute")
	SnapshotUnavailableErr = fmt.Errorf("positions snapshot not found")
	UnknownBarFieldErr     = fmt.Errorf("unknown historical bar field")
	UnknownQuoteFieldErr   = fmt.Errorf("unknown quote field")
	UnknownAssetErr        = fmt.Errorf("asset is not on the watch list")
)
