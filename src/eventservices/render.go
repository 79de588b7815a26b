package eventservices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/idiazm/optrack/src/eventmodels"
)

// UnderlyingsTable renders the watch list's current quotes and derived
// measures as a table, rows sorted by code.
func UnderlyingsTable(quotes map[string]eventmodels.AssetQuote) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Code", "Price", "IV", "IV Rank", "IV %ile", "Volume", "Bid", "Ask", "Stdev", "Beta"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	codes := make([]string, 0, len(quotes))
	for code := range quotes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		quote := quotes[code]

		table.Append([]string{
			code,
			p.Sprintf("$%.2f", quote.MarketPrice),
			fmt.Sprintf("%.2f", quote.IV),
			fmt.Sprintf("%.1f", quote.IVRank),
			fmt.Sprintf("%.1f", quote.IVPercentile),
			p.Sprintf("%.0f", quote.Volume),
			p.Sprintf("$%.2f", quote.Bid),
			p.Sprintf("$%.2f", quote.Ask),
			fmt.Sprintf("%.2f", quote.Stdev),
			fmt.Sprintf("%.2f", quote.Beta),
		})
	}

	table.Render()
	return display.String()
}

// PositionsTable renders the ledger as a table, rows sorted by position
// key.
func PositionsTable(positions map[eventmodels.PositionKey]*eventmodels.Position) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Key", "Qty", "Option", "Underlying", "Delta", "DTE", "Beta", "Strategy", "Trades"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")

	keys := make([]eventmodels.PositionKey, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		position := positions[key]

		table.Append([]string{
			string(key),
			fmt.Sprintf("%.0f", position.Quantity),
			p.Sprintf("$%.2f", position.OptionPrice),
			p.Sprintf("$%.2f", position.UnderlyingPrice),
			fmt.Sprintf("%.2f", position.Delta),
			fmt.Sprintf("%d", position.DaysToExpiration),
			fmt.Sprintf("%.2f", position.Beta),
			string(position.StrategyID),
			fmt.Sprintf("%d", len(position.Trades)),
		})
	}

	table.Render()
	return display.String()
}
