package relay

import (
	"fmt"

	"github.com/j0lvera/tradebot/internal/upstream"
)

const quoteTemplate = "Name: %s\n" +
	"LTP: ₹%s\n" +
	"Change: ₹%s\n" +
	"Change Percentage: %s%%\n" +
	"Previous Close: ₹%s\n" +
	"Open: ₹%s\n" +
	"High: ₹%s\n" +
	"Low: ₹%s"

// FormatQuote renders q as the quote reply. Numbers are printed exactly as
// the upstream encoded them.
func FormatQuote(q upstream.Quote) string {
	return fmt.Sprintf(quoteTemplate,
		q.Name,
		q.LastTradePrice,
		q.Change,
		q.ChangePercent,
		q.PreviousClose,
		q.Open,
		q.High,
		q.Low,
	)
}
