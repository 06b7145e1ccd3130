// Package report renders per-cycle console output: one table of intents
// and their execution outcomes plus a summary line.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rickgao/kalshi-bot/internal/model"
)

// Reporter writes cycle reports to a console writer.
type Reporter struct {
	out io.Writer
}

func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintCycle renders the cycle's execution results. A cycle with no intents
// prints only a quiet one-liner.
func (r *Reporter) PrintCycle(cycleStart time.Time, markets int, results []model.ExecutionResult) {
	elapsed := time.Since(cycleStart).Round(time.Millisecond)

	if len(results) == 0 {
		fmt.Fprintf(r.out, "[%s] %d markets scanned, no intents (%s)\n",
			cycleStart.Format("15:04:05"), markets, elapsed)
		return
	}

	table := tablewriter.NewWriter(r.out)
	table.Header("Ticker", "Side", "Price", "Count", "Status", "Detail")

	sent, rejected, failed := 0, 0, 0
	for _, res := range results {
		i := res.Intent
		status := classify(res)
		switch status {
		case "SENT", "PAPER":
			sent++
		case "REJECTED":
			rejected++
		default:
			failed++
		}
		table.Append(
			i.Ticker,
			string(i.Side),
			fmt.Sprintf("%dc", i.PriceCents),
			fmt.Sprintf("%d", i.Count),
			status,
			res.Detail,
		)
	}
	table.Render()

	fmt.Fprintf(r.out, "[%s] %d markets, %d intents: %d executed, %d rejected, %d errors (%s)\n",
		cycleStart.Format("15:04:05"), markets, len(results), sent, rejected, failed, elapsed)
}

// PrintBalance renders the account balance in dollars.
func (r *Reporter) PrintBalance(balanceCents int64) {
	fmt.Fprintf(r.out, "account balance: $%.2f\n", float64(balanceCents)/100)
}

func classify(res model.ExecutionResult) string {
	switch {
	case strings.HasPrefix(res.Detail, "ORDER_SENT"):
		return "SENT"
	case strings.HasPrefix(res.Detail, "PAPER_OK"):
		return "PAPER"
	case strings.HasPrefix(res.Detail, "RISK_REJECT"):
		return "REJECTED"
	default:
		return "ERROR"
	}
}
