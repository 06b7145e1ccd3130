package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rickgao/kalshi-bot/internal/model"
)

func result(detail string) model.ExecutionResult {
	return model.ExecutionResult{
		Intent: model.OrderIntent{
			Ticker:     "MKT",
			Side:       model.SideYes,
			Action:     model.ActionBuy,
			Count:      5,
			PriceCents: 44,
		},
		OK:     strings.HasPrefix(detail, "ORDER_SENT") || strings.HasPrefix(detail, "PAPER_OK"),
		Detail: detail,
	}
}

func TestPrintCycle_Empty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).PrintCycle(time.Now(), 3, nil)

	out := buf.String()
	if !strings.Contains(out, "3 markets scanned") {
		t.Errorf("missing market count: %q", out)
	}
	if !strings.Contains(out, "no intents") {
		t.Errorf("missing empty note: %q", out)
	}
}

func TestPrintCycle_Results(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).PrintCycle(time.Now(), 2, []model.ExecutionResult{
		result("PAPER_OK (no order sent)"),
		result("RISK_REJECT: count must be positive"),
		result("EXEC_ERROR: connection refused"),
	})

	out := buf.String()
	for _, want := range []string{"MKT", "44c", "PAPER", "REJECTED", "ERROR",
		"3 intents: 1 executed, 1 rejected, 1 errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBalance(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).PrintBalance(123456)

	if !strings.Contains(buf.String(), "$1234.56") {
		t.Errorf("balance output = %q", buf.String())
	}
}
