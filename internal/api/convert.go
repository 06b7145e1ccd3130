package api

import "github.com/rickgao/kalshi-bot/internal/model"

// bestBid returns the highest-priced level, or nil when the side is empty.
// Levels arrive sorted ascending by price, so the best bid is the last one.
func bestBid(levels [][]int) *int {
	for i := len(levels) - 1; i >= 0; i-- {
		if len(levels[i]) >= 2 {
			price := levels[i][0]
			return &price
		}
	}
	return nil
}

// BestPrices normalizes a raw orderbook into best bid/ask for both sides.
// Only the two native bids are observed; the opposing asks are derived from
// the reciprocity rule (the two sides of a binary contract sum to 100).
func (o *OrderbookResponse) BestPrices() model.BestPrices {
	yesBid := bestBid(o.Orderbook.Yes)
	noBid := bestBid(o.Orderbook.No)

	var yesAsk, noAsk *int
	if noBid != nil {
		v := 100 - *noBid
		yesAsk = &v
	}
	if yesBid != nil {
		v := 100 - *yesBid
		noAsk = &v
	}

	return model.BestPrices{
		YesBid: yesBid,
		YesAsk: yesAsk,
		NoBid:  noBid,
		NoAsk:  noAsk,
	}
}

// Snapshot builds a market snapshot from the orderbook.
func (o *OrderbookResponse) Snapshot(ticker string) model.MarketSnapshot {
	return model.MarketSnapshot{
		Ticker: ticker,
		Best:   o.BestPrices(),
	}
}
