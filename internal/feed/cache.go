package feed

import (
	"sync"
	"time"

	"github.com/rickgao/kalshi-bot/internal/model"
)

// Quote is the latest observed top of book for one market.
type Quote struct {
	YesBid    *int
	YesAsk    *int
	UpdatedAt time.Time
}

// Cache holds the most recent quote per ticker. Safe for concurrent use:
// the feed goroutine writes, the decision cycle reads.
type Cache struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewCache() *Cache {
	return &Cache{quotes: make(map[string]Quote)}
}

// Set stores the latest quote for a ticker.
func (c *Cache) Set(ticker string, q Quote) {
	c.mu.Lock()
	c.quotes[ticker] = q
	c.mu.Unlock()
}

// Get returns the latest quote for a ticker.
func (c *Cache) Get(ticker string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[ticker]
	return q, ok
}

// Snapshot converts a cached quote into a market snapshot, deriving the
// complementary side from bid/ask reciprocity. Returns false when the
// ticker has no quote or the quote is older than maxAge.
func (c *Cache) Snapshot(ticker string, maxAge time.Duration) (model.MarketSnapshot, bool) {
	q, ok := c.Get(ticker)
	if !ok {
		return model.MarketSnapshot{}, false
	}
	if maxAge > 0 && time.Since(q.UpdatedAt) > maxAge {
		return model.MarketSnapshot{}, false
	}

	best := model.BestPrices{YesBid: q.YesBid, YesAsk: q.YesAsk}
	if q.YesAsk != nil {
		v := 100 - *q.YesAsk
		best.NoBid = &v
	}
	if q.YesBid != nil {
		v := 100 - *q.YesBid
		best.NoAsk = &v
	}
	return model.MarketSnapshot{Ticker: ticker, Best: best}, true
}

// Len returns the number of tickers with a cached quote.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}
