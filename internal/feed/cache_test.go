package feed

import (
	"testing"
	"time"
)

func ip(v int) *int { return &v }

func TestCache_SetGet(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("MKT"); ok {
		t.Fatal("empty cache returned a quote")
	}

	c.Set("MKT", Quote{YesBid: ip(40), YesAsk: ip(45), UpdatedAt: time.Now()})
	q, ok := c.Get("MKT")
	if !ok {
		t.Fatal("quote not found after Set")
	}
	if *q.YesBid != 40 || *q.YesAsk != 45 {
		t.Errorf("quote = %d/%d, want 40/45", *q.YesBid, *q.YesAsk)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_Snapshot(t *testing.T) {
	c := NewCache()
	c.Set("MKT", Quote{YesBid: ip(40), YesAsk: ip(45), UpdatedAt: time.Now()})

	snap, ok := c.Snapshot("MKT", time.Minute)
	if !ok {
		t.Fatal("Snapshot returned false")
	}
	if snap.Ticker != "MKT" {
		t.Errorf("Ticker = %q", snap.Ticker)
	}
	if snap.Best.NoBid == nil || *snap.Best.NoBid != 55 {
		t.Errorf("NoBid = %v, want 55", snap.Best.NoBid)
	}
	if snap.Best.NoAsk == nil || *snap.Best.NoAsk != 60 {
		t.Errorf("NoAsk = %v, want 60", snap.Best.NoAsk)
	}
}

func TestCache_SnapshotOneSided(t *testing.T) {
	c := NewCache()
	c.Set("MKT", Quote{YesAsk: ip(45), UpdatedAt: time.Now()})

	snap, ok := c.Snapshot("MKT", 0)
	if !ok {
		t.Fatal("Snapshot returned false")
	}
	if snap.Best.YesBid != nil || snap.Best.NoAsk != nil {
		t.Error("missing yes_bid must leave yes_bid and derived no_ask absent")
	}
	if snap.Best.NoBid == nil || *snap.Best.NoBid != 55 {
		t.Errorf("NoBid = %v, want 55", snap.Best.NoBid)
	}
}

func TestCache_SnapshotStale(t *testing.T) {
	c := NewCache()
	c.Set("MKT", Quote{YesBid: ip(40), UpdatedAt: time.Now().Add(-2 * time.Minute)})

	if _, ok := c.Snapshot("MKT", time.Minute); ok {
		t.Error("stale quote must not produce a snapshot")
	}
	if _, ok := c.Snapshot("MKT", 0); !ok {
		t.Error("maxAge 0 disables the staleness check")
	}
}

func TestHandleMessage(t *testing.T) {
	f := New(Config{}, nil, NewCache(), nil)

	f.handleMessage([]byte(`{"type":"ticker","sid":1,"msg":{"market_ticker":"MKT","yes_bid":40,"yes_ask":45,"volume":100}}`))
	q, ok := f.cache.Get("MKT")
	if !ok {
		t.Fatal("ticker message did not populate the cache")
	}
	if *q.YesBid != 40 || *q.YesAsk != 45 {
		t.Errorf("quote = %d/%d, want 40/45", *q.YesBid, *q.YesAsk)
	}

	// Non-ticker and malformed messages are ignored.
	f.handleMessage([]byte(`{"type":"subscribed","msg":{"sid":1}}`))
	f.handleMessage([]byte(`not json`))
	f.handleMessage([]byte(`{"type":"ticker","msg":{"yes_bid":1}}`)) // no ticker
	if f.cache.Len() != 1 {
		t.Errorf("cache Len = %d, want 1", f.cache.Len())
	}
}
