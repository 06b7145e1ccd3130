// Package feed maintains a WebSocket subscription to the Kalshi ticker
// channel and caches the latest quote per tracked market. The decision
// cycle reads the cache and falls back to REST when a quote is missing
// or stale.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/kalshi-bot/internal/auth"
)

// Config holds feed connection settings.
type Config struct {
	URL                string
	Tickers            []string
	ReconnectBaseDelay time.Duration
	ReconnectMaxDelay  time.Duration
	PingInterval       time.Duration
	ReadTimeout        time.Duration
}

// wsPath is the signed path for the handshake request.
const wsPath = "/trade-api/ws/v2"

// Feed owns one WebSocket connection and republishes ticker updates into
// the cache, reconnecting with exponential backoff on any failure.
type Feed struct {
	cfg    Config
	creds  *auth.Credentials
	cache  *Cache
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, creds *auth.Credentials, cache *Cache, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{cfg: cfg, creds: creds, cache: cache, logger: logger}
}

// Cache returns the quote cache the feed writes into.
func (f *Feed) Cache() *Cache {
	return f.cache
}

// Start launches the connection loop.
func (f *Feed) Start(ctx context.Context) {
	f.ctx, f.cancel = context.WithCancel(ctx)
	f.wg.Add(1)
	go f.run()
	f.logger.Info("ticker feed started", "url", f.cfg.URL, "tickers", len(f.cfg.Tickers))
}

// Stop shuts the feed down and waits for the connection loop to exit.
func (f *Feed) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
	f.wg.Wait()
	f.logger.Info("ticker feed stopped")
}

// run dials, subscribes and consumes until cancelled, backing off between
// attempts.
func (f *Feed) run() {
	defer f.wg.Done()

	wait := f.cfg.ReconnectBaseDelay
	for {
		if f.ctx.Err() != nil {
			return
		}

		err := f.session()
		if f.ctx.Err() != nil {
			return
		}
		f.logger.Warn("feed session ended", "error", err, "retry_in", wait)

		select {
		case <-f.ctx.Done():
			return
		case <-time.After(wait):
		}

		// Exponential backoff
		wait *= 2
		if wait > f.cfg.ReconnectMaxDelay {
			wait = f.cfg.ReconnectMaxDelay
		}
	}
}

// session runs one connect-subscribe-consume pass and returns its
// terminating error.
func (f *Feed) session() error {
	header := http.Header{}
	if f.creds != nil {
		signed, err := f.creds.RequestHeaders(http.MethodGet, wsPath)
		if err != nil {
			return fmt.Errorf("sign handshake: %w", err)
		}
		for k, v := range signed {
			header.Set(k, v)
		}
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(f.ctx, f.cfg.URL+wsPath, header)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// Close the socket on cancellation to unblock ReadMessage.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-f.ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-stop:
		}
	}()

	if err := f.subscribe(conn); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	f.logger.Info("feed subscribed", "tickers", len(f.cfg.Tickers))

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
	})

	pinger := time.NewTicker(f.cfg.PingInterval)
	defer pinger.Stop()
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-pinger.C:
				deadline := time.Now().Add(5 * time.Second)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			}
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		f.handleMessage(data)
	}
}

func (f *Feed) subscribe(conn *websocket.Conn) error {
	cmd := subscribeCommand{
		ID:  1,
		Cmd: "subscribe",
		Params: subscribeParams{
			Channels:      []string{"ticker"},
			MarketTickers: f.cfg.Tickers,
		},
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// handleMessage updates the cache from a ticker event; everything else
// (subscription acks, errors) is logged and dropped.
func (f *Feed) handleMessage(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		f.logger.Debug("unparsable feed message", "error", err)
		return
	}

	switch env.Type {
	case "ticker":
		var msg tickerMsg
		if err := json.Unmarshal(env.Msg, &msg); err != nil {
			f.logger.Debug("unparsable ticker payload", "error", err)
			return
		}
		if msg.MarketTicker == "" {
			return
		}
		f.cache.Set(msg.MarketTicker, Quote{
			YesBid:    msg.YesBid,
			YesAsk:    msg.YesAsk,
			UpdatedAt: time.Now(),
		})
	case "subscribed":
		f.logger.Debug("feed subscription confirmed")
	case "error":
		f.logger.Warn("feed error message", "msg", string(env.Msg))
	}
}
