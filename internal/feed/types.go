package feed

import "encoding/json"

type subscribeCommand struct {
	ID     int             `json:"id"`
	Cmd    string          `json:"cmd"`
	Params subscribeParams `json:"params"`
}

type subscribeParams struct {
	Channels      []string `json:"channels"`
	MarketTickers []string `json:"market_tickers,omitempty"`
}

// envelope is the outer shape of every server message.
type envelope struct {
	Type string          `json:"type"`
	SID  int64           `json:"sid,omitempty"`
	Msg  json.RawMessage `json:"msg"`
}

// tickerMsg is the payload of a ticker channel event. Prices are pointers:
// a one-sided book omits the missing field.
type tickerMsg struct {
	MarketTicker string `json:"market_ticker"`
	YesBid       *int   `json:"yes_bid"`
	YesAsk       *int   `json:"yes_ask"`
	Price        *int   `json:"price"`
	Volume       int64  `json:"volume"`
}
