// Package api implements the Kalshi REST client: signed authentication
// headers, token-bucket rate limiting split by read/write request class,
// typed wire structs, and normalization of raw orderbooks into best
// bid/ask for both contract sides.
//
// The transport never retries: a non-2xx status or non-JSON body surfaces
// as an error and retry policy is left to the caller.
package api
