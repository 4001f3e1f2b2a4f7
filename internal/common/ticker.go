// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NYSE:INFY", "NSE:INFY")
type Ticker struct {
	// Exchange is the exchange code (e.g., "NYSE", "NASDAQ", "NSE")
	Exchange string
	// Code is the stock/security code (e.g., "INFY", "AAPL")
	Code string
	// Raw is the original ticker string
	Raw string
}

// knownExchanges lists exchange prefixes recognised in the dot-separated
// EXCHANGE.CODE form. Needed so codes with dots ("BRK.B") don't get split.
var knownExchanges = map[string]bool{
	"NYSE":   true,
	"NASDAQ": true,
	"AMEX":   true,
	"NSE":    true,
	"BSE":    true,
	"LSE":    true,
	"ASX":    true,
	"TSX":    true,
	"XETRA":  true,
	"TYO":    true,
	"HK":     true,
}

// DefaultExchange is the exchange assumed when parsing tickers without an
// exchange prefix. Overridden via [markets] default_exchange in TOML.
var DefaultExchange = "NYSE"

// SetDefaultExchange sets the default exchange for parsing tickers.
// Called during startup from config.
func SetDefaultExchange(exchange string) {
	if exchange != "" {
		DefaultExchange = strings.ToUpper(exchange)
	}
}

// ParseTicker parses an exchange-qualified ticker string.
// Supports formats:
//   - "NYSE:INFY" -> Exchange="NYSE", Code="INFY" (colon separator)
//   - "NYSE.INFY" -> Exchange="NYSE", Code="INFY" (dot separator)
//   - "INFY" -> Exchange=DefaultExchange, Code="INFY"
//   - "infy" -> Exchange=DefaultExchange, Code="INFY" (normalized to uppercase)
//
// Generative models report tickers in all of these shapes; the news
// provider wants the bare code, available via Code.
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	// Exchange prefix with colon separator (EXCHANGE:CODE)
	if idx := strings.Index(ticker, ":"); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(ticker[idx+1:]),
			Raw:      ticker,
		}
	}

	// Exchange prefix with dot separator (EXCHANGE.CODE)
	// Only match if the prefix is a known exchange to avoid conflicts
	// with codes containing dots
	if idx := strings.Index(ticker, "."); idx > 0 {
		possibleExchange := strings.ToUpper(ticker[:idx])
		if knownExchanges[possibleExchange] {
			return Ticker{
				Exchange: possibleExchange,
				Code:     strings.ToUpper(ticker[idx+1:]),
				Raw:      ticker,
			}
		}
	}

	// No exchange prefix - use default exchange
	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}
