package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	// Ensure default exchange is NYSE for these tests
	originalDefault := DefaultExchange
	DefaultExchange = "NYSE"
	defer func() { DefaultExchange = originalDefault }()

	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantString   string
	}{
		// Exchange-qualified format with colon separator
		{"NYSE:INFY", "NYSE", "INFY", "NYSE:INFY"},
		{"NSE:INFY", "NSE", "INFY", "NSE:INFY"},
		{"NASDAQ:MSFT", "NASDAQ", "MSFT", "NASDAQ:MSFT"},

		// Exchange-qualified format with dot separator (EXCHANGE.CODE)
		{"NYSE.INFY", "NYSE", "INFY", "NYSE:INFY"},
		{"NASDAQ.MSFT", "NASDAQ", "MSFT", "NASDAQ:MSFT"},

		// Codes with dots must not be split on unknown prefixes
		{"BRK.B", "NYSE", "BRK.B", "NYSE:BRK.B"},

		// Bare code (defaults to NYSE)
		{"INFY", "NYSE", "INFY", "NYSE:INFY"},
		{"AAPL", "NYSE", "AAPL", "NYSE:AAPL"},

		// Case normalization
		{"nse:infy", "NSE", "INFY", "NSE:INFY"},
		{"infy", "NYSE", "INFY", "NYSE:INFY"},

		// Whitespace handling
		{"  NSE:INFY  ", "NSE", "INFY", "NSE:INFY"},
		{"  INFY  ", "NYSE", "INFY", "NYSE:INFY"},

		// Empty input
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input)

			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", result.String(), tt.wantString)
			}
		})
	}
}

func TestSetDefaultExchange(t *testing.T) {
	originalDefault := DefaultExchange
	defer func() { DefaultExchange = originalDefault }()

	SetDefaultExchange("nse")
	if DefaultExchange != "NSE" {
		t.Errorf("DefaultExchange = %q, want NSE", DefaultExchange)
	}

	// Empty input leaves the default untouched
	SetDefaultExchange("")
	if DefaultExchange != "NSE" {
		t.Errorf("DefaultExchange = %q, want NSE after empty set", DefaultExchange)
	}
}
