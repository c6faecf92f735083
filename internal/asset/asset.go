package asset

import "strings"

// Symbol identifies one of the tracked cryptocurrencies. The set is closed:
// the dashboard tracks exactly BTC, ETH and USDT.
type Symbol string

const (
	BTC  Symbol = "BTC"
	ETH  Symbol = "ETH"
	USDT Symbol = "USDT"
)

var displayNames = map[Symbol]string{
	BTC:  "Bitcoin",
	ETH:  "Ethereum",
	USDT: "Tether",
}

// CoinGecko asset identifiers used on the pricing API.
var coinIDs = map[Symbol]string{
	BTC:  "bitcoin",
	ETH:  "ethereum",
	USDT: "tether",
}

// Symbols returns the tracked symbols in display order.
func Symbols() []Symbol {
	return []Symbol{BTC, ETH, USDT}
}

// Parse maps user input onto a tracked symbol. The second return value is
// false for anything outside the closed set.
func Parse(s string) (Symbol, bool) {
	sym := Symbol(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := displayNames[sym]; !ok {
		return "", false
	}
	return sym, true
}

// DisplayName returns the human readable asset name.
func (s Symbol) DisplayName() string {
	return displayNames[s]
}

// CoinID returns the identifier the pricing API uses for the symbol.
func (s Symbol) CoinID() string {
	return coinIDs[s]
}

// RateKey returns the lowercase key used in rate tables.
func (s Symbol) RateKey() string {
	return strings.ToLower(string(s))
}
