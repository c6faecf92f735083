package asset

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Symbol
		ok   bool
	}{
		{"BTC", BTC, true},
		{"btc", BTC, true},
		{" eth ", ETH, true},
		{"USDT", USDT, true},
		{"DOGE", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Parse(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSymbolMappings(t *testing.T) {
	if BTC.DisplayName() != "Bitcoin" || ETH.DisplayName() != "Ethereum" || USDT.DisplayName() != "Tether" {
		t.Fatal("unexpected display names")
	}
	if BTC.CoinID() != "bitcoin" || ETH.CoinID() != "ethereum" || USDT.CoinID() != "tether" {
		t.Fatal("unexpected coin ids")
	}
	if BTC.RateKey() != "btc" {
		t.Fatalf("unexpected rate key %s", BTC.RateKey())
	}
	if got := len(Symbols()); got != 3 {
		t.Fatalf("expected 3 symbols, got %d", got)
	}
}
