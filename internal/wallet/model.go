package wallet

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coinfolio/coinfolio/internal/asset"
	"github.com/coinfolio/coinfolio/internal/rates"
)

var (
	// ErrUnknownAsset occurs when an operation names a symbol outside the
	// tracked set.
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrInvalidAmount occurs when an operation carries a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance occurs when a send exceeds the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Transaction types recorded in the ledger.
const (
	TxReceived = "received"
	TxSent     = "sent"
	TxExchange = "exchange"
)

// StatusCompleted is the only transaction status in this design: there is no
// real settlement, so every entry is created already terminal.
const StatusCompleted = "completed"

// Transaction is an immutable ledger entry.
type Transaction struct {
	Type      string
	Asset     asset.Symbol
	Amount    float64
	Address   string
	CreatedAt time.Time
	Status    string
}

// Holding is the tracked balance for one asset.
type Holding struct {
	Name    string
	Balance float64
}

// Wallet owns the asset balances and the append-only transaction ledger for
// a single user. All mutations run under the wallet's own mutex, so two
// concurrent sends for the same user serialize while different users stay
// fully parallel.
type Wallet struct {
	mu           sync.Mutex
	holdings     map[asset.Symbol]*Holding
	transactions []Transaction
	addresses    map[asset.Symbol]string
}

// New constructs a wallet with a holding entry for every tracked symbol and
// seeds the demo starting state.
func New() *Wallet {
	w := &Wallet{
		holdings:  make(map[asset.Symbol]*Holding, len(asset.Symbols())),
		addresses: make(map[asset.Symbol]string, len(asset.Symbols())),
	}
	for _, sym := range asset.Symbols() {
		w.holdings[sym] = &Holding{Name: sym.DisplayName()}
	}
	w.seedDemoState()
	return w
}

// seedDemoState sets the fixed starting balances and records three demo
// transactions so first-time users see a non-empty ledger.
func (w *Wallet) seedDemoState() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.holdings[asset.BTC].Balance = 0.042
	w.holdings[asset.ETH].Balance = 1.2
	w.holdings[asset.USDT].Balance = 500

	w.appendTransaction(TxReceived, asset.BTC, 0.01, "1A1zP1...")
	w.appendTransaction(TxSent, asset.ETH, 0.5, "0x4bbe...")
	w.appendTransaction(TxExchange, asset.USDT, 100, "Exchanged for BTC")
}

// RecordTransaction appends a ledger entry at the head of the ledger. It is
// a pure ledger primitive: balance adjustment stays the caller's
// responsibility so append and mutation can be verified independently.
func (w *Wallet) RecordTransaction(txType string, sym asset.Symbol, amount float64, address string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.appendTransaction(txType, sym, amount, address)
}

// appendTransaction must run with w.mu held.
func (w *Wallet) appendTransaction(txType string, sym asset.Symbol, amount float64, address string) {
	tx := Transaction{
		Type:      txType,
		Asset:     sym,
		Amount:    amount,
		Address:   address,
		CreatedAt: time.Now().UTC().Truncate(time.Minute),
		Status:    StatusCompleted,
	}
	w.transactions = append([]Transaction{tx}, w.transactions...)
}

// Send validates and applies an outgoing transfer: amount must be positive
// and not exceed the asset balance. Debit and ledger append happen as one
// unit under the wallet lock; validation failures leave no partial effects.
// The returned balance is the immediate post-debit value, captured before
// the lock is released so concurrent sends cannot skew the confirmation.
func (w *Wallet) Send(sym asset.Symbol, amount float64, address string) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	holding, ok := w.holdings[sym]
	if !ok {
		return 0, ErrUnknownAsset
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount > holding.Balance {
		return 0, ErrInsufficientBalance
	}

	holding.Balance -= amount
	w.appendTransaction(TxSent, sym, amount, address)
	return holding.Balance, nil
}

// Credit applies an incoming transfer: balance increment plus a received
// ledger entry, as one unit.
func (w *Wallet) Credit(sym asset.Symbol, amount float64, address string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	holding, ok := w.holdings[sym]
	if !ok {
		return ErrUnknownAsset
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	holding.Balance += amount
	w.appendTransaction(TxReceived, sym, amount, address)
	return nil
}

// DepositAddress returns the wallet's deposit address for the asset,
// generating it on first use. The address is an opaque demo label, stable
// for the wallet's lifetime.
func (w *Wallet) DepositAddress(sym asset.Symbol) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.holdings[sym]; !ok {
		return "", ErrUnknownAsset
	}
	addr, ok := w.addresses[sym]
	if !ok {
		addr = fmt.Sprintf("%s:%s", sym.RateKey(), uuid.NewString())
		w.addresses[sym] = addr
	}
	return addr, nil
}

// TotalValue sums balance x rate over every holding, rounded to 2 decimal
// places. A symbol missing from the table contributes zero, so valuation is
// always well-defined.
func (w *Wallet) TotalValue(table rates.Table) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := 0.0
	for sym, holding := range w.holdings {
		total += holding.Balance * table[sym.RateKey()]
	}
	return math.Round(total*100) / 100
}

// Balance returns the current balance for the asset.
func (w *Wallet) Balance(sym asset.Symbol) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	holding, ok := w.holdings[sym]
	if !ok {
		return 0, ErrUnknownAsset
	}
	return holding.Balance, nil
}

// Holdings returns a copy of the asset balances.
func (w *Wallet) Holdings() map[asset.Symbol]Holding {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[asset.Symbol]Holding, len(w.holdings))
	for sym, holding := range w.holdings {
		out[sym] = *holding
	}
	return out
}

// Transactions returns a copy of the ledger, newest first.
func (w *Wallet) Transactions() []Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Transaction, len(w.transactions))
	copy(out, w.transactions)
	return out
}
