package wallet

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/coinfolio/coinfolio/internal/asset"
	"github.com/coinfolio/coinfolio/internal/rates"
)

func TestNewWalletSeedsDemoState(t *testing.T) {
	w := New()

	holdings := w.Holdings()
	if got := holdings[asset.BTC].Balance; got != 0.042 {
		t.Fatalf("expected BTC balance 0.042, got %v", got)
	}
	if got := holdings[asset.ETH].Balance; got != 1.2 {
		t.Fatalf("expected ETH balance 1.2, got %v", got)
	}
	if got := holdings[asset.USDT].Balance; got != 500.0 {
		t.Fatalf("expected USDT balance 500, got %v", got)
	}

	txs := w.Transactions()
	if len(txs) != 3 {
		t.Fatalf("expected 3 seeded transactions, got %d", len(txs))
	}
	// newest first: exchange, sent, received
	if txs[0].Type != TxExchange || txs[0].Asset != asset.USDT || txs[0].Amount != 100 {
		t.Fatalf("unexpected head transaction: %+v", txs[0])
	}
	if txs[1].Type != TxSent || txs[1].Asset != asset.ETH || txs[1].Amount != 0.5 {
		t.Fatalf("unexpected middle transaction: %+v", txs[1])
	}
	if txs[2].Type != TxReceived || txs[2].Asset != asset.BTC || txs[2].Amount != 0.01 {
		t.Fatalf("unexpected tail transaction: %+v", txs[2])
	}
	for _, tx := range txs {
		if tx.Status != StatusCompleted {
			t.Fatalf("expected completed status, got %s", tx.Status)
		}
		if sec := tx.CreatedAt.Second(); sec != 0 {
			t.Fatalf("expected minute-precision timestamp, got seconds=%d", sec)
		}
	}
}

func TestTotalValue(t *testing.T) {
	w := New()
	table := rates.Table{"btc": 50000, "eth": 3000, "usdt": 1}

	// 0.042*50000 + 1.2*3000 + 500*1 = 2100 + 3600 + 500
	if got := w.TotalValue(table); got != 6200.00 {
		t.Fatalf("expected total 6200.00, got %v", got)
	}
}

func TestTotalValueMissingSymbolContributesZero(t *testing.T) {
	w := New()
	table := rates.Table{"btc": 50000}

	if got := w.TotalValue(table); got != 2100.00 {
		t.Fatalf("expected total 2100.00 with only btc priced, got %v", got)
	}
}

func TestTotalValueRounding(t *testing.T) {
	w := New()
	table := rates.Table{"btc": 33333.333, "eth": 0, "usdt": 0}

	// 0.042 * 33333.333 = 1399.999986 -> 1400.00
	if got := w.TotalValue(table); got != 1400.00 {
		t.Fatalf("expected rounded total 1400.00, got %v", got)
	}
}

func TestSendDebitsAndAppends(t *testing.T) {
	w := New()

	balance, err := w.Send(asset.BTC, 0.01, "addrX")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if balance != 0.032 {
		t.Fatalf("expected reported balance 0.032, got %v", balance)
	}
	if stored, _ := w.Balance(asset.BTC); stored != balance {
		t.Fatalf("reported balance %v disagrees with stored %v", balance, stored)
	}

	txs := w.Transactions()
	if len(txs) != 4 {
		t.Fatalf("expected 4 transactions after send, got %d", len(txs))
	}
	head := txs[0]
	if head.Type != TxSent || head.Asset != asset.BTC || head.Amount != 0.01 || head.Address != "addrX" {
		t.Fatalf("unexpected ledger head: %+v", head)
	}
}

func TestSendRejectsOverdraft(t *testing.T) {
	w := New()

	if _, err := w.Send(asset.BTC, 1.0, "addrX"); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	balance, _ := w.Balance(asset.BTC)
	if balance != 0.042 {
		t.Fatalf("balance changed on rejected send: %v", balance)
	}
	if got := len(w.Transactions()); got != 3 {
		t.Fatalf("ledger changed on rejected send: %d entries", got)
	}
}

func TestSendRejectsNonPositiveAmount(t *testing.T) {
	w := New()

	for _, amount := range []float64{0, -0.5} {
		if _, err := w.Send(asset.ETH, amount, "addrX"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestConcurrentSendsNeverOverdraw(t *testing.T) {
	w := New()
	// USDT 500 seeded; 20 workers trying to send 50 each can succeed at most 10 times.
	const workers = 20
	const amount = 50.0

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := w.Send(asset.USDT, amount, fmt.Sprintf("addr-%d", i)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	balance, _ := w.Balance(asset.USDT)
	if balance < 0 {
		t.Fatalf("balance went negative: %v", balance)
	}
	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successful sends, got %d", succeeded)
	}
	if got := len(w.Transactions()); got != 3+succeeded {
		t.Fatalf("expected %d ledger entries, got %d", 3+succeeded, got)
	}
}

func TestConcurrentSendsReportPostDebitBalance(t *testing.T) {
	w := New()
	// USDT 500 seeded; 10 workers sending 50 each all succeed, and each must
	// see the balance its own debit produced, not a later one.
	const workers = 10
	const amount = 50.0

	var wg sync.WaitGroup
	var mu sync.Mutex
	reported := make(map[float64]bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			balance, err := w.Send(asset.USDT, amount, fmt.Sprintf("addr-%d", i))
			if err != nil {
				t.Errorf("send %d: %v", i, err)
				return
			}
			mu.Lock()
			reported[balance] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if len(reported) != workers {
		t.Fatalf("expected %d distinct reported balances, got %d", workers, len(reported))
	}
	for i := 1; i <= workers; i++ {
		want := 500.0 - amount*float64(i)
		if !reported[want] {
			t.Fatalf("missing reported balance %v", want)
		}
	}
}

func TestRecordTransactionInsertsAtHead(t *testing.T) {
	w := New()

	w.RecordTransaction(TxReceived, asset.ETH, 0.25, "0xabc")
	head := w.Transactions()[0]
	if head.Type != TxReceived || head.Asset != asset.ETH || head.Amount != 0.25 {
		t.Fatalf("unexpected ledger head: %+v", head)
	}

	// the append primitive must not touch balances
	balance, _ := w.Balance(asset.ETH)
	if balance != 1.2 {
		t.Fatalf("RecordTransaction mutated balance: %v", balance)
	}
}

func TestCreditIncrementsAndAppends(t *testing.T) {
	w := New()

	if err := w.Credit(asset.BTC, 0.008, "1Sender..."); err != nil {
		t.Fatalf("credit: %v", err)
	}
	balance, _ := w.Balance(asset.BTC)
	if balance != 0.05 {
		t.Fatalf("expected balance 0.05, got %v", balance)
	}
	head := w.Transactions()[0]
	if head.Type != TxReceived || head.Amount != 0.008 {
		t.Fatalf("unexpected ledger head: %+v", head)
	}
}

func TestDepositAddressStablePerAsset(t *testing.T) {
	w := New()

	first, err := w.DepositAddress(asset.BTC)
	if err != nil {
		t.Fatalf("deposit address: %v", err)
	}
	second, err := w.DepositAddress(asset.BTC)
	if err != nil {
		t.Fatalf("deposit address: %v", err)
	}
	if first != second {
		t.Fatalf("address not stable: %s vs %s", first, second)
	}

	other, err := w.DepositAddress(asset.ETH)
	if err != nil {
		t.Fatalf("deposit address: %v", err)
	}
	if other == first {
		t.Fatal("expected distinct addresses per asset")
	}
}
