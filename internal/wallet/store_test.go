package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/coinfolio/coinfolio/internal/asset"
)

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := store.GetOrCreate(ctx, "alice@example.com")
	second := store.GetOrCreate(ctx, "alice@example.com")
	if first != second {
		t.Fatal("expected identical wallet instance across lookups")
	}

	// mutations through one reference are visible through the other
	if _, err := first.Send(asset.USDT, 100, "addrX"); err != nil {
		t.Fatalf("send: %v", err)
	}
	balance, _ := second.Balance(asset.USDT)
	if balance != 400.0 {
		t.Fatalf("expected balance 400 via second reference, got %v", balance)
	}
}

func TestGetOrCreateIsolatesUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	alice := store.GetOrCreate(ctx, "alice@example.com")
	bob := store.GetOrCreate(ctx, "bob@example.com")
	if alice == bob {
		t.Fatal("expected distinct wallets for distinct users")
	}

	if _, err := alice.Send(asset.ETH, 1.0, "addrX"); err != nil {
		t.Fatalf("send: %v", err)
	}
	balance, _ := bob.Balance(asset.ETH)
	if balance != 1.2 {
		t.Fatalf("bob's wallet affected by alice's send: %v", balance)
	}
}

func TestGetOrCreateSeedsOnlyOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := store.GetOrCreate(ctx, "alice@example.com")
	if _, err := w.Send(asset.BTC, 0.01, "addrX"); err != nil {
		t.Fatalf("send: %v", err)
	}

	again := store.GetOrCreate(ctx, "alice@example.com")
	if got := len(again.Transactions()); got != 4 {
		t.Fatalf("expected 4 transactions after re-lookup, got %d (wallet re-seeded?)", got)
	}
}

func TestGetOrCreateConcurrentFirstAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const workers = 16
	wallets := make([]*Wallet, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wallets[i] = store.GetOrCreate(ctx, "alice@example.com")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if wallets[i] != wallets[0] {
			t.Fatal("concurrent first access produced multiple wallet instances")
		}
	}
}
