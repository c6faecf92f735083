package wallet

import (
	"context"
	"sync"
)

// Store maps user identifiers to their wallet. Exactly one wallet instance
// exists per user for the process lifetime: repeated lookups return the same
// instance, so mutations are visible across calls.
type Store interface {
	GetOrCreate(ctx context.Context, userID string) *Wallet
}

type memoryStore struct {
	mu      sync.RWMutex
	wallets map[string]*Wallet
}

// NewMemoryStore constructs the in-memory wallet store. There is no durable
// backend in this design; all wallets are lost on process restart.
func NewMemoryStore() Store {
	return &memoryStore{wallets: make(map[string]*Wallet)}
}

func (s *memoryStore) GetOrCreate(_ context.Context, userID string) *Wallet {
	s.mu.RLock()
	w, ok := s.wallets[userID]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wallets[userID]; ok {
		return w
	}
	w = New()
	s.wallets[userID] = w
	return w
}
