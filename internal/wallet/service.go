package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinfolio/coinfolio/internal/asset"
	"github.com/coinfolio/coinfolio/internal/notification"
	"github.com/coinfolio/coinfolio/internal/rates"
)

// ErrUnauthenticated occurs when an operation arrives without a user id.
var ErrUnauthenticated = errors.New("authentication required")

// Service orchestrates user-facing wallet operations against the store and
// the rate provider.
type Service struct {
	store    Store
	rates    rates.Provider
	notifier notification.Notifier
}

// NewService builds a wallet service instance.
func NewService(store Store, provider rates.Provider, notifier notification.Notifier) *Service {
	return &Service{store: store, rates: provider, notifier: notifier}
}

// Dashboard aggregates everything the dashboard view renders: holdings,
// ledger, current rates and the total valuation. No mutation.
type Dashboard struct {
	Holdings     map[asset.Symbol]Holding
	Transactions []Transaction
	Rates        rates.Table
	TotalValue   float64
}

// Dashboard fetches the user's wallet and values it against the latest
// rate table. The rate fetch never fails (fallback policy), so neither does
// valuation.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	if userID == "" {
		return Dashboard{}, ErrUnauthenticated
	}

	w := s.store.GetOrCreate(ctx, userID)
	table := s.rates.Current(ctx)

	return Dashboard{
		Holdings:     w.Holdings(),
		Transactions: w.Transactions(),
		Rates:        table,
		TotalValue:   w.TotalValue(table),
	}, nil
}

// SendInput captures a requested outgoing transfer.
type SendInput struct {
	Asset   string
	Amount  float64
	Address string
}

// SendResult carries the confirmation for a successful send.
type SendResult struct {
	Asset   asset.Symbol
	Amount  float64
	Balance float64
	Message string
}

// Send validates and applies an outgoing transfer. Failures come back as
// sentinel errors (ErrUnknownAsset, ErrInvalidAmount, ErrInsufficientBalance)
// for the handler to render as a rejected operation.
func (s *Service) Send(ctx context.Context, userID string, input SendInput) (SendResult, error) {
	if userID == "" {
		return SendResult{}, ErrUnauthenticated
	}
	sym, ok := asset.Parse(input.Asset)
	if !ok {
		return SendResult{}, ErrUnknownAsset
	}

	w := s.store.GetOrCreate(ctx, userID)
	balance, err := w.Send(sym, input.Amount, input.Address)
	if err != nil {
		return SendResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWalletSend,
			Destination: userID,
			Body:        fmt.Sprintf("Sent %g %s to %s", input.Amount, sym, input.Address),
		})
	}

	return SendResult{
		Asset:   sym,
		Amount:  input.Amount,
		Balance: balance,
		Message: fmt.Sprintf("Sent %g %s to %s", input.Amount, sym, input.Address),
	}, nil
}

// Receive validates the asset and returns the wallet's deposit address for
// it. The ledger is not touched: a received entry is only recorded when an
// external confirmation credits the wallet (see Service.Confirm).
func (s *Service) Receive(ctx context.Context, userID, assetName string) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	sym, ok := asset.Parse(assetName)
	if !ok {
		return "", ErrUnknownAsset
	}

	w := s.store.GetOrCreate(ctx, userID)
	return w.DepositAddress(sym)
}

// Confirm credits the wallet for an externally confirmed inbound transfer
// and records the matching received entry.
func (s *Service) Confirm(ctx context.Context, userID, assetName string, amount float64, fromAddress string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	sym, ok := asset.Parse(assetName)
	if !ok {
		return ErrUnknownAsset
	}

	w := s.store.GetOrCreate(ctx, userID)
	return w.Credit(sym, amount, fromAddress)
}
