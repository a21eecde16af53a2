// Package services holds the orchestration layer between HTTP handlers and
// storage. The ledger service is the ownership boundary: every operation is
// scoped to the verified user, and the owner of a new transaction is always
// the authenticated caller, never a value from the request payload.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

var (
	// ErrForbidden means the record exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound mirrors the storage sentinel for callers that only import
	// the service layer.
	ErrNotFound = storage.ErrNotFound
)

// CreateTransactionInput carries the caller-supplied fields of a new
// transaction. The owner is intentionally absent.
type CreateTransactionInput struct {
	Amount   core.Money
	Type     core.TransactionType
	Category string
	Date     core.Date
}

// LedgerService orchestrates transaction operations against storage and
// publishes lifecycle events when a broker is configured.
type LedgerService struct {
	storage *storage.SQLiteRepository
	events  *amqp.Client
}

func NewLedgerService(store *storage.SQLiteRepository, events *amqp.Client) *LedgerService {
	return &LedgerService{
		storage: store,
		events:  events,
	}
}

// CreateTransaction persists a new transaction owned by userID. Validation
// errors from the domain propagate unchanged so callers can map them.
func (s *LedgerService) CreateTransaction(ctx context.Context, userID int64, input CreateTransactionInput) (core.Transaction, error) {
	transaction := core.Transaction{
		UserID:   userID,
		Amount:   input.Amount,
		Type:     input.Type,
		Category: input.Category,
		Date:     input.Date,
	}

	stored, err := s.storage.InsertTransaction(ctx, transaction)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publishEvent(ctx, stored.ID, userID, amqp.ActionCreated)
	return stored, nil
}

// ListTransactions returns the caller's own transactions, most recent first.
func (s *LedgerService) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	transactions, err := s.storage.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction removes the caller's transaction. The ownership check
// happens here, before the store-level delete: a record owned by another
// user yields ErrForbidden and is left untouched.
func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	existing, err := s.storage.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		slog.WarnContext(ctx, "Delete refused: transaction owned by another user",
			"transaction_id", transactionID,
			"user_id", userID,
			"owner_id", existing.UserID)
		return ErrForbidden
	}

	// a concurrent delete of the same id loses here with ErrNotFound
	if err := s.storage.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	s.publishEvent(ctx, transactionID, userID, amqp.ActionDeleted)
	return nil
}

func (s *LedgerService) publishEvent(ctx context.Context, transactionID, userID int64, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, transactionID, userID, action); err != nil {
		// events are best-effort; the ledger operation already succeeded
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", transactionID,
			"action", action,
			"error", err)
	}
}

// Close releases storage and broker connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
