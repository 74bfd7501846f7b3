package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
)

// TransactionRepository defines ledger data operations
type TransactionRepository interface {
	Create(ctx context.Context, txn *entities.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*entities.Transaction, error)
	// UpdateStatus moves the row from one status to another, recording
	// completedAt when non-nil and merging metadata when non-nil. A row not
	// currently in from yields ErrInvalidState and stays untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TransactionStatus, completedAt *time.Time, metadata map[string]string) error
	List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error)
	CountByMerchantSince(ctx context.Context, merchantID uuid.UUID, since time.Time) (int64, error)
	SumByMerchantSince(ctx context.Context, merchantID uuid.UUID, since time.Time) (float64, error)
}

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
