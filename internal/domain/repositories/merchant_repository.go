package repositories

import (
	"context"

	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*entities.Merchant, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	// UpdateFinancials writes balance, sales counters and analytics iff the
	// stored row still has expectedVersion. Returns ErrConcurrentUpdate on a
	// version mismatch.
	UpdateFinancials(ctx context.Context, id uuid.UUID, balance, totalSales float64, totalTransactions int64, analytics entities.SalesAnalytics, expectedVersion int64) error
	UpdateCredit(ctx context.Context, id uuid.UUID, creditScore int, creditLimit float64) error
}
