package repositories

import (
	"context"

	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
)

// CustomerRepository defines customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entities.Customer, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	UpdateProfile(ctx context.Context, customer *entities.Customer) error
	// UpdateBalances writes new balance figures iff the stored row still has
	// expectedVersion, bumping the version. Returns ErrConcurrentUpdate on a
	// version mismatch, ErrNotFound on an unknown id.
	UpdateBalances(ctx context.Context, id uuid.UUID, balance, vaultBalance float64, expectedVersion int64) error
	AppendTransaction(ctx context.Context, id uuid.UUID, transactionID string) error
	ListByAgent(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.Customer, int64, error)
	CountByAgent(ctx context.Context, agentID uuid.UUID, activeOnly bool) (int64, error)
}
