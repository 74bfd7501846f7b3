package repositories

import (
	"context"

	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
)

// AgentRepository defines agent data operations
type AgentRepository interface {
	Create(ctx context.Context, agent *entities.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error)
	GetByEmail(ctx context.Context, email string) (*entities.Agent, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	// UpdateVersioned persists tier, commission, performance counters,
	// balance and liquidity iff the stored row still has agent.Version.
	// Returns ErrConcurrentUpdate on a version mismatch.
	UpdateVersioned(ctx context.Context, agent *entities.Agent) error
}
