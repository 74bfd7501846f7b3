package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/infrastructure/models"
)

// AgentRepository implements agent data operations
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create creates a new agent
func (r *AgentRepository) Create(ctx context.Context, agent *entities.Agent) error {
	m, err := agentToModel(agent)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	agent.ID = m.ID
	return nil
}

// GetByID gets an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	var m models.Agent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return agentToEntity(&m)
}

// GetByEmail gets an agent by email
func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*entities.Agent, error) {
	var m models.Agent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return agentToEntity(&m)
}

// ExistsByEmailOrPhone reports whether an agent already uses email or phone
func (r *AgentRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Agent{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateVersioned applies a compare-and-swap write of the agent's mutable
// state keyed on agent.Version
func (r *AgentRepository) UpdateVersioned(ctx context.Context, agent *entities.Agent) error {
	commission, err := json.Marshal(agent.CommissionRate)
	if err != nil {
		return err
	}
	performance, err := json.Marshal(agent.Performance)
	if err != nil {
		return err
	}
	liquidity, err := json.Marshal(agent.Liquidity)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ? AND version = ?", agent.ID, agent.Version).
		Updates(map[string]interface{}{
			"tier":        string(agent.Tier),
			"commission":  string(commission),
			"performance": string(performance),
			"balance":     agent.Balance,
			"liquidity":   string(liquidity),
			"is_active":   agent.IsActive,
			"version":     agent.Version + 1,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Agent{}).Where("id = ?", agent.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConcurrentUpdate
	}

	agent.Version++
	return nil
}

func agentToModel(a *entities.Agent) (*models.Agent, error) {
	commission, err := json.Marshal(a.CommissionRate)
	if err != nil {
		return nil, err
	}
	performance, err := json.Marshal(a.Performance)
	if err != nil {
		return nil, err
	}
	liquidity, err := json.Marshal(a.Liquidity)
	if err != nil {
		return nil, err
	}

	return &models.Agent{
		ID:           a.ID,
		AgentID:      a.AgentID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone,
		PasswordHash: a.PasswordHash,
		Tier:         string(a.Tier),
		Commission:   string(commission),
		Performance:  string(performance),
		Balance:      a.Balance,
		Liquidity:    string(liquidity),
		IsActive:     a.IsActive,
		Version:      a.Version,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}

func agentToEntity(m *models.Agent) (*entities.Agent, error) {
	var commission entities.CommissionRate
	if m.Commission != "" {
		if err := json.Unmarshal([]byte(m.Commission), &commission); err != nil {
			return nil, err
		}
	}
	var performance entities.AgentPerformance
	if m.Performance != "" {
		if err := json.Unmarshal([]byte(m.Performance), &performance); err != nil {
			return nil, err
		}
	}
	var liquidity entities.LiquidityStatus
	if m.Liquidity != "" {
		if err := json.Unmarshal([]byte(m.Liquidity), &liquidity); err != nil {
			return nil, err
		}
	}

	return &entities.Agent{
		ID:             m.ID,
		AgentID:        m.AgentID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		PasswordHash:   m.PasswordHash,
		Tier:           entities.AgentTier(m.Tier),
		CommissionRate: commission,
		Performance:    performance,
		Balance:        m.Balance,
		Liquidity:      liquidity,
		IsActive:       m.IsActive,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}
