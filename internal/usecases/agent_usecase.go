package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/domain/repositories"
	"fingerpay.backend/pkg/crypto"
	"fingerpay.backend/pkg/jwt"
	"fingerpay.backend/pkg/utils"
)

// AgentUsecase handles field-agent account flows, tiering and liquidity
type AgentUsecase struct {
	agentRepo    repositories.AgentRepository
	customerRepo repositories.CustomerRepository
	jwtService   *jwt.JWTService
}

// NewAgentUsecase creates a new agent usecase
func NewAgentUsecase(
	agentRepo repositories.AgentRepository,
	customerRepo repositories.CustomerRepository,
	jwtService *jwt.JWTService,
) *AgentUsecase {
	return &AgentUsecase{
		agentRepo:    agentRepo,
		customerRepo: customerRepo,
		jwtService:   jwtService,
	}
}

// Register creates an agent account at the base tier
func (u *AgentUsecase) Register(ctx context.Context, input *entities.RegisterAgentInput) (*entities.Agent, *jwt.TokenPair, error) {
	exists, err := u.agentRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, domainerrors.ErrAlreadyExists
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	agent := &entities.Agent{
		ID:             utils.GenerateUUIDv7(),
		AgentID:        utils.NewAgentID(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   passwordHash,
		Tier:           entities.AgentTier1,
		CommissionRate: CommissionRateFor(entities.AgentTier1),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.agentRepo.Create(ctx, agent); err != nil {
		return nil, nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(agent.ID, agent.Email, RoleAgent)
	if err != nil {
		return nil, nil, err
	}
	return agent, tokens, nil
}

// Login authenticates an agent by email and password
func (u *AgentUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.Agent, *jwt.TokenPair, error) {
	agent, err := u.agentRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !crypto.CheckPassword(input.Password, agent.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !agent.IsActive {
		return nil, nil, domainerrors.ErrAccountInactive
	}

	tokens, err := u.jwtService.GenerateTokenPair(agent.ID, agent.Email, RoleAgent)
	if err != nil {
		return nil, nil, err
	}
	return agent, tokens, nil
}

// GetProfile fetches an agent by id
func (u *AgentUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Agent, error) {
	return u.agentRepo.GetByID(ctx, id)
}

// Dashboard assembles agent info, performance and customer counts. The tier
// is re-evaluated on read; a drifted tier is persisted before returning.
func (u *AgentUsecase) Dashboard(ctx context.Context, id uuid.UUID) (*entities.AgentDashboard, error) {
	agent, err := u.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if newTier := TierFor(agent.Performance.TotalRegistrations); newTier != agent.Tier {
		agent.Tier = newTier
		agent.CommissionRate = CommissionRateFor(newTier)
		if err := u.agentRepo.UpdateVersioned(ctx, agent); err != nil {
			return nil, err
		}
	}

	total, err := u.customerRepo.CountByAgent(ctx, id, false)
	if err != nil {
		return nil, err
	}
	active, err := u.customerRepo.CountByAgent(ctx, id, true)
	if err != nil {
		return nil, err
	}

	dashboard := &entities.AgentDashboard{
		Performance: agent.Performance,
		Liquidity:   agent.Liquidity,
	}
	dashboard.AgentInfo.Name = agent.FirstName + " " + agent.LastName
	dashboard.AgentInfo.AgentID = agent.AgentID
	dashboard.AgentInfo.Level = agent.Tier
	dashboard.AgentInfo.Balance = agent.Balance
	dashboard.Customers.Total = total
	dashboard.Customers.Active = active
	return dashboard, nil
}

// Customers lists the customers this agent enrolled
func (u *AgentUsecase) Customers(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Customer, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	customers, total, err := u.customerRepo.ListByAgent(ctx, id, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return customers, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// UpdateLiquidity records the agent's declared cash position
func (u *AgentUsecase) UpdateLiquidity(ctx context.Context, id uuid.UUID, cashOnHand float64) (*entities.LiquidityStatus, error) {
	if cashOnHand < 0 {
		return nil, domainerrors.BadRequest("cash on hand cannot be negative")
	}

	agent, err := u.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agent.Liquidity.CashOnHand = cashOnHand
	agent.Liquidity.LastUpdated = time.Now()
	if err := u.agentRepo.UpdateVersioned(ctx, agent); err != nil {
		return nil, err
	}
	return &agent.Liquidity, nil
}
