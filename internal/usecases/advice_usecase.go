package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/domain/repositories"
	"fingerpay.backend/pkg/logger"
	"fingerpay.backend/pkg/redis"
)

// AdviceProvider generates advisory text for a templated prompt. Stateless:
// pure request/response.
type AdviceProvider interface {
	GenerateAdvice(ctx context.Context, prompt string) (string, error)
}

// AdviceResult is the payload returned by every advice endpoint
type AdviceResult struct {
	Advice    string    `json:"advice"`
	Cached    bool      `json:"cached"`
	Generated time.Time `json:"generatedAt"`
}

// AdviceUsecase templates prompts from account state and proxies them to the
// configured provider, caching responses briefly.
type AdviceUsecase struct {
	provider     AdviceProvider
	customerRepo repositories.CustomerRepository
	merchantRepo repositories.MerchantRepository
	agentRepo    repositories.AgentRepository
	cacheTTL     time.Duration
}

// NewAdviceUsecase creates a new advice usecase
func NewAdviceUsecase(
	provider AdviceProvider,
	customerRepo repositories.CustomerRepository,
	merchantRepo repositories.MerchantRepository,
	agentRepo repositories.AgentRepository,
	cacheTTL time.Duration,
) *AdviceUsecase {
	return &AdviceUsecase{
		provider:     provider,
		customerRepo: customerRepo,
		merchantRepo: merchantRepo,
		agentRepo:    agentRepo,
		cacheTTL:     cacheTTL,
	}
}

// BudgetAnalysis advises a customer on their spending plan
func (u *AdviceUsecase) BudgetAnalysis(ctx context.Context, customerID uuid.UUID) (*AdviceResult, error) {
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"You are FinCoach, a personal finance assistant. A customer has a spendable balance of %.2f NGN, a savings vault of %.2f NGN and a monthly budget of %.2f NGN. Give three short, practical budgeting tips.",
		customer.Balance, customer.VaultBalance, customer.MonthlyBudget,
	)
	return u.advise(ctx, "fincoach:budget:"+customerID.String(), prompt)
}

// OverspendingCheck flags a customer likely to exceed their monthly budget
func (u *AdviceUsecase) OverspendingCheck(ctx context.Context, customerID uuid.UUID) (*AdviceResult, error) {
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"You are FinCoach. A customer with monthly budget %.2f NGN currently holds %.2f NGN. In two sentences, say whether their spending pace looks risky and what to do about it.",
		customer.MonthlyBudget, customer.Balance,
	)
	return u.advise(ctx, "fincoach:overspend:"+customerID.String(), prompt)
}

// VaultSuggestion recommends a vault savings amount
func (u *AdviceUsecase) VaultSuggestion(ctx context.Context, customerID uuid.UUID) (*AdviceResult, error) {
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"You are FinCoach. A customer holds %.2f NGN spendable and %.2f NGN in their savings vault. Suggest a single vault deposit amount and a one-line reason.",
		customer.Balance, customer.VaultBalance,
	)
	return u.advise(ctx, "fincoach:vault:"+customerID.String(), prompt)
}

// LoanEligibility summarizes a merchant's credit standing
func (u *AdviceUsecase) LoanEligibility(ctx context.Context, merchantID uuid.UUID) (*AdviceResult, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"You are Credit AI. A merchant has credit score %d of 100, credit limit %.2f NGN, lifetime sales %.2f NGN over %d transactions. In three sentences, assess their loan eligibility and how to improve it.",
		merchant.CreditScore, merchant.CreditLimit, merchant.TotalSales, merchant.TotalTransactions,
	)
	return u.advise(ctx, "creditai:loan:"+merchantID.String(), prompt)
}

// LiquidityPrediction forecasts an agent's cash demand
func (u *AdviceUsecase) LiquidityPrediction(ctx context.Context, agentID uuid.UUID) (*AdviceResult, error) {
	agent, err := u.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		"You are FinAgent. A field agent holds %.2f NGN cash on hand and earned %.2f NGN commission this month across %d registrations. Predict their float demand for the coming week in two sentences.",
		agent.Liquidity.CashOnHand, agent.Performance.MonthlyEarnings, agent.Performance.MonthlyRegistrations,
	)
	return u.advise(ctx, "finagent:liquidity:"+agentID.String(), prompt)
}

func (u *AdviceUsecase) advise(ctx context.Context, cacheKey, prompt string) (*AdviceResult, error) {
	if redis.GetClient() != nil {
		var cached AdviceResult
		err := redis.GetJSON(ctx, "advice:"+cacheKey, &cached)
		if err == nil {
			cached.Cached = true
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logger.Warn(ctx, "advice cache read failed", zap.Error(err))
		}
	}

	advice, err := u.provider.GenerateAdvice(ctx, prompt)
	if err != nil {
		return nil, domainerrors.NewAppError(502, "advice provider unavailable", err)
	}

	result := &AdviceResult{Advice: advice, Generated: time.Now()}
	if redis.GetClient() != nil {
		if err := redis.SetJSON(ctx, "advice:"+cacheKey, result, u.cacheTTL); err != nil {
			logger.Warn(ctx, "advice cache write failed", zap.Error(err))
		}
	}
	return result, nil
}
