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

// MerchantUsecase handles merchant account flows and credit scoring
type MerchantUsecase struct {
	merchantRepo repositories.MerchantRepository
	txnRepo      repositories.TransactionRepository
	jwtService   *jwt.JWTService
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(
	merchantRepo repositories.MerchantRepository,
	txnRepo repositories.TransactionRepository,
	jwtService *jwt.JWTService,
) *MerchantUsecase {
	return &MerchantUsecase{
		merchantRepo: merchantRepo,
		txnRepo:      txnRepo,
		jwtService:   jwtService,
	}
}

// Register creates a merchant account
func (u *MerchantUsecase) Register(ctx context.Context, input *entities.RegisterMerchantInput) (*entities.Merchant, *jwt.TokenPair, error) {
	exists, err := u.merchantRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
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
	merchant := &entities.Merchant{
		ID:           utils.GenerateUUIDv7(),
		MerchantID:   utils.NewMerchantID(),
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		OwnerName:    input.OwnerName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(merchant.ID, merchant.Email, RoleMerchant)
	if err != nil {
		return nil, nil, err
	}
	return merchant, tokens, nil
}

// Login authenticates a merchant by email and password
func (u *MerchantUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.Merchant, *jwt.TokenPair, error) {
	merchant, err := u.merchantRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !crypto.CheckPassword(input.Password, merchant.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !merchant.IsActive {
		return nil, nil, domainerrors.ErrAccountInactive
	}

	tokens, err := u.jwtService.GenerateTokenPair(merchant.ID, merchant.Email, RoleMerchant)
	if err != nil {
		return nil, nil, err
	}
	return merchant, tokens, nil
}

// GetProfile fetches a merchant by id
func (u *MerchantUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	return u.merchantRepo.GetByID(ctx, id)
}

// Dashboard assembles merchant info, today's sales and lifetime aggregates
func (u *MerchantUsecase) Dashboard(ctx context.Context, id uuid.UUID) (*entities.MerchantDashboard, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayCount, err := u.txnRepo.CountByMerchantSince(ctx, id, midnight)
	if err != nil {
		return nil, err
	}
	todaySales, err := u.txnRepo.SumByMerchantSince(ctx, id, midnight)
	if err != nil {
		return nil, err
	}

	dashboard := &entities.MerchantDashboard{SalesAnalytics: merchant.SalesAnalytics}
	dashboard.MerchantInfo.BusinessName = merchant.BusinessName
	dashboard.MerchantInfo.MerchantID = merchant.MerchantID
	dashboard.MerchantInfo.Balance = merchant.Balance
	dashboard.MerchantInfo.CreditScore = merchant.CreditScore
	dashboard.MerchantInfo.CreditLimit = merchant.CreditLimit
	dashboard.TodayStats.Transactions = todayCount
	dashboard.TodayStats.Sales = todaySales
	dashboard.OverallStats.TotalSales = merchant.TotalSales
	dashboard.OverallStats.TotalTransactions = merchant.TotalTransactions
	return dashboard, nil
}

// RecomputeCreditScore rescoring from the stored rolling aggregates
func (u *MerchantUsecase) RecomputeCreditScore(ctx context.Context, id uuid.UUID) (*entities.CreditScoreResult, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	score := ComputeCreditScore(merchant.SalesAnalytics, merchant.TotalTransactions)
	limit := CreditLimitFor(score)

	if err := u.merchantRepo.UpdateCredit(ctx, id, score, limit); err != nil {
		return nil, err
	}
	return &entities.CreditScoreResult{CreditScore: score, CreditLimit: limit}, nil
}

// Transactions lists the merchant's ledger entries
func (u *MerchantUsecase) Transactions(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	txns, total, err := u.txnRepo.List(ctx, entities.TransactionFilter{MerchantID: &id}, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return txns, utils.CalculateMeta(total, params.Page, params.Limit), nil
}
