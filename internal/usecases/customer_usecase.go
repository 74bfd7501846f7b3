package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/domain/repositories"
	"fingerpay.backend/pkg/crypto"
	"fingerpay.backend/pkg/jwt"
	"fingerpay.backend/pkg/logger"
	"fingerpay.backend/pkg/utils"
)

// Role names carried in JWT claims
const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
	RoleAgent    = "agent"
)

// CustomerUsecase handles customer account flows. Vault movements go
// through the transaction engine so the ledger stays authoritative.
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
	agentRepo    repositories.AgentRepository
	txnUsecase   *TransactionUsecase
	uow          repositories.UnitOfWork
	jwtService   *jwt.JWTService
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(
	customerRepo repositories.CustomerRepository,
	agentRepo repositories.AgentRepository,
	txnUsecase *TransactionUsecase,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
		txnUsecase:   txnUsecase,
		uow:          uow,
		jwtService:   jwtService,
	}
}

// Register creates a password-based customer account. Registration does not
// enroll biometrics; that is the agent-assisted Enroll flow.
func (u *CustomerUsecase) Register(ctx context.Context, input *entities.RegisterCustomerInput) (*entities.Customer, *jwt.TokenPair, error) {
	exists, err := u.customerRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
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
	customer := &entities.Customer{
		ID:             utils.GenerateUUIDv7(),
		CustomerID:     utils.NewCustomerID(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   passwordHash,
		IsActive:       true,
		EnrollmentDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.customerRepo.Create(ctx, customer); err != nil {
		return nil, nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(customer.ID, customer.Email, RoleCustomer)
	if err != nil {
		return nil, nil, err
	}
	return customer, tokens, nil
}

// Login authenticates a customer by email and password
func (u *CustomerUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.Customer, *jwt.TokenPair, error) {
	customer, err := u.customerRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !crypto.CheckPassword(input.Password, customer.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}
	if !customer.IsActive {
		return nil, nil, domainerrors.ErrAccountInactive
	}

	tokens, err := u.jwtService.GenerateTokenPair(customer.ID, customer.Email, RoleCustomer)
	if err != nil {
		return nil, nil, err
	}
	return customer, tokens, nil
}

// Enroll creates a biometric-enrolled customer on behalf of an agent and
// credits the agent's registration commission. The agent earns the fee at
// their tier going into this enrollment; a tier crossed here pays out from
// the next enrollment on.
func (u *CustomerUsecase) Enroll(ctx context.Context, agentID uuid.UUID, input *entities.EnrollCustomerInput) (*entities.Customer, error) {
	exists, err := u.customerRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrAlreadyExists
	}

	mappings := make([]entities.FingerMapping, 0, len(input.FingerMapping))
	seen := map[entities.FingerName]bool{}
	for _, m := range input.FingerMapping {
		finger := entities.FingerName(m.FingerName)
		if !finger.IsValid() {
			return nil, domainerrors.BadRequest("unrecognized finger slot")
		}
		if seen[finger] {
			return nil, domainerrors.BadRequest("duplicate finger slot")
		}
		seen[finger] = true
		mappings = append(mappings, entities.FingerMapping{
			FingerName:    finger,
			BankName:      m.BankName,
			AccountNumber: m.AccountNumber,
			FingerHash:    crypto.HashBiometric(m.FingerData),
			IsPanicFinger: m.IsPanicFinger,
			IsVaultFinger: m.IsVaultFinger,
		})
	}

	now := time.Now()
	customer := &entities.Customer{
		ID:              utils.GenerateUUIDv7(),
		CustomerID:      utils.NewCustomerID(),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Phone:           input.Phone,
		FingerprintHash: crypto.HashBiometric(input.FingerID),
		FingerMappings:  mappings,
		IsActive:        true,
		IsVerified:      true,
		EnrolledByID:    &agentID,
		EnrollmentDate:  now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.customerRepo.Create(ctx, customer); err != nil {
			return err
		}
		return u.creditEnrollment(ctx, agentID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer enrolled",
		zap.String("customer_id", customer.CustomerID),
		zap.String("agent_id", agentID.String()),
	)
	return customer, nil
}

// creditEnrollment pays the agent's registration fee and re-evaluates their
// tier. Ordering matters: the fee is credited before the tier check.
func (u *CustomerUsecase) creditEnrollment(ctx context.Context, agentID uuid.UUID) error {
	agent, err := u.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return err
	}

	fee := agent.CommissionRate.RegistrationFee
	agent.Balance += fee
	agent.Performance.TotalRegistrations++
	agent.Performance.MonthlyRegistrations++
	agent.Performance.WeeklyRegistrations++
	agent.Performance.TotalEarnings += fee
	agent.Performance.MonthlyEarnings += fee

	if newTier := TierFor(agent.Performance.TotalRegistrations); newTier != agent.Tier {
		agent.Tier = newTier
		agent.CommissionRate = CommissionRateFor(newTier)
	}

	return u.agentRepo.UpdateVersioned(ctx, agent)
}

// GetProfile fetches a customer by id
func (u *CustomerUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return u.customerRepo.GetByID(ctx, id)
}

// UpdateProfile applies the permitted profile fields. Balance and biometric
// fields are not reachable from here.
func (u *CustomerUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		customer.FirstName = input.FirstName
	}
	if input.LastName != "" {
		customer.LastName = input.LastName
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.MonthlyBudget > 0 {
		customer.MonthlyBudget = input.MonthlyBudget
	}

	if err := u.customerRepo.UpdateProfile(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// AddFingerMapping assigns a bank account to a free finger slot. A slot
// already holding a mapping is rejected; re-mapping means removing first.
func (u *CustomerUsecase) AddFingerMapping(ctx context.Context, id uuid.UUID, input *entities.FingerMappingInput) ([]entities.FingerMapping, error) {
	finger := entities.FingerName(input.FingerName)
	if !finger.IsValid() {
		return nil, domainerrors.BadRequest("unrecognized finger slot")
	}
	if input.FingerData == "" {
		return nil, domainerrors.BadRequest("finger data is required")
	}

	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.MappingFor(finger) != nil {
		return nil, domainerrors.BadRequest("finger slot is already mapped")
	}

	customer.FingerMappings = append(customer.FingerMappings, entities.FingerMapping{
		FingerName:    finger,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		FingerHash:    crypto.HashBiometric(input.FingerData),
		IsPanicFinger: input.IsPanicFinger,
		IsVaultFinger: input.IsVaultFinger,
	})
	if err := u.customerRepo.UpdateProfile(ctx, customer); err != nil {
		return nil, err
	}

	logger.Info(ctx, "finger mapping added",
		zap.String("customer_id", customer.CustomerID),
		zap.String("finger", string(finger)),
	)
	return customer.FingerMappings, nil
}

// VerifyBiometric checks a capture against the customer's enrolled prints.
// The main enrollment print is tried first; a FingerName in the input then
// tries that mapped slot. A capture matching neither fails verification.
func (u *CustomerUsecase) VerifyBiometric(ctx context.Context, id uuid.UUID, input *entities.VerifyBiometricInput) (*entities.BiometricVerification, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if customer.FingerprintHash != "" && crypto.VerifyBiometric(input.FingerID, customer.FingerprintHash) {
		return &entities.BiometricVerification{
			Verified: true,
			Customer: customer.Summary(),
		}, nil
	}

	if input.FingerName != "" {
		finger := entities.FingerName(input.FingerName)
		if !finger.IsValid() {
			return nil, domainerrors.BadRequest("unrecognized finger slot")
		}
		if mapping := customer.MappingFor(finger); mapping != nil && crypto.VerifyBiometric(input.FingerID, mapping.FingerHash) {
			return &entities.BiometricVerification{
				Verified:      true,
				Customer:      customer.Summary(),
				FingerDetails: mapping,
			}, nil
		}
	}

	return nil, domainerrors.ErrBiometricFailed
}

// AddFunds credits the spendable balance (cash-in at an agent or bank ref)
func (u *CustomerUsecase) AddFunds(ctx context.Context, id uuid.UUID, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domainerrors.BadRequest("amount must be greater than zero")
	}

	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	newBalance := customer.Balance + amount
	if err := u.customerRepo.UpdateBalances(ctx, id, newBalance, customer.VaultBalance, customer.Version); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// VaultDeposit moves spendable funds into the vault through the ledger
func (u *CustomerUsecase) VaultDeposit(ctx context.Context, id uuid.UUID, amount float64) (*entities.CompleteTransactionResult, error) {
	return u.vaultMove(ctx, id, amount, entities.TransactionTypeVaultDeposit)
}

// VaultWithdraw moves vault funds back to the spendable balance
func (u *CustomerUsecase) VaultWithdraw(ctx context.Context, id uuid.UUID, amount float64) (*entities.CompleteTransactionResult, error) {
	return u.vaultMove(ctx, id, amount, entities.TransactionTypeVaultWithdrawal)
}

func (u *CustomerUsecase) vaultMove(ctx context.Context, id uuid.UUID, amount float64, txnType entities.TransactionType) (*entities.CompleteTransactionResult, error) {
	initiated, err := u.txnUsecase.Initiate(ctx, &entities.InitiateTransactionInput{
		CustomerID:      id.String(),
		TransactionType: string(txnType),
		Amount:          amount,
	})
	if err != nil {
		return nil, err
	}
	return u.txnUsecase.Complete(ctx, initiated.Transaction.TransactionID)
}

// TransactionHistory lists the customer's ledger entries
func (u *CustomerUsecase) TransactionHistory(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
	return u.txnUsecase.List(ctx, entities.TransactionFilter{CustomerID: &id}, page, limit)
}
