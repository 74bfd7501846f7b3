package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/usecases"
	"fingerpay.backend/pkg/crypto"
	"fingerpay.backend/pkg/jwt"
)

type customerFixture struct {
	customerRepo *MockCustomerRepository
	agentRepo    *MockAgentRepository
	txnRepo      *MockTransactionRepository
	merchantRepo *MockMerchantRepository
	uow          *MockUnitOfWork
	uc           *usecases.CustomerUsecase
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		customerRepo: new(MockCustomerRepository),
		agentRepo:    new(MockAgentRepository),
		txnRepo:      new(MockTransactionRepository),
		merchantRepo: new(MockMerchantRepository),
		uow:          new(MockUnitOfWork),
	}
	txnUC := usecases.NewTransactionUsecase(f.txnRepo, f.customerRepo, f.merchantRepo, f.agentRepo, f.uow, 0.5)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	f.uc = usecases.NewCustomerUsecase(f.customerRepo, f.agentRepo, txnUC, f.uow, jwtService)
	return f
}

func TestCustomerUsecase_Register(t *testing.T) {
	f := newCustomerFixture()

	f.customerRepo.On("ExistsByEmailOrPhone", mock.Anything, "ada@example.com", "08011111111").Return(false, nil).Once()
	f.customerRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Customer")).Return(nil).Once()

	customer, tokens, err := f.uc.Register(context.Background(), &entities.RegisterCustomerInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "ada@example.com",
		Phone:     "08011111111",
		Password:  "password123",
	})
	assert.NoError(t, err)
	assert.True(t, customer.IsActive)
	assert.NotEmpty(t, customer.CustomerID)
	assert.True(t, crypto.CheckPassword("password123", customer.PasswordHash))
	assert.NotEmpty(t, tokens.AccessToken)
	f.customerRepo.AssertExpectations(t)
}

func TestCustomerUsecase_Register_Duplicate(t *testing.T) {
	f := newCustomerFixture()

	f.customerRepo.On("ExistsByEmailOrPhone", mock.Anything, "ada@example.com", "08011111111").Return(true, nil).Once()

	_, _, err := f.uc.Register(context.Background(), &entities.RegisterCustomerInput{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "ada@example.com",
		Phone:     "08011111111",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	f.customerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerUsecase_Login(t *testing.T) {
	f := newCustomerFixture()
	hash, err := crypto.HashPassword("password123")
	assert.NoError(t, err)
	customer := activeCustomer(0, 0)
	customer.Email = "ada@example.com"
	customer.PasswordHash = hash

	f.customerRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(customer, nil)

	_, tokens, err := f.uc.Login(context.Background(), &entities.LoginInput{
		Email:    "ada@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, _, err = f.uc.Login(context.Background(), &entities.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCustomerUsecase_Login_UnknownEmail(t *testing.T) {
	f := newCustomerFixture()
	f.customerRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, _, err := f.uc.Login(context.Background(), &entities.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestCustomerUsecase_Login_InactiveAccount(t *testing.T) {
	f := newCustomerFixture()
	hash, _ := crypto.HashPassword("password123")
	customer := activeCustomer(0, 0)
	customer.Email = "ada@example.com"
	customer.PasswordHash = hash
	customer.IsActive = false

	f.customerRepo.On("GetByEmail", mock.Anything, customer.Email).Return(customer, nil).Once()

	_, _, err := f.uc.Login(context.Background(), &entities.LoginInput{
		Email:    customer.Email,
		Password: "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
}

// Enrollment pays the agent's registration fee at the tier going in; a tier
// crossed by this very registration changes the rate for the next one only.
func TestCustomerUsecase_Enroll_CreditsAgentBeforeTierChange(t *testing.T) {
	f := newCustomerFixture()
	agent := &entities.Agent{
		ID:             uuid.New(),
		AgentID:        "AG100",
		Tier:           entities.AgentTier1,
		CommissionRate: entities.CommissionRate{RegistrationFee: 500, TransactionPercentage: 0.5},
		Balance:        1000,
		IsActive:       true,
	}
	agent.Performance.TotalRegistrations = 99

	f.customerRepo.On("ExistsByEmailOrPhone", mock.Anything, "chi@example.com", "08022222222").Return(false, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.customerRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Customer")).Return(nil).Once()
	f.agentRepo.On("GetByID", mock.Anything, agent.ID).Return(agent, nil).Once()

	var updated *entities.Agent
	f.agentRepo.On("UpdateVersioned", mock.Anything, mock.AnythingOfType("*entities.Agent")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*entities.Agent)
		}).Return(nil).Once()

	customer, err := f.uc.Enroll(context.Background(), agent.ID, &entities.EnrollCustomerInput{
		FirstName: "Chidi",
		LastName:  "Eze",
		Email:     "chi@example.com",
		Phone:     "08022222222",
		FingerID:  "capture-blob",
		FingerMapping: []entities.FingerMappingInput{
			{FingerName: "right_thumb", BankName: "GTB", AccountNumber: "0123456789", FingerData: "thumb-blob"},
			{FingerName: "left_pinky", IsPanicFinger: true},
		},
	})
	assert.NoError(t, err)
	assert.True(t, customer.IsVerified)
	assert.Equal(t, &agent.ID, customer.EnrolledByID)
	assert.Equal(t, crypto.HashBiometric("capture-blob"), customer.FingerprintHash)
	assert.Len(t, customer.FingerMappings, 2)
	assert.Equal(t, crypto.HashBiometric("thumb-blob"), customer.FingerMappings[0].FingerHash)
	assert.True(t, customer.FingerMappings[1].IsPanicFinger)

	// fee credited at the old tier 1 rate, tier bumped afterwards
	assert.Equal(t, 1500.0, updated.Balance)
	assert.Equal(t, int64(100), updated.Performance.TotalRegistrations)
	assert.Equal(t, 500.0, updated.Performance.TotalEarnings)
	assert.Equal(t, entities.AgentTier2, updated.Tier)
	assert.Equal(t, 600.0, updated.CommissionRate.RegistrationFee)
}

func TestCustomerUsecase_Enroll_RejectsDuplicateSlot(t *testing.T) {
	f := newCustomerFixture()
	f.customerRepo.On("ExistsByEmailOrPhone", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()

	_, err := f.uc.Enroll(context.Background(), uuid.New(), &entities.EnrollCustomerInput{
		FirstName: "Chidi",
		LastName:  "Eze",
		Email:     "chi@example.com",
		Phone:     "08022222222",
		FingerID:  "capture-blob",
		FingerMapping: []entities.FingerMappingInput{
			{FingerName: "right_thumb", FingerData: "a"},
			{FingerName: "right_thumb", FingerData: "b"},
		},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	f.customerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerUsecase_UpdateProfile(t *testing.T) {
	f := newCustomerFixture()
	customer := activeCustomer(2_000, 0)

	f.customerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil).Once()
	f.customerRepo.On("UpdateProfile", mock.Anything, mock.AnythingOfType("*entities.Customer")).Return(nil).Once()

	updated, err := f.uc.UpdateProfile(context.Background(), customer.ID, &entities.UpdateCustomerInput{
		FirstName:     "Adaeze",
		MonthlyBudget: 50_000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Adaeze", updated.FirstName)
	assert.Equal(t, "Okafor", updated.LastName)
	assert.Equal(t, 50_000.0, updated.MonthlyBudget)
	// balance untouched
	assert.Equal(t, 2_000.0, updated.Balance)
}

func TestCustomerUsecase_AddFingerMapping(t *testing.T) {
	f := newCustomerFixture()
	customer := activeCustomer(1000, 0)
	customer.FingerMappings = []entities.FingerMapping{
		{FingerName: entities.FingerRightThumb, FingerHash: crypto.HashBiometric("main")},
	}
	f.customerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil)
	f.customerRepo.On("UpdateProfile", mock.Anything, customer).Return(nil).Once()

	mappings, err := f.uc.AddFingerMapping(context.Background(), customer.ID, &entities.FingerMappingInput{
		FingerName:    "left_index",
		BankName:      "GTB",
		AccountNumber: "0123456789",
		FingerData:    "new-scan",
	})
	assert.NoError(t, err)
	assert.Len(t, mappings, 2)
	assert.True(t, crypto.VerifyBiometric("new-scan", mappings[1].FingerHash))

	// occupied slot
	_, err = f.uc.AddFingerMapping(context.Background(), customer.ID, &entities.FingerMappingInput{
		FingerName: "right_thumb",
		FingerData: "another",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	// unrecognized slot fails before any lookup
	_, err = f.uc.AddFingerMapping(context.Background(), customer.ID, &entities.FingerMappingInput{
		FingerName: "left_toe",
		FingerData: "scan",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	f.customerRepo.AssertExpectations(t)
}

func TestCustomerUsecase_VerifyBiometric(t *testing.T) {
	f := newCustomerFixture()
	customer := activeCustomer(1000, 250)
	customer.FingerprintHash = crypto.HashBiometric("main-scan")
	customer.FingerMappings = []entities.FingerMapping{
		{FingerName: entities.FingerLeftRing, FingerHash: crypto.HashBiometric("ring-scan"), BankName: "GTB"},
	}
	f.customerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil)

	// main enrollment print
	v, err := f.uc.VerifyBiometric(context.Background(), customer.ID, &entities.VerifyBiometricInput{
		FingerID: "main-scan",
	})
	assert.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Equal(t, customer.Balance, v.Customer.Balance)
	assert.Nil(t, v.FingerDetails)

	// named mapped slot
	v, err = f.uc.VerifyBiometric(context.Background(), customer.ID, &entities.VerifyBiometricInput{
		FingerID:   "ring-scan",
		FingerName: "left_ring",
	})
	assert.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Equal(t, "GTB", v.FingerDetails.BankName)

	// capture matching neither print
	_, err = f.uc.VerifyBiometric(context.Background(), customer.ID, &entities.VerifyBiometricInput{
		FingerID:   "wrong-scan",
		FingerName: "left_ring",
	})
	assert.ErrorIs(t, err, domainerrors.ErrBiometricFailed)
}

func TestCustomerUsecase_AddFunds(t *testing.T) {
	f := newCustomerFixture()
	customer := activeCustomer(1_000, 300)

	f.customerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil).Once()
	f.customerRepo.On("UpdateBalances", mock.Anything, customer.ID, 1_500.0, 300.0, int64(0)).Return(nil).Once()

	newBalance, err := f.uc.AddFunds(context.Background(), customer.ID, 500)
	assert.NoError(t, err)
	assert.Equal(t, 1_500.0, newBalance)

	_, err = f.uc.AddFunds(context.Background(), customer.ID, -10)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

// Vault moves run through the ledger: an initiate plus a complete. The fee is
// recorded on the entry but only the amount crosses into the vault.
func TestCustomerUsecase_VaultDeposit(t *testing.T) {
	f := newCustomerFixture()
	customer := activeCustomer(5_000, 0)

	f.customerRepo.On("GetByID", mock.Anything, customer.ID).Return(customer, nil)
	created := new(entities.Transaction)
	f.txnRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Transaction")).
		Run(func(args mock.Arguments) {
			*created = *args.Get(1).(*entities.Transaction)
		}).Return(nil).Once()
	f.txnRepo.On("GetByTransactionID", mock.Anything, mock.AnythingOfType("string")).Return(created, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.customerRepo.On("UpdateBalances", mock.Anything, customer.ID, 3_000.0, 2_000.0, int64(0)).Return(nil).Once()
	f.txnRepo.On("UpdateStatus", mock.Anything, mock.Anything, entities.TransactionStatusPending, entities.TransactionStatusCompleted, mock.AnythingOfType("*time.Time"), mock.Anything).Return(nil).Once()
	f.customerRepo.On("AppendTransaction", mock.Anything, customer.ID, mock.AnythingOfType("string")).Return(nil).Once()

	result, err := f.uc.VaultDeposit(context.Background(), customer.ID, 2_000)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, result.Transaction.Fee)
	assert.Equal(t, 3_000.0, result.NewBalance)
	assert.Equal(t, 2_000.0, result.NewVaultBalance)
}
