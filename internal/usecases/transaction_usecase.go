package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/domain/repositories"
	"fingerpay.backend/pkg/crypto"
	"fingerpay.backend/pkg/logger"
	"fingerpay.backend/pkg/metrics"
	"fingerpay.backend/pkg/utils"
)

// TransactionUsecase drives the ledger state machine: initiate, complete,
// reverse, plus queries. Balance mutation happens only here.
type TransactionUsecase struct {
	txnRepo      repositories.TransactionRepository
	customerRepo repositories.CustomerRepository
	merchantRepo repositories.MerchantRepository
	agentRepo    repositories.AgentRepository
	uow          repositories.UnitOfWork
	feePercent   float64
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	txnRepo repositories.TransactionRepository,
	customerRepo repositories.CustomerRepository,
	merchantRepo repositories.MerchantRepository,
	agentRepo repositories.AgentRepository,
	uow repositories.UnitOfWork,
	feePercent float64,
) *TransactionUsecase {
	if feePercent <= 0 {
		feePercent = DefaultFeePercent
	}
	return &TransactionUsecase{
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		merchantRepo: merchantRepo,
		agentRepo:    agentRepo,
		uow:          uow,
		feePercent:   feePercent,
	}
}

// Initiate validates a requested operation and persists a pending ledger
// entry. No balance moves yet. A panic-slot match persists nothing and
// returns only the alert flag.
func (u *TransactionUsecase) Initiate(ctx context.Context, input *entities.InitiateTransactionInput) (*entities.InitiateTransactionResult, error) {
	txnType := entities.TransactionType(input.TransactionType)
	if !txnType.IsValid() {
		return nil, domainerrors.BadRequest("unrecognized transaction type")
	}
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("amount must be greater than zero")
	}

	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid customer id")
	}
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	if input.FingerUsed != "" && input.FingerID != "" {
		finger := entities.FingerName(input.FingerUsed)
		if !finger.IsValid() {
			return nil, domainerrors.BadRequest("unrecognized finger slot")
		}
		mapping := customer.MappingFor(finger)
		if mapping == nil {
			return nil, domainerrors.ErrBiometricMismatch
		}
		// The capture must match the stored hash before the panic flag is
		// honored: a wrong press of the panic slot is a failed verification,
		// not a duress signal.
		if !crypto.VerifyBiometric(input.FingerID, mapping.FingerHash) {
			metrics.BiometricFailuresTotal.Inc()
			return nil, domainerrors.ErrBiometricFailed
		}
		if mapping.IsPanicFinger {
			// Silent alarm: no row is written, downstream alerting is
			// out of band.
			logger.Warn(ctx, "panic finger used",
				zap.String("customer_id", customer.CustomerID),
				zap.String("finger", string(finger)),
			)
			metrics.PanicAlertsTotal.Inc()
			return &entities.InitiateTransactionResult{IsPanicAlert: true}, nil
		}
	}

	fee := feeFor(input.Amount, u.feePercent)
	totalAmount := input.Amount + fee

	if txnType.DebitsSpendableBalance() && customer.Balance < totalAmount {
		return nil, domainerrors.ErrInsufficientFunds
	}
	if txnType == entities.TransactionTypeVaultWithdrawal && customer.VaultBalance < input.Amount {
		return nil, domainerrors.ErrInsufficientFunds
	}

	var merchantID *uuid.UUID
	if input.MerchantID != "" {
		id, err := uuid.Parse(input.MerchantID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid merchant id")
		}
		merchant, err := u.merchantRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !merchant.IsActive {
			return nil, domainerrors.ErrAccountInactive
		}
		merchantID = &merchant.ID
	}
	if txnType == entities.TransactionTypePayment && merchantID == nil {
		return nil, domainerrors.BadRequest("payment requires a merchant")
	}

	var agentID *uuid.UUID
	if input.AgentID != "" {
		id, err := uuid.Parse(input.AgentID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid agent id")
		}
		agent, err := u.agentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !agent.IsActive {
			return nil, domainerrors.ErrAccountInactive
		}
		agentID = &agent.ID
	}

	now := time.Now()
	txn := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		TransactionID: utils.NewTransactionID(),
		Type:          txnType,
		CustomerID:    customer.ID,
		MerchantID:    merchantID,
		AgentID:       agentID,
		Amount:        input.Amount,
		Fee:           fee,
		TotalAmount:   totalAmount,
		FingerUsed:    null.NewString(input.FingerUsed, input.FingerUsed != ""),
		Status:        entities.TransactionStatusPending,
		Description:   input.Description,
		Location:      input.Location,
		DeviceID:      null.NewString(input.DeviceID, input.DeviceID != ""),
		Metadata:      input.Metadata,
		InitiatedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	metrics.TransactionsTotal.WithLabelValues(string(txnType), string(entities.TransactionStatusPending)).Inc()
	logger.Info(ctx, "transaction initiated",
		zap.String("transaction_id", txn.TransactionID),
		zap.String("type", string(txnType)),
		zap.Float64("amount", txn.Amount),
	)

	return &entities.InitiateTransactionResult{Transaction: txn.Summary()}, nil
}

// Complete applies a pending transaction's balance deltas atomically across
// every touched account, then marks it completed. Any mutation failure rolls
// the writes back and marks the row failed instead.
func (u *TransactionUsecase) Complete(ctx context.Context, transactionID string) (*entities.CompleteTransactionResult, error) {
	txn, err := u.txnRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != entities.TransactionStatusPending {
		return nil, domainerrors.ErrAlreadyProcessed
	}

	deltas := deltasFor(txn)
	var result *entities.CompleteTransactionResult

	mutErr := u.uow.Do(ctx, func(ctx context.Context) error {
		customer, err := u.customerRepo.GetByID(ctx, txn.CustomerID)
		if err != nil {
			return err
		}

		newBalance := customer.Balance + deltas.Customer
		newVault := customer.VaultBalance + deltas.Vault
		if newBalance < 0 || newVault < 0 {
			return domainerrors.ErrInsufficientFunds
		}
		if err := u.customerRepo.UpdateBalances(ctx, customer.ID, newBalance, newVault, customer.Version); err != nil {
			return err
		}

		if deltas.Merchant != 0 {
			if txn.MerchantID == nil {
				return domainerrors.BadRequest("payment has no merchant")
			}
			if err := u.creditMerchant(ctx, *txn.MerchantID, txn.Amount, deltas.Merchant); err != nil {
				return err
			}
		}

		if txn.AgentID != nil {
			if err := u.creditAgentCommission(ctx, *txn.AgentID, txn.Amount); err != nil {
				return err
			}
		}

		completedAt := time.Now()
		if err := u.txnRepo.UpdateStatus(ctx, txn.ID, entities.TransactionStatusPending, entities.TransactionStatusCompleted, &completedAt, nil); err != nil {
			return err
		}
		if err := u.customerRepo.AppendTransaction(ctx, customer.ID, txn.TransactionID); err != nil {
			return err
		}

		txn.Status = entities.TransactionStatusCompleted
		txn.CompletedAt = null.TimeFrom(completedAt)
		result = &entities.CompleteTransactionResult{
			Transaction:     txn.Summary(),
			NewBalance:      newBalance,
			NewVaultBalance: newVault,
		}
		return nil
	})

	if mutErr != nil {
		u.markFailed(ctx, txn, mutErr)
		return nil, mutErr
	}

	metrics.TransactionsTotal.WithLabelValues(string(txn.Type), string(entities.TransactionStatusCompleted)).Inc()
	metrics.TransactionVolume.WithLabelValues(string(txn.Type)).Add(txn.Amount)
	logger.Info(ctx, "transaction completed",
		zap.String("transaction_id", txn.TransactionID),
		zap.Float64("amount", txn.Amount),
	)
	return result, nil
}

// Reverse applies the exact inverse deltas of a completed transaction and
// marks it reversed. Reversal is permitted at most once.
func (u *TransactionUsecase) Reverse(ctx context.Context, transactionID, reason string) (*entities.ReverseTransactionResult, error) {
	txn, err := u.txnRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	switch txn.Status {
	case entities.TransactionStatusCompleted:
	case entities.TransactionStatusReversed:
		return nil, domainerrors.ErrAlreadyProcessed
	default:
		return nil, domainerrors.ErrInvalidState
	}

	deltas := deltasFor(txn).negate()
	var result *entities.ReverseTransactionResult

	mutErr := u.uow.Do(ctx, func(ctx context.Context) error {
		customer, err := u.customerRepo.GetByID(ctx, txn.CustomerID)
		if err != nil {
			return err
		}

		newBalance := customer.Balance + deltas.Customer
		newVault := customer.VaultBalance + deltas.Vault
		if newBalance < 0 || newVault < 0 {
			return domainerrors.ErrInsufficientFunds
		}
		if err := u.customerRepo.UpdateBalances(ctx, customer.ID, newBalance, newVault, customer.Version); err != nil {
			return err
		}

		if deltas.Merchant != 0 {
			if txn.MerchantID == nil {
				return domainerrors.BadRequest("payment has no merchant")
			}
			if err := u.refundMerchant(ctx, *txn.MerchantID, txn.Amount, deltas.Merchant); err != nil {
				return err
			}
		}

		if txn.AgentID != nil {
			if err := u.clawBackAgentCommission(ctx, *txn.AgentID, txn.Amount); err != nil {
				return err
			}
		}

		metadata := map[string]string{
			"reversalReason": reason,
			"reversedAt":     time.Now().Format(time.RFC3339),
		}
		if err := u.txnRepo.UpdateStatus(ctx, txn.ID, entities.TransactionStatusCompleted, entities.TransactionStatusReversed, nil, metadata); err != nil {
			return err
		}

		txn.Status = entities.TransactionStatusReversed
		result = &entities.ReverseTransactionResult{
			Transaction: txn.Summary(),
			NewBalance:  newBalance,
		}
		return nil
	})
	if mutErr != nil {
		return nil, mutErr
	}

	metrics.TransactionsTotal.WithLabelValues(string(txn.Type), string(entities.TransactionStatusReversed)).Inc()
	logger.Info(ctx, "transaction reversed",
		zap.String("transaction_id", txn.TransactionID),
		zap.String("reason", reason),
	)
	return result, nil
}

// Get fetches a single ledger entry by public id
func (u *TransactionUsecase) Get(ctx context.Context, transactionID string) (*entities.Transaction, error) {
	return u.txnRepo.GetByTransactionID(ctx, transactionID)
}

// List returns filtered, paginated ledger entries
func (u *TransactionUsecase) List(ctx context.Context, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	txns, total, err := u.txnRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return txns, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// Stats aggregates the ledger over an optional completion-date range
func (u *TransactionUsecase) Stats(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error) {
	return u.txnRepo.Stats(ctx, startDate, endDate)
}

// creditMerchant applies a payment's merchant-side effects: balance credit,
// sales counters, and the running averageDailySales mean.
func (u *TransactionUsecase) creditMerchant(ctx context.Context, merchantID uuid.UUID, amount, delta float64) error {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}

	newTotalSales := merchant.TotalSales + amount
	newCount := merchant.TotalTransactions + 1

	analytics := merchant.SalesAnalytics
	analytics.SuccessfulTransactions++
	// running mean over successful transactions
	analytics.AverageDailySales += (amount - analytics.AverageDailySales) / float64(newCount)
	analytics.AverageTransactionValue = newTotalSales / float64(newCount)

	return u.merchantRepo.UpdateFinancials(ctx, merchant.ID,
		merchant.Balance+delta, newTotalSales, newCount, analytics, merchant.Version)
}

// refundMerchant unwinds a payment's merchant-side effects on reversal.
func (u *TransactionUsecase) refundMerchant(ctx context.Context, merchantID uuid.UUID, amount, delta float64) error {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}
	if merchant.Balance+delta < 0 {
		return domainerrors.ErrInsufficientFunds
	}

	newTotalSales := merchant.TotalSales - amount
	newCount := merchant.TotalTransactions - 1
	if newTotalSales < 0 {
		newTotalSales = 0
	}
	if newCount < 0 {
		newCount = 0
	}

	analytics := merchant.SalesAnalytics
	analytics.RefundedTransactions++
	if analytics.SuccessfulTransactions > 0 {
		analytics.SuccessfulTransactions--
	}
	if newCount > 0 {
		analytics.AverageTransactionValue = newTotalSales / float64(newCount)
	} else {
		analytics.AverageTransactionValue = 0
	}

	return u.merchantRepo.UpdateFinancials(ctx, merchant.ID,
		merchant.Balance+delta, newTotalSales, newCount, analytics, merchant.Version)
}

// creditAgentCommission pays the agent their transaction percentage.
func (u *TransactionUsecase) creditAgentCommission(ctx context.Context, agentID uuid.UUID, amount float64) error {
	agent, err := u.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return err
	}

	commission := roundMoney(amount * agent.CommissionRate.TransactionPercentage / 100)
	agent.Balance += commission
	agent.Performance.TotalEarnings += commission
	agent.Performance.MonthlyEarnings += commission

	return u.agentRepo.UpdateVersioned(ctx, agent)
}

// clawBackAgentCommission debits the commission paid at completion. The
// clawback recomputes at the agent's current rate.
func (u *TransactionUsecase) clawBackAgentCommission(ctx context.Context, agentID uuid.UUID, amount float64) error {
	agent, err := u.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return err
	}

	commission := roundMoney(amount * agent.CommissionRate.TransactionPercentage / 100)
	if agent.Balance < commission {
		return domainerrors.ErrInsufficientFunds
	}
	agent.Balance -= commission
	agent.Performance.TotalEarnings -= commission
	agent.Performance.MonthlyEarnings -= commission

	return u.agentRepo.UpdateVersioned(ctx, agent)
}

// markFailed pins a transaction that could not be applied to the failed
// terminal state so it never lingers pending. A row that already left
// pending is left alone.
func (u *TransactionUsecase) markFailed(ctx context.Context, txn *entities.Transaction, cause error) {
	metadata := map[string]string{"failureReason": cause.Error()}
	err := u.txnRepo.UpdateStatus(ctx, txn.ID, entities.TransactionStatusPending, entities.TransactionStatusFailed, nil, metadata)
	switch {
	case err == nil:
	case errors.Is(err, domainerrors.ErrInvalidState), errors.Is(err, domainerrors.ErrNotFound):
		// another caller drove the row to a terminal state first
		return
	default:
		logger.Error(ctx, "failed to mark transaction failed",
			zap.String("transaction_id", txn.TransactionID),
			zap.Error(err),
		)
		return
	}
	metrics.TransactionsTotal.WithLabelValues(string(txn.Type), string(entities.TransactionStatusFailed)).Inc()
	logger.Warn(ctx, "transaction failed",
		zap.String("transaction_id", txn.TransactionID),
		zap.Error(cause),
	)
}
