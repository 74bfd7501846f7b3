package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/interfaces/http/middleware"
	"fingerpay.backend/internal/interfaces/http/response"
	"fingerpay.backend/pkg/jwt"
	"fingerpay.backend/pkg/utils"
)

type CustomerService interface {
	Register(ctx context.Context, input *entities.RegisterCustomerInput) (*entities.Customer, *jwt.TokenPair, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.Customer, *jwt.TokenPair, error)
	Enroll(ctx context.Context, agentID uuid.UUID, input *entities.EnrollCustomerInput) (*entities.Customer, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error)
	AddFingerMapping(ctx context.Context, id uuid.UUID, input *entities.FingerMappingInput) ([]entities.FingerMapping, error)
	VerifyBiometric(ctx context.Context, id uuid.UUID, input *entities.VerifyBiometricInput) (*entities.BiometricVerification, error)
	AddFunds(ctx context.Context, id uuid.UUID, amount float64) (float64, error)
	VaultDeposit(ctx context.Context, id uuid.UUID, amount float64) (*entities.CompleteTransactionResult, error)
	VaultWithdraw(ctx context.Context, id uuid.UUID, amount float64) (*entities.CompleteTransactionResult, error)
	TransactionHistory(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error)
}

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerUsecase CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerUsecase CustomerService) *CustomerHandler {
	return &CustomerHandler{customerUsecase: customerUsecase}
}

// Register creates a customer account
// POST /api/v1/customers/register
func (h *CustomerHandler) Register(c *gin.Context) {
	var input entities.RegisterCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, tokens, err := h.customerUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"customer": customer,
		"tokens":   tokens,
	})
}

// Login authenticates a customer
// POST /api/v1/customers/login
func (h *CustomerHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, tokens, err := h.customerUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"customer": customer,
		"tokens":   tokens,
	})
}

// Enroll creates a biometrically-enrolled customer on behalf of the
// authenticated agent
// POST /api/v1/customers/enroll
func (h *CustomerHandler) Enroll(c *gin.Context) {
	agentID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.EnrollCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.Enroll(c.Request.Context(), agentID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"customer": customer})
}

// GetProfile returns the authenticated customer's profile
// GET /api/v1/customers/me
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	customer, err := h.customerUsecase.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

// UpdateProfile updates the permitted profile fields
// PUT /api/v1/customers/me
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.UpdateProfile(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

// AddFingerMapping assigns a bank account to a free finger slot
// POST /api/v1/customers/me/fingers
func (h *CustomerHandler) AddFingerMapping(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.FingerMappingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	mappings, err := h.customerUsecase.AddFingerMapping(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"fingerMapping": mappings})
}

// VerifyBiometric checks a capture against the customer's enrolled prints
// POST /api/v1/customers/me/verify-biometric
func (h *CustomerHandler) VerifyBiometric(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input entities.VerifyBiometricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	verification, err := h.customerUsecase.VerifyBiometric(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, verification)
}

type amountInput struct {
	Amount float64 `json:"amount" binding:"required"`
}

// AddFunds credits the spendable balance
// POST /api/v1/customers/me/funds
func (h *CustomerHandler) AddFunds(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input amountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	newBalance, err := h.customerUsecase.AddFunds(c.Request.Context(), id, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"balance": newBalance})
}

// VaultDeposit moves spendable funds into the vault
// POST /api/v1/customers/me/vault/deposit
func (h *CustomerHandler) VaultDeposit(c *gin.Context) {
	h.vaultMove(c, h.customerUsecase.VaultDeposit)
}

// VaultWithdraw moves vault funds back to the spendable balance
// POST /api/v1/customers/me/vault/withdraw
func (h *CustomerHandler) VaultWithdraw(c *gin.Context) {
	h.vaultMove(c, h.customerUsecase.VaultWithdraw)
}

func (h *CustomerHandler) vaultMove(c *gin.Context, move func(context.Context, uuid.UUID, float64) (*entities.CompleteTransactionResult, error)) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input amountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := move(c.Request.Context(), id, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// TransactionHistory lists the customer's ledger entries
// GET /api/v1/customers/me/transactions
func (h *CustomerHandler) TransactionHistory(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txns, meta, err := h.customerUsecase.TransactionHistory(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   meta,
	})
}
