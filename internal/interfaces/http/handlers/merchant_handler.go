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

type MerchantService interface {
	Register(ctx context.Context, input *entities.RegisterMerchantInput) (*entities.Merchant, *jwt.TokenPair, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.Merchant, *jwt.TokenPair, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	Dashboard(ctx context.Context, id uuid.UUID) (*entities.MerchantDashboard, error)
	RecomputeCreditScore(ctx context.Context, id uuid.UUID) (*entities.CreditScoreResult, error)
	Transactions(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error)
}

// MerchantHandler handles merchant endpoints
type MerchantHandler struct {
	merchantUsecase MerchantService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantUsecase: merchantUsecase}
}

// Register creates a merchant account
// POST /api/v1/merchants/register
func (h *MerchantHandler) Register(c *gin.Context) {
	var input entities.RegisterMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant, tokens, err := h.merchantUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"merchant": merchant,
		"tokens":   tokens,
	})
}

// Login authenticates a merchant
// POST /api/v1/merchants/login
func (h *MerchantHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant, tokens, err := h.merchantUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"merchant": merchant,
		"tokens":   tokens,
	})
}

// GetProfile returns the authenticated merchant's profile
// GET /api/v1/merchants/me
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	merchant, err := h.merchantUsecase.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// Dashboard returns today's and lifetime sales aggregates
// GET /api/v1/merchants/me/dashboard
func (h *MerchantHandler) Dashboard(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	dashboard, err := h.merchantUsecase.Dashboard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// RecomputeCreditScore rescores the merchant from stored aggregates
// PUT /api/v1/merchants/me/credit-score
func (h *MerchantHandler) RecomputeCreditScore(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	result, err := h.merchantUsecase.RecomputeCreditScore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Transactions lists the merchant's ledger entries
// GET /api/v1/merchants/me/transactions
func (h *MerchantHandler) Transactions(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txns, meta, err := h.merchantUsecase.Transactions(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   meta,
	})
}
