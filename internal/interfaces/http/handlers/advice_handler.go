package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/interfaces/http/middleware"
	"fingerpay.backend/internal/interfaces/http/response"
	"fingerpay.backend/internal/usecases"
)

type AdviceService interface {
	BudgetAnalysis(ctx context.Context, customerID uuid.UUID) (*usecases.AdviceResult, error)
	OverspendingCheck(ctx context.Context, customerID uuid.UUID) (*usecases.AdviceResult, error)
	VaultSuggestion(ctx context.Context, customerID uuid.UUID) (*usecases.AdviceResult, error)
	LoanEligibility(ctx context.Context, merchantID uuid.UUID) (*usecases.AdviceResult, error)
	LiquidityPrediction(ctx context.Context, agentID uuid.UUID) (*usecases.AdviceResult, error)
}

// AdviceHandler proxies templated advisory prompts for the authenticated
// account.
type AdviceHandler struct {
	adviceUsecase AdviceService
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(adviceUsecase AdviceService) *AdviceHandler {
	return &AdviceHandler{adviceUsecase: adviceUsecase}
}

func (h *AdviceHandler) serve(c *gin.Context, generate func(context.Context, uuid.UUID) (*usecases.AdviceResult, error)) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	result, err := generate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// BudgetAnalysis advises the customer on their spending plan
// GET /api/v1/advice/budget
func (h *AdviceHandler) BudgetAnalysis(c *gin.Context) {
	h.serve(c, h.adviceUsecase.BudgetAnalysis)
}

// OverspendingCheck flags a risky spending pace
// GET /api/v1/advice/overspending
func (h *AdviceHandler) OverspendingCheck(c *gin.Context) {
	h.serve(c, h.adviceUsecase.OverspendingCheck)
}

// VaultSuggestion recommends a vault deposit amount
// GET /api/v1/advice/vault
func (h *AdviceHandler) VaultSuggestion(c *gin.Context) {
	h.serve(c, h.adviceUsecase.VaultSuggestion)
}

// LoanEligibility summarizes the merchant's credit standing
// GET /api/v1/advice/loan-eligibility
func (h *AdviceHandler) LoanEligibility(c *gin.Context) {
	h.serve(c, h.adviceUsecase.LoanEligibility)
}

// LiquidityPrediction forecasts the agent's cash demand
// GET /api/v1/advice/liquidity
func (h *AdviceHandler) LiquidityPrediction(c *gin.Context) {
	h.serve(c, h.adviceUsecase.LiquidityPrediction)
}
