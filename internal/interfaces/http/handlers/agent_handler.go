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

type AgentService interface {
	Register(ctx context.Context, input *entities.RegisterAgentInput) (*entities.Agent, *jwt.TokenPair, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.Agent, *jwt.TokenPair, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*entities.Agent, error)
	Dashboard(ctx context.Context, id uuid.UUID) (*entities.AgentDashboard, error)
	Customers(ctx context.Context, id uuid.UUID, page, limit int) ([]*entities.Customer, utils.PaginationMeta, error)
	UpdateLiquidity(ctx context.Context, id uuid.UUID, cashOnHand float64) (*entities.LiquidityStatus, error)
}

// AgentHandler handles field-agent endpoints
type AgentHandler struct {
	agentUsecase AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentUsecase AgentService) *AgentHandler {
	return &AgentHandler{agentUsecase: agentUsecase}
}

// Register creates an agent account
// POST /api/v1/agents/register
func (h *AgentHandler) Register(c *gin.Context) {
	var input entities.RegisterAgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	agent, tokens, err := h.agentUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"agent":  agent,
		"tokens": tokens,
	})
}

// Login authenticates an agent
// POST /api/v1/agents/login
func (h *AgentHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	agent, tokens, err := h.agentUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"agent":  agent,
		"tokens": tokens,
	})
}

// GetProfile returns the authenticated agent's profile
// GET /api/v1/agents/me
func (h *AgentHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	agent, err := h.agentUsecase.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"agent": agent})
}

// Dashboard returns performance, tier and customer counts
// GET /api/v1/agents/me/dashboard
func (h *AgentHandler) Dashboard(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	dashboard, err := h.agentUsecase.Dashboard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dashboard)
}

// Customers lists the customers this agent enrolled
// GET /api/v1/agents/me/customers
func (h *AgentHandler) Customers(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	customers, meta, err := h.agentUsecase.Customers(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": meta,
	})
}

// UpdateLiquidity records the agent's declared cash position
// PUT /api/v1/agents/me/liquidity
func (h *AgentHandler) UpdateLiquidity(c *gin.Context) {
	id, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	var input struct {
		CashOnHand float64 `json:"cashOnHand"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	status, err := h.agentUsecase.UpdateLiquidity(c.Request.Context(), id, input.CashOnHand)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}
