package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/interfaces/http/response"
	"fingerpay.backend/pkg/utils"
)

type TransactionService interface {
	Initiate(ctx context.Context, input *entities.InitiateTransactionInput) (*entities.InitiateTransactionResult, error)
	Complete(ctx context.Context, transactionID string) (*entities.CompleteTransactionResult, error)
	Reverse(ctx context.Context, transactionID, reason string) (*entities.ReverseTransactionResult, error)
	Get(ctx context.Context, transactionID string) (*entities.Transaction, error)
	List(ctx context.Context, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error)
	Stats(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error)
}

// TransactionHandler handles ledger endpoints
type TransactionHandler struct {
	txnUsecase TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnUsecase TransactionService) *TransactionHandler {
	return &TransactionHandler{txnUsecase: txnUsecase}
}

// Initiate creates a pending transaction
// POST /api/v1/transactions/initiate
func (h *TransactionHandler) Initiate(c *gin.Context) {
	var input entities.InitiateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.txnUsecase.Initiate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.IsPanicAlert {
		// looks like a routine accept to the terminal, nothing persisted
		response.Success(c, http.StatusOK, gin.H{"isPanicAlert": true})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transaction": result.Transaction})
}

// Complete applies a pending transaction
// PUT /api/v1/transactions/:transactionId/complete
func (h *TransactionHandler) Complete(c *gin.Context) {
	result, err := h.txnUsecase.Complete(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Reverse reverses a completed transaction
// PUT /api/v1/transactions/:transactionId/reverse
func (h *TransactionHandler) Reverse(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// reason is optional; an absent body reverses with no recorded reason
	_ = c.ShouldBindJSON(&input)

	result, err := h.txnUsecase.Reverse(c.Request.Context(), c.Param("transactionId"), input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Get fetches a transaction by public id
// GET /api/v1/transactions/:transactionId
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.txnUsecase.Get(c.Request.Context(), c.Param("transactionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transaction": txn})
}

// List returns filtered, paginated transactions
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txns, meta, err := h.txnUsecase.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": txns,
		"pagination":   meta,
	})
}

// Stats aggregates the ledger
// GET /api/v1/transactions/stats/summary
func (h *TransactionHandler) Stats(c *gin.Context) {
	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.txnUsecase.Stats(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func parseTransactionFilter(c *gin.Context) (entities.TransactionFilter, error) {
	var filter entities.TransactionFilter

	if t := c.Query("type"); t != "" {
		txnType := entities.TransactionType(t)
		if !txnType.IsValid() {
			return filter, domainerrors.BadRequest("unrecognized transaction type")
		}
		filter.Type = txnType
	}
	if s := c.Query("status"); s != "" {
		filter.Status = entities.TransactionStatus(s)
	}
	if id := c.Query("customerId"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return filter, domainerrors.BadRequest("invalid customer id")
		}
		filter.CustomerID = &parsed
	}
	if id := c.Query("merchantId"); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return filter, domainerrors.BadRequest("invalid merchant id")
		}
		filter.MerchantID = &parsed
	}

	startDate, endDate, err := parseDateRange(c)
	if err != nil {
		return filter, err
	}
	filter.StartDate = startDate
	filter.EndDate = endDate
	return filter, nil
}

func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if s := c.Query("startDate"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, domainerrors.BadRequest("startDate must be RFC3339")
		}
		startDate = &parsed
	}
	if s := c.Query("endDate"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, domainerrors.BadRequest("endDate must be RFC3339")
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}
