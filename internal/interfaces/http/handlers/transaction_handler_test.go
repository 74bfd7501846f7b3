package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/pkg/utils"
)

type transactionServiceStub struct {
	initiateFn func(ctx context.Context, input *entities.InitiateTransactionInput) (*entities.InitiateTransactionResult, error)
	completeFn func(ctx context.Context, transactionID string) (*entities.CompleteTransactionResult, error)
	reverseFn  func(ctx context.Context, transactionID, reason string) (*entities.ReverseTransactionResult, error)
	getFn      func(ctx context.Context, transactionID string) (*entities.Transaction, error)
	listFn     func(ctx context.Context, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error)
	statsFn    func(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error)
}

func (s transactionServiceStub) Initiate(ctx context.Context, input *entities.InitiateTransactionInput) (*entities.InitiateTransactionResult, error) {
	return s.initiateFn(ctx, input)
}
func (s transactionServiceStub) Complete(ctx context.Context, transactionID string) (*entities.CompleteTransactionResult, error) {
	return s.completeFn(ctx, transactionID)
}
func (s transactionServiceStub) Reverse(ctx context.Context, transactionID, reason string) (*entities.ReverseTransactionResult, error) {
	return s.reverseFn(ctx, transactionID, reason)
}
func (s transactionServiceStub) Get(ctx context.Context, transactionID string) (*entities.Transaction, error) {
	return s.getFn(ctx, transactionID)
}
func (s transactionServiceStub) List(ctx context.Context, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
	return s.listFn(ctx, filter, page, limit)
}
func (s transactionServiceStub) Stats(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error) {
	return s.statsFn(ctx, startDate, endDate)
}

func newTransactionRouter(s transactionServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTransactionHandler(s)
	r := gin.New()
	r.POST("/transactions/initiate", h.Initiate)
	r.PUT("/transactions/:transactionId/complete", h.Complete)
	r.PUT("/transactions/:transactionId/reverse", h.Reverse)
	r.GET("/transactions/stats/summary", h.Stats)
	r.GET("/transactions/:transactionId", h.Get)
	r.GET("/transactions", h.List)
	return r
}

func TestTransactionHandler_InitiateMappings(t *testing.T) {
	customerID := "0190a6e2-1111-7000-8000-000000000001"
	service := transactionServiceStub{
		initiateFn: func(_ context.Context, input *entities.InitiateTransactionInput) (*entities.InitiateTransactionResult, error) {
			switch {
			case input.FingerUsed == "left_pinky":
				return &entities.InitiateTransactionResult{IsPanicAlert: true}, nil
			case input.Amount > 1_000_000:
				return nil, domainerrors.ErrInsufficientFunds
			}
			return &entities.InitiateTransactionResult{
				Transaction: &entities.TransactionSummary{
					TransactionID: "FP100",
					Status:        entities.TransactionStatusPending,
					Amount:        input.Amount,
				},
			}, nil
		},
	}
	r := newTransactionRouter(service)

	body := []byte(`{"customerId":"` + customerID + `","transactionType":"withdrawal","amount":500}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/initiate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	// panic alert looks like a normal accept
	body = []byte(`{"customerId":"` + customerID + `","transactionType":"withdrawal","amount":500,"fingerUsed":"left_pinky"}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions/initiate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for panic alert, got %d", w.Code)
	}
	var panicResp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &panicResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !panicResp.Success || panicResp.Data["isPanicAlert"] != true {
		t.Fatalf("expected isPanicAlert=true, got %+v", panicResp)
	}

	// insufficient funds maps to 400
	body = []byte(`{"customerId":"` + customerID + `","transactionType":"withdrawal","amount":2000000}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions/initiate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// missing body maps to 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/transactions/initiate", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", w.Code)
	}
}

func TestTransactionHandler_CompleteAndReverse(t *testing.T) {
	var gotReasons []string
	service := transactionServiceStub{
		completeFn: func(_ context.Context, transactionID string) (*entities.CompleteTransactionResult, error) {
			if transactionID == "FP404" {
				return nil, domainerrors.ErrNotFound
			}
			if transactionID == "FPDONE" {
				return nil, domainerrors.ErrAlreadyProcessed
			}
			return &entities.CompleteTransactionResult{
				Transaction: &entities.TransactionSummary{TransactionID: transactionID, Status: entities.TransactionStatusCompleted},
				NewBalance:  8995,
			}, nil
		},
		reverseFn: func(_ context.Context, transactionID, reason string) (*entities.ReverseTransactionResult, error) {
			gotReasons = append(gotReasons, reason)
			return &entities.ReverseTransactionResult{
				Transaction: &entities.TransactionSummary{TransactionID: transactionID, Status: entities.TransactionStatusReversed},
				NewBalance:  10_000,
			}, nil
		},
	}
	r := newTransactionRouter(service)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/transactions/FP100/complete", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/transactions/FP404/complete", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/transactions/FPDONE/complete", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for already processed, got %d", w.Code)
	}

	body := bytes.NewReader([]byte(`{"reason":"customer dispute"}`))
	req := httptest.NewRequest(http.MethodPut, "/transactions/FP100/reverse", body)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// reason is optional
	req = httptest.NewRequest(http.MethodPut, "/transactions/FP100/reverse", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without a reason, got %d body=%s", w.Code, w.Body.String())
	}

	if len(gotReasons) != 2 || gotReasons[0] != "customer dispute" || gotReasons[1] != "" {
		t.Fatalf("unexpected reasons propagated: %v", gotReasons)
	}
}

func TestTransactionHandler_ListFilterParsing(t *testing.T) {
	var gotFilter entities.TransactionFilter
	var gotPage, gotLimit int
	service := transactionServiceStub{
		listFn: func(_ context.Context, filter entities.TransactionFilter, page, limit int) ([]*entities.Transaction, utils.PaginationMeta, error) {
			gotFilter = filter
			gotPage, gotLimit = page, limit
			return []*entities.Transaction{}, utils.PaginationMeta{Page: page, Limit: limit}, nil
		},
	}
	r := newTransactionRouter(service)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/transactions?type=payment&status=completed&customerId=0190a6e2-1111-7000-8000-000000000001&page=2&limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if gotFilter.Type != entities.TransactionTypePayment || gotFilter.Status != entities.TransactionStatusCompleted {
		t.Fatalf("filter not parsed: %+v", gotFilter)
	}
	if gotFilter.CustomerID == nil {
		t.Fatal("customer filter not parsed")
	}
	if gotPage != 2 || gotLimit != 5 {
		t.Fatalf("pagination not parsed: page=%d limit=%d", gotPage, gotLimit)
	}

	// bad type rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions?type=gift", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", w.Code)
	}

	// bad uuid rejected
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions?customerId=nope", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad uuid, got %d", w.Code)
	}
}

func TestTransactionHandler_Stats(t *testing.T) {
	service := transactionServiceStub{
		statsFn: func(_ context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error) {
			if startDate == nil || endDate == nil {
				t.Fatal("date range not parsed")
			}
			return &entities.TransactionStats{
				VolumeStats: entities.VolumeStat{TotalVolume: 1500, TransactionCount: 2},
			}, nil
		},
	}
	r := newTransactionRouter(service)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/transactions/stats/summary?startDate=2026-01-01T00:00:00Z&endDate=2026-02-01T00:00:00Z", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/stats/summary?startDate=yesterday", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}
