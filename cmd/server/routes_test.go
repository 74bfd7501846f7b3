package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"fingerpay.backend/internal/interfaces/http/handlers"
)

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		txnHandler:      &handlers.TransactionHandler{},
		customerHandler: &handlers.CustomerHandler{},
		merchantHandler: &handlers.MerchantHandler{},
		agentHandler:    &handlers.AgentHandler{},
		adviceHandler:   &handlers.AdviceHandler{},
		authMiddleware:  func(c *gin.Context) { c.Next() },
	})

	routes := r.Routes()
	if len(routes) < 25 {
		t.Fatalf("expected many routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/customers/register"},
		{"POST", "/api/v1/customers/enroll"},
		{"POST", "/api/v1/customers/me/fingers"},
		{"POST", "/api/v1/customers/me/verify-biometric"},
		{"POST", "/api/v1/customers/me/vault/deposit"},
		{"GET", "/api/v1/customers/me/transactions"},
		{"POST", "/api/v1/merchants/login"},
		{"GET", "/api/v1/merchants/me/dashboard"},
		{"PUT", "/api/v1/merchants/me/credit-score"},
		{"PUT", "/api/v1/agents/me/liquidity"},
		{"POST", "/api/v1/transactions/initiate"},
		{"PUT", "/api/v1/transactions/:transactionId/complete"},
		{"PUT", "/api/v1/transactions/:transactionId/reverse"},
		{"GET", "/api/v1/transactions/stats/summary"},
		{"GET", "/api/v1/advice/budget"},
		{"GET", "/api/v1/advice/liquidity"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_RouteResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		txnHandler:      &handlers.TransactionHandler{},
		customerHandler: &handlers.CustomerHandler{},
		merchantHandler: &handlers.MerchantHandler{},
		agentHandler:    &handlers.AgentHandler{},
		adviceHandler:   &handlers.AdviceHandler{},
		authMiddleware:  func(c *gin.Context) { c.Next() },
	})

	// Smoke: unrelated helper route still works after route registration.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
