package main

import (
	"github.com/gin-gonic/gin"
	"fingerpay.backend/internal/interfaces/http/handlers"
	"fingerpay.backend/internal/interfaces/http/middleware"
	"fingerpay.backend/internal/usecases"
)

type routeDeps struct {
	txnHandler      *handlers.TransactionHandler
	customerHandler *handlers.CustomerHandler
	merchantHandler *handlers.MerchantHandler
	agentHandler    *handlers.AgentHandler
	adviceHandler   *handlers.AdviceHandler
	authMiddleware  gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Customer routes
		customers := v1.Group("/customers")
		{
			customers.POST("/register", d.customerHandler.Register)
			customers.POST("/login", d.customerHandler.Login)
			customers.POST("/enroll", d.authMiddleware, middleware.RequireRole(usecases.RoleAgent), d.customerHandler.Enroll)

			me := customers.Group("/me")
			me.Use(d.authMiddleware, middleware.RequireRole(usecases.RoleCustomer))
			{
				me.GET("", d.customerHandler.GetProfile)
				me.PUT("", d.customerHandler.UpdateProfile)
				me.POST("/fingers", d.customerHandler.AddFingerMapping)
				me.POST("/verify-biometric", d.customerHandler.VerifyBiometric)
				me.POST("/funds", d.customerHandler.AddFunds)
				me.POST("/vault/deposit", d.customerHandler.VaultDeposit)
				me.POST("/vault/withdraw", d.customerHandler.VaultWithdraw)
				me.GET("/transactions", d.customerHandler.TransactionHistory)
			}
		}

		// Merchant routes
		merchants := v1.Group("/merchants")
		{
			merchants.POST("/register", d.merchantHandler.Register)
			merchants.POST("/login", d.merchantHandler.Login)

			me := merchants.Group("/me")
			me.Use(d.authMiddleware, middleware.RequireRole(usecases.RoleMerchant))
			{
				me.GET("", d.merchantHandler.GetProfile)
				me.GET("/dashboard", d.merchantHandler.Dashboard)
				me.PUT("/credit-score", d.merchantHandler.RecomputeCreditScore)
				me.GET("/transactions", d.merchantHandler.Transactions)
			}
		}

		// Agent routes
		agents := v1.Group("/agents")
		{
			agents.POST("/register", d.agentHandler.Register)
			agents.POST("/login", d.agentHandler.Login)

			me := agents.Group("/me")
			me.Use(d.authMiddleware, middleware.RequireRole(usecases.RoleAgent))
			{
				me.GET("", d.agentHandler.GetProfile)
				me.GET("/dashboard", d.agentHandler.Dashboard)
				me.GET("/customers", d.agentHandler.Customers)
				me.PUT("/liquidity", d.agentHandler.UpdateLiquidity)
			}
		}

		// Transaction routes (protected)
		transactions := v1.Group("/transactions")
		transactions.Use(d.authMiddleware)
		{
			transactions.POST("/initiate", middleware.IdempotencyMiddleware(), d.txnHandler.Initiate)
			transactions.PUT("/:transactionId/complete", d.txnHandler.Complete)
			transactions.PUT("/:transactionId/reverse", d.txnHandler.Reverse)
			transactions.GET("/stats/summary", d.txnHandler.Stats)
			transactions.GET("/:transactionId", d.txnHandler.Get)
			transactions.GET("", d.txnHandler.List)
		}

		// Advice routes (protected, role-scoped per endpoint)
		adviceGroup := v1.Group("/advice")
		adviceGroup.Use(d.authMiddleware)
		{
			adviceGroup.GET("/budget", middleware.RequireRole(usecases.RoleCustomer), d.adviceHandler.BudgetAnalysis)
			adviceGroup.GET("/overspending", middleware.RequireRole(usecases.RoleCustomer), d.adviceHandler.OverspendingCheck)
			adviceGroup.GET("/vault", middleware.RequireRole(usecases.RoleCustomer), d.adviceHandler.VaultSuggestion)
			adviceGroup.GET("/loan-eligibility", middleware.RequireRole(usecases.RoleMerchant), d.adviceHandler.LoanEligibility)
			adviceGroup.GET("/liquidity", middleware.RequireRole(usecases.RoleAgent), d.adviceHandler.LiquidityPrediction)
		}
	}
}
