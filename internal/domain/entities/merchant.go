package entities

import (
	"time"

	"github.com/google/uuid"
)

// SalesAnalytics holds the rolling aggregates feeding credit scoring
type SalesAnalytics struct {
	AverageDailySales       float64 `json:"averageDailySales"`
	ConsistencyScore        float64 `json:"consistencyScore"`
	MonthlyGrowth           float64 `json:"monthlyGrowth"`
	AverageTransactionValue float64 `json:"averageTransactionValue"`
	SuccessfulTransactions  int64   `json:"successfulTransactions"`
	RefundedTransactions    int64   `json:"refundedTransactions"`
}

// Merchant represents a merchant account
type Merchant struct {
	ID                uuid.UUID      `json:"id"`
	MerchantID        string         `json:"merchantId"`
	BusinessName      string         `json:"businessName"`
	BusinessType      string         `json:"businessType"`
	OwnerName         string         `json:"ownerName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	PasswordHash      string         `json:"-"`
	Balance           float64        `json:"balance"`
	TotalSales        float64        `json:"totalSales"`
	TotalTransactions int64          `json:"totalTransactions"`
	SalesAnalytics    SalesAnalytics `json:"salesAnalytics"`
	CreditScore       int            `json:"creditScore"`
	CreditLimit       float64        `json:"creditLimit"`
	IsActive          bool           `json:"isActive"`
	IsVerified        bool           `json:"isVerified"`
	Version           int64          `json:"-"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// RegisterMerchantInput is the merchant registration payload
type RegisterMerchantInput struct {
	BusinessName string `json:"businessName" binding:"required"`
	BusinessType string `json:"businessType" binding:"required"`
	OwnerName    string `json:"ownerName" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// CreditScoreResult is returned by the credit-score recompute endpoint
type CreditScoreResult struct {
	CreditScore int     `json:"creditScore"`
	CreditLimit float64 `json:"creditLimit"`
}

// MerchantDashboard is the merchant dashboard payload
type MerchantDashboard struct {
	MerchantInfo struct {
		BusinessName string  `json:"businessName"`
		MerchantID   string  `json:"merchantId"`
		Balance      float64 `json:"balance"`
		CreditScore  int     `json:"creditScore"`
		CreditLimit  float64 `json:"creditLimit"`
	} `json:"merchantInfo"`
	TodayStats struct {
		Transactions int64   `json:"transactions"`
		Sales        float64 `json:"sales"`
	} `json:"todayStats"`
	OverallStats struct {
		TotalSales        float64 `json:"totalSales"`
		TotalTransactions int64   `json:"totalTransactions"`
	} `json:"overallStats"`
	SalesAnalytics SalesAnalytics `json:"salesAnalytics"`
}
