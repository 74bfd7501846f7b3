package entities

import (
	"time"

	"github.com/google/uuid"
)

// AgentTier is an ordinal performance level governing commission
type AgentTier string

const (
	AgentTier1 AgentTier = "AG-LV1"
	AgentTier2 AgentTier = "AG-LV2"
	AgentTier3 AgentTier = "AG-LV3"
	AgentTier4 AgentTier = "AG-LV4"
	AgentTier5 AgentTier = "AG-LV5"
)

// CommissionRate is the earnings schedule attached to a tier
type CommissionRate struct {
	RegistrationFee       float64 `json:"registrationFee"`
	TransactionPercentage float64 `json:"transactionPercentage"`
}

// AgentPerformance holds registration and earnings counters
type AgentPerformance struct {
	TotalRegistrations   int64   `json:"totalRegistrations"`
	MonthlyRegistrations int64   `json:"monthlyRegistrations"`
	WeeklyRegistrations  int64   `json:"weeklyRegistrations"`
	TotalEarnings        float64 `json:"totalEarnings"`
	MonthlyEarnings      float64 `json:"monthlyEarnings"`
}

// LiquidityStatus tracks an agent's cash position
type LiquidityStatus struct {
	CashOnHand      float64   `json:"cashOnHand"`
	PredictedDemand string    `json:"predictedDemand"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// Agent represents a field agent account
type Agent struct {
	ID             uuid.UUID        `json:"id"`
	AgentID        string           `json:"agentId"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	PasswordHash   string           `json:"-"`
	Tier           AgentTier        `json:"agentLevel"`
	CommissionRate CommissionRate   `json:"commissionRate"`
	Performance    AgentPerformance `json:"performance"`
	Balance        float64          `json:"balance"`
	Liquidity      LiquidityStatus  `json:"liquidityStatus"`
	IsActive       bool             `json:"isActive"`
	Version        int64            `json:"-"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// RegisterAgentInput is the agent registration payload
type RegisterAgentInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginInput is shared by all three roles
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AgentDashboard is the agent dashboard payload
type AgentDashboard struct {
	AgentInfo struct {
		Name    string    `json:"name"`
		AgentID string    `json:"agentId"`
		Level   AgentTier `json:"level"`
		Balance float64   `json:"balance"`
	} `json:"agentInfo"`
	Performance AgentPerformance `json:"performance"`
	Customers   struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"customers"`
	Liquidity LiquidityStatus `json:"liquidity"`
}
