package usecases

import (
	"math"

	"fingerpay.backend/internal/domain/entities"
)

// ComputeCreditScore derives a 0-100 score from a merchant's rolling sales
// aggregates. Each component only ever adds, so the score is monotone in
// every input.
func ComputeCreditScore(analytics entities.SalesAnalytics, totalTransactions int64) int {
	score := 0.0

	switch {
	case analytics.AverageDailySales > 100_000:
		score += 30
	case analytics.AverageDailySales > 50_000:
		score += 20
	case analytics.AverageDailySales > 20_000:
		score += 10
	}

	score += analytics.ConsistencyScore * 0.3

	switch {
	case totalTransactions > 1000:
		score += 20
	case totalTransactions > 500:
		score += 15
	case totalTransactions > 100:
		score += 10
	}

	switch {
	case analytics.MonthlyGrowth > 20:
		score += 20
	case analytics.MonthlyGrowth > 10:
		score += 15
	case analytics.MonthlyGrowth > 5:
		score += 10
	}

	result := int(math.Round(score))
	if result > 100 {
		result = 100
	}
	return result
}

// CreditLimitFor maps a credit score to a loan-eligibility ceiling. A step
// function, never interpolated.
func CreditLimitFor(score int) float64 {
	switch {
	case score >= 80:
		return CreditLimitTier1
	case score >= 60:
		return CreditLimitTier2
	case score >= 40:
		return CreditLimitTier3
	case score >= 20:
		return CreditLimitTier4
	default:
		return 0
	}
}

// TierFor maps lifetime registrations to an agent tier.
func TierFor(totalRegistrations int64) entities.AgentTier {
	switch {
	case totalRegistrations >= Tier5Registrations:
		return entities.AgentTier5
	case totalRegistrations >= Tier4Registrations:
		return entities.AgentTier4
	case totalRegistrations >= Tier3Registrations:
		return entities.AgentTier3
	case totalRegistrations >= Tier2Registrations:
		return entities.AgentTier2
	default:
		return entities.AgentTier1
	}
}

// CommissionRateFor returns the fixed earnings schedule for a tier.
func CommissionRateFor(tier entities.AgentTier) entities.CommissionRate {
	switch tier {
	case entities.AgentTier5:
		return entities.CommissionRate{RegistrationFee: 1000, TransactionPercentage: 1.0}
	case entities.AgentTier4:
		return entities.CommissionRate{RegistrationFee: 900, TransactionPercentage: 0.8}
	case entities.AgentTier3:
		return entities.CommissionRate{RegistrationFee: 750, TransactionPercentage: 0.7}
	case entities.AgentTier2:
		return entities.CommissionRate{RegistrationFee: 600, TransactionPercentage: 0.6}
	default:
		return entities.CommissionRate{RegistrationFee: 500, TransactionPercentage: 0.5}
	}
}
