package usecases

import "math"

// Fee configuration
const DefaultFeePercent = 0.5 // 0.5%

// Credit limit steps (NGN)
const (
	CreditLimitTier1 = 5_000_000
	CreditLimitTier2 = 2_000_000
	CreditLimitTier3 = 1_000_000
	CreditLimitTier4 = 500_000
)

// Agent tier registration thresholds
const (
	Tier5Registrations = 1000
	Tier4Registrations = 500
	Tier3Registrations = 250
	Tier2Registrations = 100
)

// roundMoney rounds to 2 decimal places, half away from zero
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// feeFor computes the transaction fee for any type. Vault movements record
// the fee like every other entry; completion still moves only the amount
// between spendable and vault.
func feeFor(amount, feePercent float64) float64 {
	return roundMoney(amount * feePercent / 100)
}
