package usecases

import "fingerpay.backend/internal/domain/entities"

// balanceDeltas is the per-type value movement applied at completion.
// Reversal applies the exact negation, which keeps complete/reverse
// symmetric by construction.
type balanceDeltas struct {
	Customer float64 // customer spendable balance
	Vault    float64 // customer vault balance
	Merchant float64 // merchant balance (payment only)
}

// deltasFor looks up the movement for a transaction. The fee is retained by
// the platform: the merchant is credited amount, never totalAmount.
func deltasFor(txn *entities.Transaction) balanceDeltas {
	switch txn.Type {
	case entities.TransactionTypePayment:
		return balanceDeltas{Customer: -txn.TotalAmount, Merchant: txn.Amount}
	case entities.TransactionTypeVaultDeposit:
		return balanceDeltas{Customer: -txn.Amount, Vault: txn.Amount}
	case entities.TransactionTypeVaultWithdrawal:
		return balanceDeltas{Customer: txn.Amount, Vault: -txn.Amount}
	default:
		// withdrawal, transfer, airtime, data, bills: the customer is
		// debited in full. A transfer receiver is never credited here.
		return balanceDeltas{Customer: -txn.TotalAmount}
	}
}

// negate returns the inverse movement for reversal.
func (d balanceDeltas) negate() balanceDeltas {
	return balanceDeltas{
		Customer: -d.Customer,
		Vault:    -d.Vault,
		Merchant: -d.Merchant,
	}
}
