package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// TransactionType is the closed set of recognized transaction kinds
type TransactionType string

const (
	TransactionTypePayment         TransactionType = "payment"
	TransactionTypeWithdrawal      TransactionType = "withdrawal"
	TransactionTypeTransfer        TransactionType = "transfer"
	TransactionTypeVaultDeposit    TransactionType = "vault_deposit"
	TransactionTypeVaultWithdrawal TransactionType = "vault_withdrawal"
	TransactionTypeAirtime         TransactionType = "airtime"
	TransactionTypeData            TransactionType = "data"
	TransactionTypeBills           TransactionType = "bills"
)

// TransactionTypes lists every recognized type.
var TransactionTypes = []TransactionType{
	TransactionTypePayment,
	TransactionTypeWithdrawal,
	TransactionTypeTransfer,
	TransactionTypeVaultDeposit,
	TransactionTypeVaultWithdrawal,
	TransactionTypeAirtime,
	TransactionTypeData,
	TransactionTypeBills,
}

// IsValid reports whether t is one of the recognized transaction types.
func (t TransactionType) IsValid() bool {
	for _, v := range TransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// DebitsSpendableBalance reports whether initiation must check the
// customer's spendable balance against amount+fee.
func (t TransactionType) DebitsSpendableBalance() bool {
	switch t {
	case TransactionTypePayment, TransactionTypeWithdrawal, TransactionTypeVaultDeposit:
		return true
	}
	return false
}

// TransactionLocation holds optional geolocation captured at initiation
type TransactionLocation struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// Transaction represents a ledger entry. A transaction only records the
// account ids and amounts it touched; it never owns account state.
type Transaction struct {
	ID            uuid.UUID           `json:"id"`
	TransactionID string              `json:"transactionId"`
	Type          TransactionType     `json:"transactionType"`
	CustomerID    uuid.UUID           `json:"customerId"`
	MerchantID    *uuid.UUID          `json:"merchantId,omitempty"`
	AgentID       *uuid.UUID          `json:"agentId,omitempty"`
	Amount        float64             `json:"amount"`
	Fee           float64             `json:"fee"`
	TotalAmount   float64             `json:"totalAmount"`
	FingerUsed    null.String         `json:"fingerUsed,omitempty"`
	Status        TransactionStatus   `json:"status"`
	Description   string              `json:"description,omitempty"`
	Location      TransactionLocation `json:"location,omitempty"`
	DeviceID      null.String         `json:"deviceId,omitempty"`
	Metadata      map[string]string   `json:"metadata,omitempty"`
	InitiatedAt   time.Time           `json:"initiatedAt"`
	CompletedAt   null.Time           `json:"completedAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	// Joins
	Customer *Customer `json:"customer,omitempty"`
	Merchant *Merchant `json:"merchant,omitempty"`
	Agent    *Agent    `json:"agent,omitempty"`
}

// InitiateTransactionInput represents input for initiating a transaction
type InitiateTransactionInput struct {
	CustomerID      string              `json:"customerId" binding:"required"`
	MerchantID      string              `json:"merchantId,omitempty"`
	AgentID         string              `json:"agentId,omitempty"`
	TransactionType string              `json:"transactionType" binding:"required"`
	Amount          float64             `json:"amount" binding:"required"`
	FingerUsed      string              `json:"fingerUsed,omitempty"`
	FingerID        string              `json:"fingerId,omitempty"`
	Description     string              `json:"description,omitempty"`
	Location        TransactionLocation `json:"location,omitempty"`
	DeviceID        string              `json:"deviceId,omitempty"`
	Metadata        map[string]string   `json:"metadata,omitempty"`
}

// InitiateTransactionResult is what initiation returns. Exactly one of
// Transaction or IsPanicAlert is meaningful: a panic-slot match persists
// nothing and only raises the alert flag.
type InitiateTransactionResult struct {
	Transaction  *TransactionSummary `json:"transaction,omitempty"`
	IsPanicAlert bool                `json:"isPanicAlert,omitempty"`
}

// TransactionSummary is the public projection returned by initiate/complete
type TransactionSummary struct {
	TransactionID string            `json:"transactionId"`
	Type          TransactionType   `json:"transactionType"`
	Amount        float64           `json:"amount"`
	Fee           float64           `json:"fee"`
	TotalAmount   float64           `json:"totalAmount"`
	Status        TransactionStatus `json:"status"`
	InitiatedAt   time.Time         `json:"initiatedAt"`
	CompletedAt   null.Time         `json:"completedAt,omitempty"`
}

// Summary returns the public projection of t.
func (t *Transaction) Summary() *TransactionSummary {
	return &TransactionSummary{
		TransactionID: t.TransactionID,
		Type:          t.Type,
		Amount:        t.Amount,
		Fee:           t.Fee,
		TotalAmount:   t.TotalAmount,
		Status:        t.Status,
		InitiatedAt:   t.InitiatedAt,
		CompletedAt:   t.CompletedAt,
	}
}

// CompleteTransactionResult carries the completed transaction plus the
// customer's balances after the mutation.
type CompleteTransactionResult struct {
	Transaction     *TransactionSummary `json:"transaction"`
	NewBalance      float64             `json:"newBalance"`
	NewVaultBalance float64             `json:"newVaultBalance"`
}

// ReverseTransactionResult carries the reversed transaction plus the
// customer's restored balance.
type ReverseTransactionResult struct {
	Transaction *TransactionSummary `json:"transaction"`
	NewBalance  float64             `json:"newBalance"`
}

// TransactionFilter narrows ledger queries
type TransactionFilter struct {
	Type       TransactionType
	Status     TransactionStatus
	CustomerID *uuid.UUID
	MerchantID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// GroupStat is one aggregation bucket (by status or by type)
type GroupStat struct {
	ID          string  `json:"_id"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// VolumeStat aggregates completed volume and fees
type VolumeStat struct {
	TotalVolume      float64 `json:"totalVolume"`
	TotalFees        float64 `json:"totalFees"`
	TransactionCount int64   `json:"transactionCount"`
}

// TransactionStats is the stats/summary payload
type TransactionStats struct {
	StatusStats []GroupStat `json:"statusStats"`
	TypeStats   []GroupStat `json:"typeStats"`
	VolumeStats VolumeStat  `json:"volumeStats"`
}
