package entities

import (
	"time"

	"github.com/google/uuid"
)

// FingerName identifies a biometric slot
type FingerName string

const (
	FingerLeftThumb   FingerName = "left_thumb"
	FingerLeftIndex   FingerName = "left_index"
	FingerLeftMiddle  FingerName = "left_middle"
	FingerLeftRing    FingerName = "left_ring"
	FingerLeftPinky   FingerName = "left_pinky"
	FingerRightThumb  FingerName = "right_thumb"
	FingerRightIndex  FingerName = "right_index"
	FingerRightMiddle FingerName = "right_middle"
	FingerRightRing   FingerName = "right_ring"
	FingerRightPinky  FingerName = "right_pinky"
)

// ValidFingerNames lists every biometric slot.
var ValidFingerNames = []FingerName{
	FingerLeftThumb, FingerLeftIndex, FingerLeftMiddle, FingerLeftRing, FingerLeftPinky,
	FingerRightThumb, FingerRightIndex, FingerRightMiddle, FingerRightRing, FingerRightPinky,
}

// IsValid reports whether f is a recognized finger slot.
func (f FingerName) IsValid() bool {
	for _, v := range ValidFingerNames {
		if f == v {
			return true
		}
	}
	return false
}

// FingerMapping links one finger slot to a bank account. At most one
// mapping exists per slot on a customer.
type FingerMapping struct {
	FingerName    FingerName `json:"fingerName"`
	BankName      string     `json:"bankName,omitempty"`
	AccountNumber string     `json:"accountNumber,omitempty"`
	FingerHash    string     `json:"-"`
	IsPanicFinger bool       `json:"isPanicFinger"`
	IsVaultFinger bool       `json:"isVaultFinger"`
}

// Customer represents a customer account. Balance and VaultBalance are
// authoritative and only ever mutated through transaction processing.
type Customer struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      string          `json:"customerId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PasswordHash    string          `json:"-"`
	FingerprintHash string          `json:"-"`
	FingerMappings  []FingerMapping `json:"fingerMapping,omitempty"`
	Balance         float64         `json:"balance"`
	VaultBalance    float64         `json:"vaultBalance"`
	TransactionIDs  []string        `json:"transactions,omitempty"`
	IsActive        bool            `json:"isActive"`
	IsVerified      bool            `json:"isVerified"`
	EnrolledByID    *uuid.UUID      `json:"enrolledBy,omitempty"`
	EnrollmentDate  time.Time       `json:"enrollmentDate"`
	MonthlyBudget   float64         `json:"monthlyBudget"`
	Version         int64           `json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// MappingFor returns the finger mapping for the given slot, if any.
func (c *Customer) MappingFor(finger FingerName) *FingerMapping {
	for i := range c.FingerMappings {
		if c.FingerMappings[i].FingerName == finger {
			return &c.FingerMappings[i]
		}
	}
	return nil
}

// RegisterCustomerInput is the self-service registration payload
type RegisterCustomerInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// FingerMappingInput is one slot assignment in an enrollment request
type FingerMappingInput struct {
	FingerName    string `json:"fingerName" binding:"required"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	FingerData    string `json:"fingerData,omitempty"`
	IsPanicFinger bool   `json:"isPanicFinger"`
	IsVaultFinger bool   `json:"isVaultFinger"`
}

// EnrollCustomerInput is the agent-assisted biometric enrollment payload
type EnrollCustomerInput struct {
	FirstName     string               `json:"firstName" binding:"required"`
	LastName      string               `json:"lastName" binding:"required"`
	Email         string               `json:"email" binding:"required"`
	Phone         string               `json:"phone" binding:"required"`
	FingerID      string               `json:"fingerId" binding:"required"`
	FingerMapping []FingerMappingInput `json:"fingerMapping,omitempty"`
}

// VerifyBiometricInput is a standalone biometric check. The capture is
// matched against the main enrollment print, then against the mapped slot
// named by FingerName when one is given.
type VerifyBiometricInput struct {
	FingerID   string `json:"fingerId" binding:"required"`
	FingerName string `json:"fingerName,omitempty"`
}

// CustomerSummary is the public projection returned by biometric verification
type CustomerSummary struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   string    `json:"customerId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Balance      float64   `json:"balance"`
	VaultBalance float64   `json:"vaultBalance"`
}

// Summary returns the public projection of c.
func (c *Customer) Summary() *CustomerSummary {
	return &CustomerSummary{
		ID:           c.ID,
		CustomerID:   c.CustomerID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Balance:      c.Balance,
		VaultBalance: c.VaultBalance,
	}
}

// BiometricVerification is the result of a successful biometric check.
// FingerDetails is set when the capture matched a mapped slot rather than
// the main enrollment print.
type BiometricVerification struct {
	Verified      bool             `json:"verified"`
	Customer      *CustomerSummary `json:"customer"`
	FingerDetails *FingerMapping   `json:"fingerDetails,omitempty"`
}

// UpdateCustomerInput holds the profile fields a customer may change.
// Balance, vault balance and biometric fields are deliberately absent;
// the handler rejects attempts to set them.
type UpdateCustomerInput struct {
	FirstName     string  `json:"firstName,omitempty"`
	LastName      string  `json:"lastName,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	MonthlyBudget float64 `json:"monthlyBudget,omitempty"`
}
