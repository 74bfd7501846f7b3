package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails (highly unlikely)
		return uuid.New()
	}
	return id
}

func publicID(prefix string) string {
	return fmt.Sprintf("%s%d%03d", prefix, time.Now().UnixMilli(), rand.Intn(1000))
}

// NewTransactionID returns a new public transaction reference
func NewTransactionID() string {
	return publicID("FP")
}

// NewCustomerID returns a new public customer reference
func NewCustomerID() string {
	return publicID("CU")
}

// NewMerchantID returns a new public merchant reference
func NewMerchantID() string {
	return publicID("MC")
}

// NewAgentID returns a new public agent reference
func NewAgentID() string {
	return publicID("AG")
}
