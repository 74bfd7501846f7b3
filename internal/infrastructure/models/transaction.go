package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TransactionID string     `gorm:"type:varchar(40);not null;uniqueIndex"`
	Type          string     `gorm:"type:varchar(30);not null;index"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	MerchantID    *uuid.UUID `gorm:"type:uuid;index"` // Nullable
	AgentID       *uuid.UUID `gorm:"type:uuid;index"` // Nullable
	Amount        float64    `gorm:"type:decimal(18,2);not null"`
	Fee           float64    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount   float64    `gorm:"type:decimal(18,2);not null"`
	FingerUsed    *string    `gorm:"type:varchar(20)"`
	Status        string     `gorm:"type:varchar(20);not null;index"`
	Description   string     `gorm:"type:text"`
	Location      string     `gorm:"type:jsonb;default:'{}'"`
	DeviceID      *string    `gorm:"type:varchar(40)"`
	Metadata      string     `gorm:"type:jsonb;default:'{}'"`
	InitiatedAt   time.Time  `gorm:"not null;index"`
	CompletedAt   *time.Time `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
