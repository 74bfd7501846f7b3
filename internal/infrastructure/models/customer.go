package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerID      string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName       string     `gorm:"type:varchar(100);not null"`
	LastName        string     `gorm:"type:varchar(100);not null"`
	Email           string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone           string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHash    string     `gorm:"type:varchar(255)"`
	FingerprintHash string     `gorm:"type:varchar(64);index"`
	FingerMappings  string     `gorm:"type:jsonb;default:'[]'"`
	Balance         float64    `gorm:"type:decimal(18,2);not null;default:0"`
	VaultBalance    float64    `gorm:"type:decimal(18,2);not null;default:0"`
	Transactions    string     `gorm:"type:jsonb;default:'[]'"`
	IsActive        bool       `gorm:"not null;default:true"`
	IsVerified      bool       `gorm:"not null;default:false"`
	EnrolledByID    *uuid.UUID `gorm:"type:uuid;index"` // Nullable
	EnrollmentDate  time.Time
	MonthlyBudget   float64 `gorm:"type:decimal(18,2);default:0"`
	Version         int64   `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
