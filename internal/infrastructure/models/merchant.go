package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Merchant struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID        string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	BusinessName      string    `gorm:"type:varchar(255);not null"`
	BusinessType      string    `gorm:"type:varchar(50);not null"`
	OwnerName         string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone             string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Balance           float64   `gorm:"type:decimal(18,2);not null;default:0"`
	TotalSales        float64   `gorm:"type:decimal(18,2);not null;default:0"`
	TotalTransactions int64     `gorm:"not null;default:0"`
	SalesAnalytics    string    `gorm:"type:jsonb;default:'{}'"`
	CreditScore       int       `gorm:"not null;default:0"`
	CreditLimit       float64   `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive          bool      `gorm:"not null;default:true"`
	IsVerified        bool      `gorm:"not null;default:false"`
	Version           int64     `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}
