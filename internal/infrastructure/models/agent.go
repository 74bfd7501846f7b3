package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Agent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AgentID      string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Tier         string    `gorm:"type:varchar(10);not null;default:'AG-LV1'"`
	Commission   string    `gorm:"type:jsonb;default:'{}'"`
	Performance  string    `gorm:"type:jsonb;default:'{}'"`
	Balance      float64   `gorm:"type:decimal(18,2);not null;default:0"`
	Liquidity    string    `gorm:"type:jsonb;default:'{}'"`
	IsActive     bool      `gorm:"not null;default:true"`
	Version      int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
