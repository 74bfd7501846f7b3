package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/infrastructure/models"
)

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	analytics, err := json.Marshal(merchant.SalesAnalytics)
	if err != nil {
		return err
	}

	m := &models.Merchant{
		ID:                merchant.ID,
		MerchantID:        merchant.MerchantID,
		BusinessName:      merchant.BusinessName,
		BusinessType:      merchant.BusinessType,
		OwnerName:         merchant.OwnerName,
		Email:             merchant.Email,
		Phone:             merchant.Phone,
		PasswordHash:      merchant.PasswordHash,
		Balance:           merchant.Balance,
		TotalSales:        merchant.TotalSales,
		TotalTransactions: merchant.TotalTransactions,
		SalesAnalytics:    string(analytics),
		CreditScore:       merchant.CreditScore,
		CreditLimit:       merchant.CreditLimit,
		IsActive:          merchant.IsActive,
		IsVerified:        merchant.IsVerified,
		Version:           merchant.Version,
		CreatedAt:         merchant.CreatedAt,
		UpdatedAt:         merchant.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	merchant.ID = m.ID
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m)
}

// GetByEmail gets a merchant by email
func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m)
}

// ExistsByEmailOrPhone reports whether a merchant already uses email or phone
func (r *MerchantRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFinancials applies a compare-and-swap write of balance, sales
// counters and analytics keyed on version
func (r *MerchantRepository) UpdateFinancials(ctx context.Context, id uuid.UUID, balance, totalSales float64, totalTransactions int64, analytics entities.SalesAnalytics, expectedVersion int64) error {
	raw, err := json.Marshal(analytics)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"balance":            balance,
			"total_sales":        totalSales,
			"total_transactions": totalTransactions,
			"sales_analytics":    string(raw),
			"version":            expectedVersion + 1,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConcurrentUpdate
	}
	return nil
}

// UpdateCredit persists a recomputed credit score and limit
func (r *MerchantRepository) UpdateCredit(ctx context.Context, id uuid.UUID, creditScore int, creditLimit float64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credit_score": creditScore,
			"credit_limit": creditLimit,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func merchantToEntity(m *models.Merchant) (*entities.Merchant, error) {
	var analytics entities.SalesAnalytics
	if m.SalesAnalytics != "" {
		if err := json.Unmarshal([]byte(m.SalesAnalytics), &analytics); err != nil {
			return nil, err
		}
	}

	return &entities.Merchant{
		ID:                m.ID,
		MerchantID:        m.MerchantID,
		BusinessName:      m.BusinessName,
		BusinessType:      m.BusinessType,
		OwnerName:         m.OwnerName,
		Email:             m.Email,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Balance:           m.Balance,
		TotalSales:        m.TotalSales,
		TotalTransactions: m.TotalTransactions,
		SalesAnalytics:    analytics,
		CreditScore:       m.CreditScore,
		CreditLimit:       m.CreditLimit,
		IsActive:          m.IsActive,
		IsVerified:        m.IsVerified,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}
