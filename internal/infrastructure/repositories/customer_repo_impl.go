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

// CustomerRepository implements customer data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	m, err := customerToModel(customer)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	return nil
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m)
}

// GetByEmail gets a customer by email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*entities.Customer, error) {
	var m models.Customer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m)
}

// ExistsByEmailOrPhone reports whether a customer already uses email or phone
func (r *CustomerRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Customer{}).
		Where("email = ? OR phone = ?", email, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile persists profile fields. Balance fields are deliberately
// excluded; only transaction processing writes those.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, customer *entities.Customer) error {
	mappings, err := json.Marshal(mappingsToRecords(customer.FingerMappings))
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"first_name":       customer.FirstName,
			"last_name":        customer.LastName,
			"phone":            customer.Phone,
			"monthly_budget":   customer.MonthlyBudget,
			"finger_mappings":  string(mappings),
			"fingerprint_hash": customer.FingerprintHash,
			"is_verified":      customer.IsVerified,
			"is_active":        customer.IsActive,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateBalances applies a compare-and-swap balance write keyed on version
func (r *CustomerRepository) UpdateBalances(ctx context.Context, id uuid.UUID, balance, vaultBalance float64, expectedVersion int64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"balance":       balance,
			"vault_balance": vaultBalance,
			"version":       expectedVersion + 1,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConcurrentUpdate
	}
	return nil
}

// AppendTransaction appends a transaction id to the customer's history
func (r *CustomerRepository) AppendTransaction(ctx context.Context, id uuid.UUID, transactionID string) error {
	db := GetDB(ctx, r.db)

	var m models.Customer
	if err := db.WithContext(ctx).Select("id", "transactions").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}

	var history []string
	if m.Transactions != "" {
		if err := json.Unmarshal([]byte(m.Transactions), &history); err != nil {
			return err
		}
	}
	history = append(history, transactionID)
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transactions": string(raw),
			"updated_at":   time.Now(),
		}).Error
}

// ListByAgent lists customers enrolled by an agent with pagination
func (r *CustomerRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, limit, offset int) ([]*entities.Customer, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Customer{}).
		Where("enrolled_by_id = ?", agentID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Customer
	if err := db.WithContext(ctx).
		Where("enrolled_by_id = ?", agentID).
		Order("enrollment_date DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*entities.Customer, 0, len(ms))
	for i := range ms {
		c, err := customerToEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, nil
}

// CountByAgent counts customers enrolled by an agent
func (r *CustomerRepository) CountByAgent(ctx context.Context, agentID uuid.UUID, activeOnly bool) (int64, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Customer{}).Where("enrolled_by_id = ?", agentID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// fingerMappingRecord is the storage shape of a finger mapping. The entity
// hides FingerHash from API output, so persistence needs its own tags.
type fingerMappingRecord struct {
	FingerName    string `json:"fingerName"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	FingerHash    string `json:"fingerHash,omitempty"`
	IsPanicFinger bool   `json:"isPanicFinger"`
	IsVaultFinger bool   `json:"isVaultFinger"`
}

func mappingsToRecords(mappings []entities.FingerMapping) []fingerMappingRecord {
	records := make([]fingerMappingRecord, 0, len(mappings))
	for _, m := range mappings {
		records = append(records, fingerMappingRecord{
			FingerName:    string(m.FingerName),
			BankName:      m.BankName,
			AccountNumber: m.AccountNumber,
			FingerHash:    m.FingerHash,
			IsPanicFinger: m.IsPanicFinger,
			IsVaultFinger: m.IsVaultFinger,
		})
	}
	return records
}

func recordsToMappings(records []fingerMappingRecord) []entities.FingerMapping {
	mappings := make([]entities.FingerMapping, 0, len(records))
	for _, r := range records {
		mappings = append(mappings, entities.FingerMapping{
			FingerName:    entities.FingerName(r.FingerName),
			BankName:      r.BankName,
			AccountNumber: r.AccountNumber,
			FingerHash:    r.FingerHash,
			IsPanicFinger: r.IsPanicFinger,
			IsVaultFinger: r.IsVaultFinger,
		})
	}
	return mappings
}

func customerToModel(c *entities.Customer) (*models.Customer, error) {
	mappings, err := json.Marshal(mappingsToRecords(c.FingerMappings))
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(c.TransactionIDs)
	if err != nil {
		return nil, err
	}

	return &models.Customer{
		ID:              c.ID,
		CustomerID:      c.CustomerID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		PasswordHash:    c.PasswordHash,
		FingerprintHash: c.FingerprintHash,
		FingerMappings:  string(mappings),
		Balance:         c.Balance,
		VaultBalance:    c.VaultBalance,
		Transactions:    string(history),
		IsActive:        c.IsActive,
		IsVerified:      c.IsVerified,
		EnrolledByID:    c.EnrolledByID,
		EnrollmentDate:  c.EnrollmentDate,
		MonthlyBudget:   c.MonthlyBudget,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}, nil
}

func customerToEntity(m *models.Customer) (*entities.Customer, error) {
	var records []fingerMappingRecord
	if m.FingerMappings != "" {
		if err := json.Unmarshal([]byte(m.FingerMappings), &records); err != nil {
			return nil, err
		}
	}
	mappings := recordsToMappings(records)
	if len(mappings) == 0 {
		mappings = nil
	}
	var history []string
	if m.Transactions != "" {
		if err := json.Unmarshal([]byte(m.Transactions), &history); err != nil {
			return nil, err
		}
	}

	return &entities.Customer{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		PasswordHash:    m.PasswordHash,
		FingerprintHash: m.FingerprintHash,
		FingerMappings:  mappings,
		Balance:         m.Balance,
		VaultBalance:    m.VaultBalance,
		TransactionIDs:  history,
		IsActive:        m.IsActive,
		IsVerified:      m.IsVerified,
		EnrolledByID:    m.EnrolledByID,
		EnrollmentDate:  m.EnrollmentDate,
		MonthlyBudget:   m.MonthlyBudget,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}
