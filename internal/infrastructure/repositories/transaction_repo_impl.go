package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"fingerpay.backend/internal/domain/entities"
	domainerrors "fingerpay.backend/internal/domain/errors"
	"fingerpay.backend/internal/infrastructure/models"
)

// TransactionRepository implements ledger data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, txn *entities.Transaction) error {
	location, err := json.Marshal(txn.Location)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(txn.Metadata)
	if err != nil {
		return err
	}

	m := &models.Transaction{
		ID:            txn.ID,
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		CustomerID:    txn.CustomerID,
		MerchantID:    txn.MerchantID,
		AgentID:       txn.AgentID,
		Amount:        txn.Amount,
		Fee:           txn.Fee,
		TotalAmount:   txn.TotalAmount,
		FingerUsed:    txn.FingerUsed.Ptr(),
		Status:        string(txn.Status),
		Description:   txn.Description,
		Location:      string(location),
		DeviceID:      txn.DeviceID.Ptr(),
		Metadata:      string(metadata),
		InitiatedAt:   txn.InitiatedAt,
		CompletedAt:   txn.CompletedAt.Ptr(),
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	txn.ID = m.ID
	return nil
}

// GetByTransactionID gets a ledger entry by its public transaction id
func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m)
}

// UpdateStatus moves a ledger entry from one status to another, optionally
// recording completion time and merging metadata. The write is guarded on the
// current status: a row no longer in from is left untouched and the call
// returns ErrInvalidState, so a lost race can never overwrite a terminal state.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.TransactionStatus, completedAt *time.Time, metadata map[string]string) error {
	db := GetDB(ctx, r.db)

	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	if metadata != nil {
		var m models.Transaction
		if err := db.WithContext(ctx).Select("id", "metadata").Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		merged := map[string]string{}
		if m.Metadata != "" {
			if err := json.Unmarshal([]byte(m.Metadata), &merged); err != nil {
				return err
			}
		}
		if merged == nil {
			// a row created without metadata stores JSON null, which
			// unmarshals to a nil map
			merged = map[string]string{}
		}
		for k, v := range metadata {
			merged[k] = v
		}
		raw, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		updates["metadata"] = string(raw)
	}

	result := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInvalidState
	}
	return nil
}

// List lists ledger entries matching filter with pagination
func (r *TransactionRepository) List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db)

	q := db.WithContext(ctx).Model(&models.Transaction{})
	q = applyFilter(q, filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Transaction
	listQ := applyFilter(db.WithContext(ctx), filter).
		Order("initiated_at DESC").
		Limit(limit).Offset(offset)
	if err := listQ.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txns := make([]*entities.Transaction, 0, len(ms))
	for i := range ms {
		t, err := transactionToEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	return txns, total, nil
}

func applyFilter(q *gorm.DB, filter entities.TransactionFilter) *gorm.DB {
	if filter.Type != "" {
		q = q.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.MerchantID != nil {
		q = q.Where("merchant_id = ?", *filter.MerchantID)
	}
	if filter.StartDate != nil {
		q = q.Where("initiated_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("initiated_at <= ?", *filter.EndDate)
	}
	return q
}

type groupRow struct {
	ID          string
	Count       int64
	TotalAmount float64
}

// Stats aggregates the ledger by status, by type, and by total volume over
// an optional completion-date range
func (r *TransactionRepository) Stats(ctx context.Context, startDate, endDate *time.Time) (*entities.TransactionStats, error) {
	db := GetDB(ctx, r.db)

	dateScope := func(q *gorm.DB) *gorm.DB {
		if startDate != nil {
			q = q.Where("completed_at >= ?", *startDate)
		}
		if endDate != nil {
			q = q.Where("completed_at <= ?", *endDate)
		}
		return q
	}

	var statusRows []groupRow
	if err := dateScope(db.WithContext(ctx).Model(&models.Transaction{})).
		Select("status AS id, COUNT(*) AS count, COALESCE(SUM(amount),0) AS total_amount").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}

	var typeRows []groupRow
	if err := dateScope(db.WithContext(ctx).Model(&models.Transaction{})).
		Where("status = ?", string(entities.TransactionStatusCompleted)).
		Select("type AS id, COUNT(*) AS count, COALESCE(SUM(amount),0) AS total_amount").
		Group("type").
		Scan(&typeRows).Error; err != nil {
		return nil, err
	}

	var volume struct {
		TotalVolume      float64
		TotalFees        float64
		TransactionCount int64
	}
	if err := dateScope(db.WithContext(ctx).Model(&models.Transaction{})).
		Where("status = ?", string(entities.TransactionStatusCompleted)).
		Select("COALESCE(SUM(amount),0) AS total_volume, COALESCE(SUM(fee),0) AS total_fees, COUNT(*) AS transaction_count").
		Scan(&volume).Error; err != nil {
		return nil, err
	}

	stats := &entities.TransactionStats{
		StatusStats: make([]entities.GroupStat, 0, len(statusRows)),
		TypeStats:   make([]entities.GroupStat, 0, len(typeRows)),
		VolumeStats: entities.VolumeStat{
			TotalVolume:      volume.TotalVolume,
			TotalFees:        volume.TotalFees,
			TransactionCount: volume.TransactionCount,
		},
	}
	for _, row := range statusRows {
		stats.StatusStats = append(stats.StatusStats, entities.GroupStat{ID: row.ID, Count: row.Count, TotalAmount: row.TotalAmount})
	}
	for _, row := range typeRows {
		stats.TypeStats = append(stats.TypeStats, entities.GroupStat{ID: row.ID, Count: row.Count, TotalAmount: row.TotalAmount})
	}
	return stats, nil
}

// CountByMerchantSince counts completed merchant transactions since a time
func (r *TransactionRepository) CountByMerchantSince(ctx context.Context, merchantID uuid.UUID, since time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	var count int64
	err := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("merchant_id = ? AND status = ? AND completed_at >= ?", merchantID, string(entities.TransactionStatusCompleted), since).
		Count(&count).Error
	return count, err
}

// SumByMerchantSince sums completed merchant transaction amounts since a time
func (r *TransactionRepository) SumByMerchantSince(ctx context.Context, merchantID uuid.UUID, since time.Time) (float64, error) {
	db := GetDB(ctx, r.db)
	var total float64
	err := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("merchant_id = ? AND status = ? AND completed_at >= ?", merchantID, string(entities.TransactionStatusCompleted), since).
		Select("COALESCE(SUM(amount),0)").
		Scan(&total).Error
	return total, err
}

func transactionToEntity(m *models.Transaction) (*entities.Transaction, error) {
	var location entities.TransactionLocation
	if m.Location != "" {
		if err := json.Unmarshal([]byte(m.Location), &location); err != nil {
			return nil, err
		}
	}
	var metadata map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, err
		}
	}

	return &entities.Transaction{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Type:          entities.TransactionType(m.Type),
		CustomerID:    m.CustomerID,
		MerchantID:    m.MerchantID,
		AgentID:       m.AgentID,
		Amount:        m.Amount,
		Fee:           m.Fee,
		TotalAmount:   m.TotalAmount,
		FingerUsed:    null.StringFromPtr(m.FingerUsed),
		Status:        entities.TransactionStatus(m.Status),
		Description:   m.Description,
		Location:      location,
		DeviceID:      null.StringFromPtr(m.DeviceID),
		Metadata:      metadata,
		InitiatedAt:   m.InitiatedAt,
		CompletedAt:   null.TimeFromPtr(m.CompletedAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
