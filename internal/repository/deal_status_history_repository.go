package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"gorm.io/gorm"
)

type DealStatusHistoryRepository struct {
	db *gorm.DB
}

func NewDealStatusHistoryRepository(db *gorm.DB) *DealStatusHistoryRepository {
	return &DealStatusHistoryRepository{db: db}
}

// Create records a transition. Transitions taken through the deal
// repository's atomic path insert their row inside that transaction; this
// exists for callers that only need the audit trail.
func (r *DealStatusHistoryRepository) Create(ctx context.Context, history *domain.DealStatusHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// GetByDealID returns the full trail for a deal, newest change first.
func (r *DealStatusHistoryRepository) GetByDealID(ctx context.Context, dealID uuid.UUID) ([]domain.DealStatusHistory, error) {
	var history []domain.DealStatusHistory
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}

// GetLatestByDealID returns the most recent transition for a deal.
func (r *DealStatusHistoryRepository) GetLatestByDealID(ctx context.Context, dealID uuid.UUID) (*domain.DealStatusHistory, error) {
	var history domain.DealStatusHistory
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("changed_at DESC").
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// GetTransitionsToStatus returns transitions into a status within a date
// range, for reporting.
func (r *DealStatusHistoryRepository) GetTransitionsToStatus(ctx context.Context, status domain.DealStatus, from, to time.Time) ([]domain.DealStatusHistory, error) {
	var history []domain.DealStatusHistory
	err := r.db.WithContext(ctx).
		Preload("Deal").
		Where("to_status = ?", status).
		Where("changed_at >= ? AND changed_at <= ?", from, to).
		Order("changed_at DESC").
		Find(&history).Error
	return history, err
}

// CountBySource returns how many transitions each source produced within a
// date range. Distinguishes explicit saves, upload auto-advances, and
// admin moves.
func (r *DealStatusHistoryRepository) CountBySource(ctx context.Context, from, to time.Time) (map[domain.TransitionSource]int64, error) {
	type result struct {
		Source domain.TransitionSource
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).Model(&domain.DealStatusHistory{}).
		Select("source, COUNT(*) as count").
		Where("changed_at >= ? AND changed_at <= ?", from, to).
		Group("source").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.TransitionSource]int64)
	for _, row := range results {
		counts[row.Source] = row.Count
	}
	return counts, nil
}

// DeleteByDealID removes all history for a deal.
func (r *DealStatusHistoryRepository) DeleteByDealID(ctx context.Context, dealID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Delete(&domain.DealStatusHistory{}).Error
}
