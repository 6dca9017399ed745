package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRevisionConflict reports a guarded update that matched the deal id but
// not the expected revision: another writer got there first and the caller
// is holding a stale copy.
var ErrRevisionConflict = errors.New("deal revision conflict")

// DealFilters contains all filter options for listing deals. Phase and
// awaiting-admin filters arrive here already resolved to status sets; the
// repository has no knowledge of the pipeline tables.
type DealFilters struct {
	Statuses      []domain.DealStatus
	RepID         *uuid.UUID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	SearchQuery   *string
}

// DealSortOption represents available sort options
type DealSortOption string

const (
	DealSortByCreatedDesc   DealSortOption = "created_desc"
	DealSortByCreatedAsc    DealSortOption = "created_asc"
	DealSortByUpdatedDesc   DealSortOption = "updated_desc"
	DealSortByHomeownerAsc  DealSortOption = "homeowner_asc"
	DealSortByHomeownerDesc DealSortOption = "homeowner_desc"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	// Omit associations to avoid GORM trying to validate related records
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(deal).Error
}

func (r *DealRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Rep").
		Preload("DealCommissions").
		Where("id = ?", id).
		First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) List(ctx context.Context, page, pageSize int, filters *DealFilters, sortBy DealSortOption) ([]domain.Deal, int64, error) {
	var deals []domain.Deal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Preload("Rep").
		Preload("DealCommissions")

	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applySorting(query, sortBy)

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&deals).Error

	return deals, total, err
}

// ListByStatuses returns every deal sitting at one of the given statuses,
// longest-parked first. Used for the awaiting-admin queue.
func (r *DealRepository) ListByStatuses(ctx context.Context, statuses []domain.DealStatus, limit int) ([]domain.Deal, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	var deals []domain.Deal
	query := r.db.WithContext(ctx).
		Preload("Rep").
		Preload("DealCommissions").
		Where("status IN ?", statuses).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&deals).Error
	return deals, err
}

// ListStale returns deals parked at one of the given statuses with no
// writes since the cutoff. Feeds the reminder job.
func (r *DealRepository) ListStale(ctx context.Context, statuses []domain.DealStatus, updatedBefore time.Time) ([]domain.Deal, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Rep").
		Where("status IN ?", statuses).
		Where("updated_at < ?", updatedBefore).
		Order("updated_at ASC").
		Find(&deals).Error
	return deals, err
}

// CountByStatus returns the number of deals at each status.
func (r *DealRepository) CountByStatus(ctx context.Context) (map[domain.DealStatus]int64, error) {
	type result struct {
		Status domain.DealStatus
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.DealStatus]int64)
	for _, row := range results {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountByRep returns the number of deals owned by a rep.
func (r *DealRepository) CountByRep(ctx context.Context, repID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Deal{}).
		Where("rep_id = ?", repID).
		Count(&count).Error
	return count, err
}

// UpdateWithRevision applies a partial update guarded by the expected
// revision. The revision increments on success; a miss is classified as
// either a missing deal or a stale write.
func (r *DealRepository) UpdateWithRevision(ctx context.Context, id uuid.UUID, revision int64, cols map[string]interface{}) error {
	if len(cols) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(cols)+2)
	for k, v := range cols {
		updates[k] = v
	}
	updates["revision"] = gorm.Expr("revision + 1")
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&domain.Deal{}).
		Where("id = ? AND revision = ?", id, revision).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.classifyMiss(ctx, r.db, id)
	}
	return nil
}

// TransitionRecord is one atomic forward move: the patch columns, the new
// status, the arrival stamp, and the history row all land in a single
// transaction or not at all.
type TransitionRecord struct {
	DealID   uuid.UUID
	Revision int64
	Columns  map[string]interface{}

	ToStatus    domain.DealStatus
	StampColumn string
	OccurredAt  time.Time

	// MarkCommissionPaid closes out the commission record alongside the
	// final transition.
	MarkCommissionPaid bool

	History domain.DealStatusHistory
}

func (r *DealRepository) Transition(ctx context.Context, rec TransitionRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{}, len(rec.Columns)+4)
		for k, v := range rec.Columns {
			updates[k] = v
		}
		updates["status"] = rec.ToStatus
		if rec.StampColumn != "" {
			updates[rec.StampColumn] = rec.OccurredAt
		}
		updates["revision"] = gorm.Expr("revision + 1")
		updates["updated_at"] = time.Now()

		res := tx.Model(&domain.Deal{}).
			Where("id = ? AND revision = ?", rec.DealID, rec.Revision).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.classifyMiss(ctx, tx, rec.DealID)
		}

		if rec.MarkCommissionPaid {
			err := tx.Model(&domain.DealCommission{}).
				Where("deal_id = ? AND paid = ?", rec.DealID, false).
				Updates(map[string]interface{}{
					"paid":       true,
					"paid_date":  rec.OccurredAt,
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		history := rec.History
		history.DealID = rec.DealID
		history.ToStatus = rec.ToStatus
		return tx.Create(&history).Error
	})
}

// UpsertCommission creates or overwrites the deal's commission record.
// Deals carry at most one.
func (r *DealRepository) UpsertCommission(ctx context.Context, commission *domain.DealCommission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.DealCommission
		err := tx.Where("deal_id = ?", commission.DealID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(commission).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"commission_percent": commission.CommissionPercent,
			"commission_amount":  commission.CommissionAmount,
			"updated_at":         time.Now(),
		}
		if err := tx.Model(&domain.DealCommission{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return err
		}
		commission.ID = existing.ID
		return nil
	})
}

// WithTransaction executes operations within a transaction
func (r *DealRepository) WithTransaction(ctx context.Context, fn func(*gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// classifyMiss distinguishes "deal is gone" from "deal moved on" after a
// zero-row guarded update.
func (r *DealRepository) classifyMiss(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Deal{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrRevisionConflict
}

// applyFilters applies all filter criteria to the query
func (r *DealRepository) applyFilters(query *gorm.DB, filters *DealFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if len(filters.Statuses) > 0 {
		query = query.Where("status IN ?", filters.Statuses)
	}

	if filters.RepID != nil {
		query = query.Where("rep_id = ?", *filters.RepID)
	}

	if filters.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filters.CreatedAfter)
	}

	if filters.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filters.CreatedBefore)
	}

	if filters.SearchQuery != nil && *filters.SearchQuery != "" {
		searchPattern := "%" + strings.ToLower(*filters.SearchQuery) + "%"
		query = query.Where(
			"LOWER(homeowner_name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(claim_number) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	return query
}

// applySorting applies the sorting option to the query
func (r *DealRepository) applySorting(query *gorm.DB, sortBy DealSortOption) *gorm.DB {
	switch sortBy {
	case DealSortByCreatedAsc:
		return query.Order("created_at ASC")
	case DealSortByUpdatedDesc:
		return query.Order("updated_at DESC")
	case DealSortByHomeownerAsc:
		return query.Order("homeowner_name ASC")
	case DealSortByHomeownerDesc:
		return query.Order("homeowner_name DESC")
	default: // DealSortByCreatedDesc
		return query.Order("created_at DESC")
	}
}
