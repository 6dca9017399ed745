package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"gorm.io/gorm"
)

type DealFileRepository struct {
	db *gorm.DB
}

func NewDealFileRepository(db *gorm.DB) *DealFileRepository {
	return &DealFileRepository{db: db}
}

func (r *DealFileRepository) Create(ctx context.Context, file *domain.DealFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *DealFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DealFile, error) {
	var file domain.DealFile
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// GetByStorageKey resolves a stored file from its storage key. Used by the
// signed download route, which carries the key instead of the record id.
func (r *DealFileRepository) GetByStorageKey(ctx context.Context, storageKey string) (*domain.DealFile, error) {
	var file domain.DealFile
	err := r.db.WithContext(ctx).First(&file, "storage_key = ?", storageKey).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByDeal returns all files attached to a deal, newest first.
func (r *DealFileRepository) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]domain.DealFile, error) {
	var files []domain.DealFile
	err := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// ListByDealAndCategory narrows the listing to one upload category.
func (r *DealFileRepository) ListByDealAndCategory(ctx context.Context, dealID uuid.UUID, category domain.FileCategory) ([]domain.DealFile, error) {
	var files []domain.DealFile
	err := r.db.WithContext(ctx).
		Where("deal_id = ? AND category = ?", dealID, category).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// CountByDeal returns the count of files attached to a deal.
func (r *DealFileRepository) CountByDeal(ctx context.Context, dealID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DealFile{}).
		Where("deal_id = ?", dealID).
		Count(&count).Error
	return count, err
}

func (r *DealFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.DealFile{}, "id = ?", id).Error
}
