package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"gorm.io/gorm"
)

type RepRepository struct {
	db *gorm.DB
}

func NewRepRepository(db *gorm.DB) *RepRepository {
	return &RepRepository{db: db}
}

func (r *RepRepository) Create(ctx context.Context, rep *domain.Rep) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *RepRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rep, error) {
	var rep domain.Rep
	err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *RepRepository) GetByEmail(ctx context.Context, email string) (*domain.Rep, error) {
	var rep domain.Rep
	err := r.db.WithContext(ctx).First(&rep, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// List returns reps ordered by name. Inactive reps are excluded unless
// asked for; their deals stay visible either way.
func (r *RepRepository) List(ctx context.Context, includeInactive bool) ([]domain.Rep, error) {
	var reps []domain.Rep
	query := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&reps).Error
	return reps, err
}

func (r *RepRepository) Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error {
	if len(cols) == 0 {
		return nil
	}
	updates := make(map[string]interface{}, len(cols)+1)
	for k, v := range cols {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&domain.Rep{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
