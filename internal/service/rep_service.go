package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/mapper"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
)

type RepService struct {
	repRepo  *repository.RepRepository
	dealRepo *repository.DealRepository
	logger   *zap.Logger
}

func NewRepService(repRepo *repository.RepRepository, dealRepo *repository.DealRepository, logger *zap.Logger) *RepService {
	return &RepService{
		repRepo:  repRepo,
		dealRepo: dealRepo,
		logger:   logger,
	}
}

// CreateRep registers a new sales rep. Admin only.
func (s *RepService) CreateRep(ctx context.Context, req *domain.CreateRepRequest) (*domain.RepDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check rep email: %w", err)
	}

	level := req.CommissionLevel
	if level == "" {
		level = domain.CommissionLevelJunior
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown commission level %q", ErrInvalidInput, level)
	}

	rep := &domain.Rep{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CommissionLevel: level,
		Active:          true,
	}
	if req.DefaultCommissionPercent != nil {
		rep.DefaultCommissionPercent = *req.DefaultCommissionPercent
	}

	if err := s.repRepo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to create rep: %w", err)
	}

	dto := mapper.ToRepDTO(rep, 0)
	return &dto, nil
}

// GetRep returns a rep with their deal count.
func (s *RepService) GetRep(ctx context.Context, id uuid.UUID) (*domain.RepDTO, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rep: %w", err)
	}

	count, err := s.dealRepo.CountByRep(ctx, rep.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals for rep: %w", err)
	}

	dto := mapper.ToRepDTO(rep, count)
	return &dto, nil
}

// ListReps returns reps ordered by name. Inactive reps are included only
// when asked for.
func (s *RepService) ListReps(ctx context.Context, includeInactive bool) ([]domain.RepDTO, error) {
	reps, err := s.repRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list reps: %w", err)
	}

	dtos := make([]domain.RepDTO, 0, len(reps))
	for i := range reps {
		count, err := s.dealRepo.CountByRep(ctx, reps[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count deals for rep: %w", err)
		}
		dtos = append(dtos, mapper.ToRepDTO(&reps[i], count))
	}
	return dtos, nil
}

// UpdateRep changes a rep's profile or commission configuration. Admin
// only; commission changes never rewrite amounts already recorded on deals.
func (s *RepService) UpdateRep(ctx context.Context, id uuid.UUID, req *domain.UpdateRepRequest) (*domain.RepDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	cols := make(map[string]interface{})
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Phone != nil {
		cols["phone"] = *req.Phone
	}
	if req.CommissionLevel != nil {
		if !req.CommissionLevel.IsValid() {
			return nil, fmt.Errorf("%w: unknown commission level %q", ErrInvalidInput, *req.CommissionLevel)
		}
		cols["commission_level"] = *req.CommissionLevel
	}
	if req.DefaultCommissionPercent != nil {
		cols["default_commission_percent"] = *req.DefaultCommissionPercent
	}
	if req.Active != nil {
		cols["active"] = *req.Active
	}

	if len(cols) > 0 {
		if err := s.repRepo.Update(ctx, id, cols); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to update rep: %w", err)
		}
	}

	return s.GetRep(ctx, id)
}
