package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/mapper"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

// awaitingQueueLimit caps the deal list on the dashboard; counts are exact.
const awaitingQueueLimit = 25

// DashboardService builds the office rollup: deal counts per status and
// phase plus the queue of deals parked on an admin step.
type DashboardService struct {
	dealRepo *repository.DealRepository
	engine   *workflow.Engine
	logger   *zap.Logger
}

func NewDashboardService(dealRepo *repository.DealRepository, engine *workflow.Engine, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		dealRepo: dealRepo,
		engine:   engine,
		logger:   logger,
	}
}

// GetPipelineSummary returns deal counts in pipeline order. Statuses with
// no deals still appear with a zero count so the board renders every
// column. Admin only.
func (s *DashboardService) GetPipelineSummary(ctx context.Context) (*domain.PipelineSummaryDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	counts, err := s.dealRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count deals by status: %w", err)
	}

	pipeline := s.engine.Pipeline()
	milestones := pipeline.Milestones()

	summary := &domain.PipelineSummaryDTO{
		Statuses: make([]domain.StatusCountDTO, 0, len(milestones)),
		Phases:   make([]domain.PhaseCountDTO, 0, 4),
	}
	phaseIdx := make(map[domain.DealPhase]int)
	for _, m := range milestones {
		count := counts[m.Status]
		summary.TotalDeals += count
		summary.Statuses = append(summary.Statuses, domain.StatusCountDTO{
			Status: m.Status,
			Label:  m.Label,
			Count:  count,
		})
		idx, seen := phaseIdx[m.Phase]
		if !seen {
			phaseIdx[m.Phase] = len(summary.Phases)
			summary.Phases = append(summary.Phases, domain.PhaseCountDTO{Phase: m.Phase, Count: count})
		} else {
			summary.Phases[idx].Count += count
		}
	}

	gated := pipeline.AdminGatedStatuses()
	for _, status := range gated {
		summary.AwaitingAdminCount += counts[status]
	}

	waiting, err := s.dealRepo.ListByStatuses(ctx, gated, awaitingQueueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals awaiting admin: %w", err)
	}
	summary.AwaitingAdmin = make([]domain.DealDTO, 0, len(waiting))
	for i := range waiting {
		summary.AwaitingAdmin = append(summary.AwaitingAdmin, mapper.ToDealDTO(&waiting[i]))
	}

	return summary, nil
}
