package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/mapper"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

type DealService struct {
	dealRepo         *repository.DealRepository
	repRepo          *repository.RepRepository
	historyRepo      *repository.DealStatusHistoryRepository
	notificationRepo *repository.NotificationRepository
	engine           *workflow.Engine
	calculator       *workflow.Calculator
	adminUserIDs     []uuid.UUID
	logger           *zap.Logger
}

// NewDealService creates a new deal service. adminUserIDs are the accounts
// that receive awaiting-admin notifications; an empty list disables them.
func NewDealService(
	dealRepo *repository.DealRepository,
	repRepo *repository.RepRepository,
	historyRepo *repository.DealStatusHistoryRepository,
	notificationRepo *repository.NotificationRepository,
	engine *workflow.Engine,
	calculator *workflow.Calculator,
	adminUserIDs []uuid.UUID,
	logger *zap.Logger,
) *DealService {
	return &DealService{
		dealRepo:         dealRepo,
		repRepo:          repRepo,
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		engine:           engine,
		calculator:       calculator,
		adminUserIDs:     adminUserIDs,
		logger:           logger,
	}
}

// DealListOptions are the query parameters accepted by ListDeals. Phase and
// AwaitingAdmin are resolved to status sets here; the repository only
// understands statuses.
type DealListOptions struct {
	Statuses      []domain.DealStatus
	Phase         *domain.DealPhase
	AwaitingAdmin bool
	RepID         *uuid.UUID
	Search        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	PageSize      int
	Sort          repository.DealSortOption
}

// AdvanceResult is an advance outcome plus the step evaluation that
// produced it.
type AdvanceResult struct {
	domain.AdvanceOutcomeDTO
	Check workflow.StepCheck `json:"check"`
}

// CreateDeal opens a new deal at the top of the pipeline. Homeowner name
// and address are the only hard requirements; everything else is collected
// as the deal moves.
func (s *DealService) CreateDeal(ctx context.Context, req *domain.CreateDealRequest) (*domain.DealDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	repID, err := s.resolveRepID(userCtx, req.RepID)
	if err != nil {
		return nil, err
	}

	rep, err := s.repRepo.GetByID(ctx, repID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: rep %s not found", ErrInvalidInput, repID)
		}
		return nil, fmt.Errorf("failed to verify rep: %w", err)
	}
	if !rep.Active {
		return nil, ErrRepInactive
	}

	deal := &domain.Deal{
		Status:         domain.DealStatusLead,
		Revision:       1,
		RepID:          rep.ID,
		RepName:        rep.Name,
		HomeownerName:  req.HomeownerName,
		HomeownerPhone: req.HomeownerPhone,
		HomeownerEmail: req.HomeownerEmail,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		RoofType:       req.RoofType,
	}

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	history := &domain.DealStatusHistory{
		DealID:        deal.ID,
		ToStatus:      domain.DealStatusLead,
		Source:        domain.TransitionSourceSave,
		ChangedByID:   userCtx.UserID.String(),
		ChangedByName: userCtx.DisplayName,
		ChangedByRole: userCtx.Role,
		ChangedAt:     time.Now().UTC(),
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		// Log but don't fail the operation
		s.logger.Warn("failed to record deal creation history",
			zap.Error(err),
			zap.String("deal_id", deal.ID.String()))
	}

	created, err := s.dealRepo.GetByID(ctx, deal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}

	dto := mapper.ToDealDTO(created)
	return &dto, nil
}

// GetDeal returns a deal with its commission records. Readable by every
// authenticated role.
func (s *DealService) GetDeal(ctx context.Context, id uuid.UUID) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	dto := mapper.ToDealDTO(deal)
	return &dto, nil
}

// ListDeals returns a filtered, sorted, paginated page of deals.
func (s *DealService) ListDeals(ctx context.Context, opts DealListOptions) (*domain.PaginatedResponse, error) {
	page := opts.Page
	pageSize := opts.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}

	for _, status := range opts.Statuses {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
	}

	statuses := opts.Statuses
	constrained := false
	if opts.Phase != nil {
		phaseStatuses := s.engine.Pipeline().StatusesInPhase(*opts.Phase)
		if len(phaseStatuses) == 0 {
			return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, *opts.Phase)
		}
		statuses = intersectStatuses(statuses, phaseStatuses)
		constrained = true
	}
	if opts.AwaitingAdmin {
		statuses = intersectStatuses(statuses, s.engine.Pipeline().AdminGatedStatuses())
		constrained = true
	}

	// An empty intersection means no deal can match. Passing an empty
	// status set to the repository would mean "no filter" instead.
	if constrained && len(statuses) == 0 {
		return &domain.PaginatedResponse{
			Data:     []domain.DealDTO{},
			Total:    0,
			Page:     page,
			PageSize: pageSize,
		}, nil
	}

	filters := &repository.DealFilters{
		Statuses:      statuses,
		RepID:         opts.RepID,
		CreatedAfter:  opts.CreatedAfter,
		CreatedBefore: opts.CreatedBefore,
		SearchQuery:   opts.Search,
	}

	deals, total, err := s.dealRepo.List(ctx, page, pageSize, filters, opts.Sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       mapper.ToDealDTOs(deals),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateDeal applies a free-form partial edit. Field edits never move the
// status; use AdvanceDeal for that. A supplied revision must match the
// stored row or the edit is rejected as a conflict.
func (s *DealService) UpdateDeal(ctx context.Context, id uuid.UUID, req *domain.UpdateDealRequest) (*domain.DealDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	if !userCtx.CanEditDeal(&deal.RepID) {
		return nil, ErrPermissionDenied
	}
	if userCtx.IsRep() && req.TouchesFinancials() && deal.FinancialsLocked() {
		return nil, ErrFinancialsLocked
	}

	cols := req.Columns()
	if len(cols) == 0 {
		dto := mapper.ToDealDTO(deal)
		return &dto, nil
	}

	expected := deal.Revision
	if req.Revision != nil {
		expected = *req.Revision
	}

	if err := s.dealRepo.UpdateWithRevision(ctx, id, expected, cols); err != nil {
		switch {
		case errors.Is(err, repository.ErrRevisionConflict):
			return nil, ErrRevisionConflict
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	updated, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}

	dto := mapper.ToDealDTO(updated)
	return &dto, nil
}

// AdvanceDeal is the rep-facing save: merge the optional field updates,
// evaluate the current step and move one status forward when the step is
// satisfied and not admin-gated. Blocked attempts still persist the field
// updates; the outcome says why the deal did or did not move.
func (s *DealService) AdvanceDeal(ctx context.Context, id uuid.UUID, req *domain.AdvanceDealRequest) (*AdvanceResult, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	if !userCtx.CanEditDeal(&deal.RepID) {
		return nil, ErrPermissionDenied
	}
	if userCtx.IsRep() && req.TouchesFinancials() && deal.FinancialsLocked() {
		return nil, ErrFinancialsLocked
	}

	now := time.Now().UTC()
	out, err := s.engine.AttemptAdvance(deal, &req.DealPatch, now)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate deal %s: %w", id, err)
	}

	if err := s.persistOutcome(ctx, deal, out, req.Columns(), domain.TransitionSourceSave, userCtx, now); err != nil {
		return nil, err
	}

	return s.advanceResult(ctx, id, out)
}

// AdminAdvanceDeal is the explicit administrative transition: it moves the
// deal one status forward past the admin gate. Step data requirements still
// apply; the gate is the only thing being overridden.
func (s *DealService) AdminAdvanceDeal(ctx context.Context, id uuid.UUID) (*AdvanceResult, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	now := time.Now().UTC()
	out, err := s.engine.AdminAdvance(deal, now)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate deal %s: %w", id, err)
	}

	if err := s.persistOutcome(ctx, deal, out, nil, domain.TransitionSourceAdmin, userCtx, now); err != nil {
		return nil, err
	}

	return s.advanceResult(ctx, id, out)
}

// GetDealWorkflow projects the deal onto the pipeline: milestone position,
// phase, percent complete and the current step evaluation.
func (s *DealService) GetDealWorkflow(ctx context.Context, id uuid.UUID) (*workflow.Snapshot, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	snapshot, err := s.engine.Snapshot(deal)
	if err != nil {
		return nil, fmt.Errorf("failed to project workflow for deal %s: %w", id, err)
	}
	return &snapshot, nil
}

// GetCommissionBreakdown computes the payout picture for a deal. Admins
// see every deal; reps only their own.
func (s *DealService) GetCommissionBreakdown(ctx context.Context, id uuid.UUID) (*workflow.Breakdown, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	if !userCtx.IsAdmin() && !userCtx.OwnsRep(deal.RepID) {
		return nil, ErrPermissionDenied
	}

	breakdown := s.calculator.CommissionBreakdown(deal, deal.Rep)
	if breakdown.Discrepancy != nil {
		s.logger.Warn("stored rcv disagrees with acv + depreciation",
			zap.String("deal_id", deal.ID.String()),
			zap.String("stored", breakdown.Discrepancy.Stored.String()),
			zap.String("reconstructed", breakdown.Discrepancy.Reconstructed.String()))
	}
	return &breakdown, nil
}

// UpsertCommission records or corrects the per-deal commission snapshot.
// Admin only; a recorded amount becomes authoritative for the payout.
func (s *DealService) UpsertCommission(ctx context.Context, dealID uuid.UUID, req *domain.UpsertCommissionRequest) (*domain.DealCommissionDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !userCtx.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if req.CommissionPercent == nil && req.CommissionAmount == nil {
		return nil, fmt.Errorf("%w: commission_percent or commission_amount is required", ErrInvalidInput)
	}

	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	commission := &domain.DealCommission{
		DealID:            deal.ID,
		CommissionPercent: req.CommissionPercent,
		CommissionAmount:  req.CommissionAmount,
	}
	if err := s.dealRepo.UpsertCommission(ctx, commission); err != nil {
		return nil, fmt.Errorf("failed to upsert commission: %w", err)
	}

	updated, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}
	current := updated.Commission()
	if current == nil {
		return nil, fmt.Errorf("commission record missing after upsert for deal %s", dealID)
	}

	dto := mapper.ToDealCommissionDTO(current)
	return &dto, nil
}

// GetStatusHistory returns the deal's transition trail, newest first.
func (s *DealService) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]domain.DealStatusHistoryDTO, error) {
	if _, err := s.dealRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	entries, err := s.historyRepo.GetByDealID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}
	return mapper.ToDealStatusHistoryDTOs(entries), nil
}

// resolveRepID decides which rep a new deal belongs to. Reps always get
// their own record; admins must name one.
func (s *DealService) resolveRepID(userCtx *auth.UserContext, requested *uuid.UUID) (uuid.UUID, error) {
	if userCtx.IsRep() {
		if userCtx.RepID == nil {
			return uuid.Nil, fmt.Errorf("%w: rep account has no rep record", ErrPermissionDenied)
		}
		if requested != nil && *requested != *userCtx.RepID {
			return uuid.Nil, ErrPermissionDenied
		}
		return *userCtx.RepID, nil
	}
	if userCtx.IsAdmin() {
		if requested == nil {
			return uuid.Nil, fmt.Errorf("%w: rep_id is required", ErrInvalidInput)
		}
		return *requested, nil
	}
	return uuid.Nil, ErrPermissionDenied
}

// persistOutcome writes an engine outcome back to the database. A status
// change lands atomically with the field updates, arrival stamp and history
// row; a blocked attempt persists just the field updates.
func (s *DealService) persistOutcome(
	ctx context.Context,
	deal *domain.Deal,
	out workflow.Outcome,
	cols map[string]interface{},
	source domain.TransitionSource,
	userCtx *auth.UserContext,
	now time.Time,
) error {
	if !out.StatusChanged {
		if len(cols) == 0 {
			return nil
		}
		if err := s.dealRepo.UpdateWithRevision(ctx, deal.ID, deal.Revision, cols); err != nil {
			return s.mapWriteError(err)
		}
		return nil
	}

	if cols == nil {
		cols = make(map[string]interface{})
	}
	if out.To == domain.DealStatusPaid {
		cols["commission_paid"] = true
	}

	from := out.From
	rec := repository.TransitionRecord{
		DealID:             deal.ID,
		Revision:           deal.Revision,
		Columns:            cols,
		ToStatus:           out.To,
		StampColumn:        out.StampField,
		OccurredAt:         now,
		MarkCommissionPaid: out.To == domain.DealStatusPaid,
		History: domain.DealStatusHistory{
			FromStatus:    &from,
			ToStatus:      out.To,
			Source:        source,
			ChangedByID:   userCtx.UserID.String(),
			ChangedByName: userCtx.DisplayName,
			ChangedByRole: userCtx.Role,
			ChangedAt:     now,
		},
	}
	if err := s.dealRepo.Transition(ctx, rec); err != nil {
		return s.mapWriteError(err)
	}

	fanOutAwaitingAdmin(ctx, s.notificationRepo, s.engine.Pipeline(), s.adminUserIDs, deal, out.To, s.logger)
	return nil
}

func (s *DealService) mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRevisionConflict):
		return ErrRevisionConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return fmt.Errorf("failed to save deal: %w", err)
}

// advanceResult reloads the deal and assembles the wire outcome.
func (s *DealService) advanceResult(ctx context.Context, id uuid.UUID, out workflow.Outcome) (*AdvanceResult, error) {
	updated, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deal: %w", err)
	}

	dto := mapper.ToDealDTO(updated)
	result := &AdvanceResult{Check: out.Check}
	result.StatusChanged = out.StatusChanged
	result.AwaitingAdmin = out.AwaitingAdmin
	result.Terminal = out.Terminal
	result.Deal = &dto
	if out.StatusChanged {
		from := out.From
		to := out.To
		result.FromStatus = &from
		result.ToStatus = &to
	}
	return result, nil
}

// fanOutAwaitingAdmin notifies the office when a deal arrives at a step
// only an admin can move. Shared by every path that can land there: the
// rep-facing save and the upload shortcuts. Failures are logged, never
// returned.
func fanOutAwaitingAdmin(
	ctx context.Context,
	repo *repository.NotificationRepository,
	pipeline *workflow.Pipeline,
	adminUserIDs []uuid.UUID,
	deal *domain.Deal,
	status domain.DealStatus,
	logger *zap.Logger,
) {
	if repo == nil || len(adminUserIDs) == 0 {
		return
	}

	gated, err := pipeline.AdminGated(status)
	if err != nil || !gated {
		return
	}

	notifications := make([]*domain.Notification, 0, len(adminUserIDs))
	for _, adminID := range adminUserIDs {
		entityID := deal.ID
		notifications = append(notifications, &domain.Notification{
			UserID:     adminID,
			Type:       string(domain.NotificationTypeAwaitingAdmin),
			Title:      "Deal awaiting admin action",
			Message:    fmt.Sprintf("%s at %s reached %s and needs an admin to move it forward", deal.HomeownerName, deal.Address, status),
			EntityID:   &entityID,
			EntityType: "deal",
		})
	}
	if err := repo.CreateBatch(ctx, notifications); err != nil {
		logger.Warn("failed to create awaiting-admin notifications",
			zap.Error(err),
			zap.String("deal_id", deal.ID.String()))
	}
}

func intersectStatuses(current, constraint []domain.DealStatus) []domain.DealStatus {
	if len(current) == 0 {
		return constraint
	}
	allowed := make(map[domain.DealStatus]struct{}, len(constraint))
	for _, status := range constraint {
		allowed[status] = struct{}{}
	}
	var out []domain.DealStatus
	for _, status := range current {
		if _, ok := allowed[status]; ok {
			out = append(out, status)
		}
	}
	return out
}
