package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/reporting"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

const reportSyncPageSize = 200

// ReportSyncService pushes deal financial summaries to the corporate
// reporting database. It walks the full deal table in pages, computes the
// commission breakdown for each deal, and upserts one summary row per deal.
type ReportSyncService struct {
	dealRepo  *repository.DealRepository
	calc      *workflow.Calculator
	pipeline  *workflow.Pipeline
	reporting *reporting.Client
	logger    *zap.Logger
}

// NewReportSyncService creates a new report sync service.
func NewReportSyncService(
	dealRepo *repository.DealRepository,
	calc *workflow.Calculator,
	pipeline *workflow.Pipeline,
	reportingClient *reporting.Client,
	logger *zap.Logger,
) *ReportSyncService {
	return &ReportSyncService{
		dealRepo:  dealRepo,
		calc:      calc,
		pipeline:  pipeline,
		reporting: reportingClient,
		logger:    logger,
	}
}

// SyncFinancialSummaries pushes every deal to the reporting table. Returns
// the number of rows synced and failed. A no-op when reporting is disabled.
func (s *ReportSyncService) SyncFinancialSummaries(ctx context.Context) (int, int, error) {
	if !s.reporting.IsEnabled() {
		s.logger.Debug("Reporting disabled, skipping financial summary sync")
		return 0, 0, nil
	}

	totalSynced, totalFailed := 0, 0

	for page := 1; ; page++ {
		deals, total, err := s.dealRepo.List(ctx, page, reportSyncPageSize, nil, repository.DealSortByCreatedAsc)
		if err != nil {
			return totalSynced, totalFailed, fmt.Errorf("failed to list deals for reporting sync: %w", err)
		}
		if len(deals) == 0 {
			break
		}

		rows := make([]reporting.DealSummary, 0, len(deals))
		for i := range deals {
			row, err := s.buildSummary(&deals[i])
			if err != nil {
				s.logger.Error("Failed to build deal summary for reporting",
					zap.String("deal_id", deals[i].ID.String()),
					zap.String("status", string(deals[i].Status)),
					zap.Error(err),
				)
				totalFailed++
				continue
			}
			rows = append(rows, row)
		}

		synced, failed, err := s.reporting.UpsertDealSummaries(ctx, rows)
		totalSynced += synced
		totalFailed += failed
		if err != nil {
			return totalSynced, totalFailed, fmt.Errorf("failed to push deal summaries: %w", err)
		}

		if int64(page*reportSyncPageSize) >= total {
			break
		}
	}

	s.logger.Info("Financial summary sync completed",
		zap.Int("synced", totalSynced),
		zap.Int("failed", totalFailed),
	)

	return totalSynced, totalFailed, nil
}

func (s *ReportSyncService) buildSummary(deal *domain.Deal) (reporting.DealSummary, error) {
	phase, err := s.pipeline.Phase(deal.Status)
	if err != nil {
		return reporting.DealSummary{}, err
	}

	breakdown := s.calc.CommissionBreakdown(deal, deal.Rep)

	repName := deal.RepName
	if deal.Rep != nil {
		repName = deal.Rep.Name
	}

	return reporting.DealSummary{
		DealID:            deal.ID.String(),
		HomeownerName:     deal.HomeownerName,
		Address:           deal.Address,
		City:              deal.City,
		State:             deal.State,
		RepName:           repName,
		Status:            string(deal.Status),
		Phase:             string(phase),
		RCV:               deal.RCV,
		ACV:               deal.ACV,
		Deductible:        deal.Deductible,
		Depreciation:      deal.Depreciation,
		SalesTax:          breakdown.SalesTax,
		BaseAmount:        breakdown.BaseAmount,
		CommissionPercent: breakdown.CommissionPercent,
		CommissionAmount:  breakdown.CommissionAmount,
		CommissionPaid:    deal.CommissionPaid,
		ApprovedDate:      deal.ApprovedDate,
		CompletedDate:     deal.CompletedDate,
		CreatedAt:         deal.CreatedAt,
	}, nil
}
