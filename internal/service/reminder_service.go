package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/notify"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

// ReminderService nags admins about deals stuck on an admin-gated step.
// Deals whose last update is older than the stale window get an in-app
// reminder per admin plus one email digest for the whole batch.
type ReminderService struct {
	dealRepo         *repository.DealRepository
	notificationRepo *repository.NotificationRepository
	pipeline         *workflow.Pipeline
	mailer           *notify.Mailer
	adminUserIDs     []uuid.UUID
	emailTo          []string
	staleAfter       time.Duration
	logger           *zap.Logger
}

// NewReminderService creates a new ReminderService instance. The mailer is
// optional; when nil, reminders stay in-app only.
func NewReminderService(
	dealRepo *repository.DealRepository,
	notificationRepo *repository.NotificationRepository,
	pipeline *workflow.Pipeline,
	mailer *notify.Mailer,
	adminUserIDs []uuid.UUID,
	emailTo []string,
	staleAfter time.Duration,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		dealRepo:         dealRepo,
		notificationRepo: notificationRepo,
		pipeline:         pipeline,
		mailer:           mailer,
		adminUserIDs:     adminUserIDs,
		emailTo:          emailTo,
		staleAfter:       staleAfter,
		logger:           logger,
	}
}

// SendStaleDealReminders scans for deals parked on an admin-gated status
// longer than the stale window and notifies every admin. An admin who was
// already reminded about a deal within the window is not reminded again, so
// the daily cron repeats a nag roughly once per window per deal. Returns the
// number of notifications created.
func (s *ReminderService) SendStaleDealReminders(ctx context.Context) (int, error) {
	if len(s.adminUserIDs) == 0 {
		s.logger.Debug("no admin users configured, skipping stale deal reminders")
		return 0, nil
	}

	cutoff := time.Now().UTC().Add(-s.staleAfter)

	deals, err := s.dealRepo.ListStale(ctx, s.pipeline.AdminGatedStatuses(), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale deals: %w", err)
	}
	if len(deals) == 0 {
		return 0, nil
	}

	notifications := make([]*domain.Notification, 0, len(deals))
	var digest strings.Builder

	for i := range deals {
		deal := &deals[i]

		milestone, err := s.pipeline.Milestone(deal.Status)
		if err != nil {
			s.logger.Error("stale deal has unknown status",
				zap.String("deal_id", deal.ID.String()),
				zap.String("status", string(deal.Status)))
			continue
		}

		reminded := false
		for _, adminID := range s.adminUserIDs {
			recent, err := s.notificationRepo.HasRecentForEntity(
				ctx, adminID, string(domain.NotificationTypeStaleDealReminder), deal.ID, cutoff)
			if err != nil {
				return 0, fmt.Errorf("failed to check recent reminders: %w", err)
			}
			if recent {
				continue
			}

			entityID := deal.ID
			notifications = append(notifications, &domain.Notification{
				UserID:     adminID,
				Type:       string(domain.NotificationTypeStaleDealReminder),
				Title:      "Stale deal needs admin action",
				Message:    fmt.Sprintf("%s at %s has been waiting at %s since %s", deal.HomeownerName, deal.Address, milestone.Label, deal.UpdatedAt.Format("Jan 2")),
				EntityID:   &entityID,
				EntityType: "deal",
			})
			reminded = true
		}

		if reminded {
			fmt.Fprintf(&digest, "- %s at %s: %s since %s\n",
				deal.HomeownerName, deal.Address, milestone.Label, deal.UpdatedAt.Format("Jan 2"))
		}
	}

	if len(notifications) == 0 {
		return 0, nil
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return 0, fmt.Errorf("failed to create stale deal reminders: %w", err)
	}

	s.sendDigest(digest.String())

	s.logger.Info("stale deal reminders sent",
		zap.Int("stale_deals", len(deals)),
		zap.Int("notifications", len(notifications)))

	return len(notifications), nil
}

// sendDigest mails one summary of every deal reminded this run. Mail
// failures are logged, never returned.
func (s *ReminderService) sendDigest(body string) {
	if s.mailer == nil || len(s.emailTo) == 0 || body == "" {
		return
	}

	count := strings.Count(body, "\n")
	subject := fmt.Sprintf("%d deals awaiting admin action", count)
	if count == 1 {
		subject = "1 deal awaiting admin action"
	}

	if err := s.mailer.SendDealAlert(s.emailTo, subject, body); err != nil {
		s.logger.Warn("failed to send stale deal digest",
			zap.Error(err))
	}
}
