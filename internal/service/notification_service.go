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
	"github.com/ridgeline-exteriors/deal-api/internal/notify"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
)

// NotificationService handles business logic for notifications
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	mailer           *notify.Mailer
	emailTo          []string
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance. The
// mailer is optional; when nil, alerts stay in-app only.
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	mailer *notify.Mailer,
	emailTo []string,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		emailTo:          emailTo,
		logger:           logger,
	}
}

// CreateForUser creates a notification for a specific user
func (s *NotificationService) CreateForUser(
	ctx context.Context,
	userID uuid.UUID,
	notificationType domain.NotificationType,
	title string,
	message string,
	entityType string,
	entityID *uuid.UUID,
) (*domain.NotificationDTO, error) {
	notification := &domain.Notification{
		UserID:     userID,
		Type:       string(notificationType),
		Title:      title,
		Message:    message,
		EntityType: entityType,
		EntityID:   entityID,
		Read:       false,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	dto := mapper.ToNotificationDTO(notification)
	return &dto, nil
}

// CreateBatch fans one alert out to multiple users and, when a mailer is
// configured, to the office distribution list. Mail failures are logged,
// never returned.
func (s *NotificationService) CreateBatch(
	ctx context.Context,
	userIDs []uuid.UUID,
	notificationType domain.NotificationType,
	title string,
	message string,
	entityType string,
	entityID *uuid.UUID,
) ([]domain.NotificationDTO, error) {
	if len(userIDs) == 0 {
		return []domain.NotificationDTO{}, nil
	}

	notifications := make([]*domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, &domain.Notification{
			UserID:     userID,
			Type:       string(notificationType),
			Title:      title,
			Message:    message,
			EntityType: entityType,
			EntityID:   entityID,
			Read:       false,
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return nil, fmt.Errorf("failed to create notifications: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendDealAlert(s.emailTo, title, message); err != nil {
			s.logger.Warn("failed to send alert mail",
				zap.Error(err),
				zap.String("type", string(notificationType)))
		}
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = mapper.ToNotificationDTO(notification)
	}
	return dtos, nil
}

// GetForCurrentUser returns notifications for the current user with pagination
func (s *NotificationService) GetForCurrentUser(
	ctx context.Context,
	page int,
	pageSize int,
	unreadOnly bool,
) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userCtx.UserID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notifications[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// MarkAsRead marks one of the current user's notifications as read.
// Another user's notification reads as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID, userCtx.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every unread notification for the current user as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	if err := s.notificationRepo.MarkAllAsRead(ctx, userCtx.UserID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread notifications for the current user
func (s *NotificationService) GetUnreadCount(ctx context.Context) (*domain.UnreadCountDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	count, err := s.notificationRepo.CountUnread(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &domain.UnreadCountDTO{Count: count}, nil
}
