package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/logfretaulnay/hr-zen/internal/events"
	"github.com/logfretaulnay/hr-zen/internal/leave"
	notificationerrors "github.com/logfretaulnay/hr-zen/internal/notification/errors"
	"github.com/logfretaulnay/hr-zen/internal/profile"
	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const listLimit = 100

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, userID string) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error

	NotifyRequestCreated(ctx context.Context, event events.LeaveRequestCreatedEvent) error
	NotifyRequestDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error
}

// RecipientSource resolves who should hear about a new request.
type RecipientSource interface {
	FindByRoles(ctx context.Context, roles []string) ([]profile.Profile, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	recipients RecipientSource
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recipients RecipientSource, dispatcher Dispatcher, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, recipients: recipients, dispatcher: dispatcher, logger: l}
}

func (s *service) List(ctx context.Context, userID string) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, notificationerrors.ErrInvalidUserID
	}
	notifications, err := s.repo.FindAllByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(notifications), nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (UnreadCountResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UnreadCountResponse{}, notificationerrors.ErrInvalidUserID
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Count: count}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return notificationerrors.ErrInvalidUserID
	}
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Debug("notifications marked read", zap.String("user_id", userID), zap.Int64("count", affected))
	return nil
}

// NotifyRequestCreated fans out to every active manager and admin. Consumers
// run at-least-once, so a redelivered event hits the dedup index and is
// skipped per recipient.
func (s *service) NotifyRequestCreated(ctx context.Context, event events.LeaveRequestCreatedEvent) error {
	leaveUUID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		s.logger.Error("created event carries bad leave id", zap.String("leave_id", event.LeaveID))
		return nil
	}

	recipients, err := s.recipients.FindByRoles(ctx, []string{
		string(role.RoleManager),
		string(role.RoleAdmin),
	})
	if err != nil {
		return err
	}

	title := "New leave request"
	body := fmt.Sprintf("A leave request for %s to %s (%.1f days) is awaiting a decision.",
		event.StartDate, event.EndDate, event.TotalDays)

	for _, recipient := range recipients {
		// The requester does not need to hear about their own submission.
		if recipient.UserID.String() == event.UserID {
			continue
		}
		if err := s.store(ctx, Notification{
			ID:               uuid.New(),
			UserID:           recipient.UserID,
			Kind:             KindRequestSubmitted,
			RelatedRequestID: &leaveUUID,
			Title:            title,
			Body:             body,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) NotifyRequestDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error {
	leaveUUID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		s.logger.Error("decided event carries bad leave id", zap.String("leave_id", event.LeaveID))
		return nil
	}
	ownerUUID, err := uuid.Parse(event.UserID)
	if err != nil {
		s.logger.Error("decided event carries bad user id", zap.String("user_id", event.UserID))
		return nil
	}

	kind := KindRequestRejected
	title := "Leave request rejected"
	if event.Status == leave.StatusApproved {
		kind = KindRequestApproved
		title = "Leave request approved"
	}
	body := fmt.Sprintf("Your leave request (%.1f days) was %s.",
		event.TotalDays, strings.ToLower(event.Status))
	if event.Comment != "" {
		body = fmt.Sprintf("%s Comment: %s", body, event.Comment)
	}

	return s.store(ctx, Notification{
		ID:               uuid.New(),
		UserID:           ownerUUID,
		Kind:             kind,
		RelatedRequestID: &leaveUUID,
		Title:            title,
		Body:             body,
	})
}

func (s *service) store(ctx context.Context, n Notification) error {
	if err := s.repo.Create(ctx, &n); err != nil {
		if isDuplicateNotification(err) {
			s.logger.Warn("duplicate notification skipped",
				zap.String("user_id", n.UserID.String()),
				zap.String("kind", n.Kind),
			)
			return nil
		}
		return err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			s.logger.Error("notification dispatch failed",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notification_dedup"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notification_dedup")
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedRequestID != nil {
		v := n.RelatedRequestID.String()
		resp.RelatedRequestID = &v
	}
	return resp
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp
}
