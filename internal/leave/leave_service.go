package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/logfretaulnay/hr-zen/internal/events"
	leaveerrors "github.com/logfretaulnay/hr-zen/internal/leave/errors"
	"github.com/logfretaulnay/hr-zen/internal/messaging/kafka"
	"github.com/logfretaulnay/hr-zen/internal/role"
	"github.com/logfretaulnay/hr-zen/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

// BalanceInvalidator drops cached balance figures for a user after a
// decision lands. Kept local so the balance package can depend on leave
// without a cycle.
type BalanceInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, actorID, actorRole, id string) (LeaveResponse, error)
	ListOwn(ctx context.Context, actorID string) ([]LeaveResponse, error)
	ListAll(ctx context.Context) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
	Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	outbox      kafka.OutboxRepository
	invalidator BalanceInvalidator
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	invalidator BalanceInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		outbox:      outboxRepo,
		invalidator: invalidator,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, typeUUID, startDate, endDate, err := validateCreateRequest(actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	totalDays := TotalDays(startDate, endDate, req.HalfDayStart, req.HalfDayEnd)
	if !totalDays.IsPositive() {
		return LeaveResponse{}, leaveerrors.ErrNonPositiveDuration
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.TypeExists(ctx, req.LeaveTypeID)
	if err != nil {
		s.logger.Error("create leave type lookup failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	l := &Leave{
		ID:           uuid.New(),
		UserID:       userUUID,
		LeaveTypeID:  typeUUID,
		StartDate:    startDate,
		EndDate:      endDate,
		HalfDayStart: req.HalfDayStart,
		HalfDayEnd:   req.HalfDayEnd,
		TotalDays:    totalDays,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveRequestCreatedEvent{
			EventType:   events.EventLeaveRequestCreated,
			RequestID:   rid,
			LeaveID:     l.ID.String(),
			UserID:      actorID,
			LeaveTypeID: req.LeaveTypeID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			TotalDays:   totalDays.InexactFloat64(),
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.enqueueEvent(ctx, tx, "leave_request", l.ID.String(), event.EventType, rid, event); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actorID),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actorID, actorRole, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.UserID.String() != actorID && !role.HasManagerCapability(actorRole) {
		return LeaveResponse{}, leaveerrors.ErrNotVisible
	}
	return mapToResponse(*l), nil
}

func (s *service) ListOwn(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	leaves, err := s.repo.FindAllByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Decide(ctx context.Context, actorID, actorRole, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	if !role.HasManagerCapability(actorRole) {
		return LeaveResponse{}, leaveerrors.ErrManagerRoleRequired
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	if req.Status == StatusRejected && req.Comment == "" {
		return LeaveResponse{}, leaveerrors.ErrCommentRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave on non-pending request",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrRequestNotPending
	}

	now := time.Now().UTC()
	l.Status = req.Status
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now
	if req.Comment != "" {
		l.ManagerComment = &req.Comment
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveRequestDecidedEvent{
			EventType:  events.EventLeaveRequestDecided,
			RequestID:  rid,
			LeaveID:    l.ID.String(),
			UserID:     l.UserID.String(),
			Status:     l.Status,
			DecidedBy:  actorID,
			Comment:    req.Comment,
			TotalDays:  l.TotalDays.InexactFloat64(),
			OccurredAt: now,
		}
		if err := s.enqueueEvent(ctx, tx, "leave_request", l.ID.String(), event.EventType, rid, event); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	// An approval changes the year's used days, so cached balances go stale.
	if s.invalidator != nil && l.Status == StatusApproved {
		if err := s.invalidator.Invalidate(ctx, l.UserID.String()); err != nil {
			s.logger.Error("balance cache invalidation failed",
				zap.String("user_id", l.UserID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.UserID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrRequestNotPending
	}

	l.Status = StatusCanceled

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed",
			zap.String("request_id", rid),
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)
	return mapToResponse(*l), nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID, eventType, rid string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.TopicLeaveLifecycle,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", aggregateID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	userUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return userUUID, typeUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		UserID:         l.UserID.String(),
		LeaveTypeID:    l.LeaveTypeID.String(),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		HalfDayStart:   l.HalfDayStart,
		HalfDayEnd:     l.HalfDayEnd,
		TotalDays:      l.TotalDays.InexactFloat64(),
		Reason:         l.Reason,
		Status:         l.Status,
		ManagerComment: l.ManagerComment,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.LeaveType != nil {
		resp.LeaveTypeLabel = l.LeaveType.Label
	}
	if l.Profile != nil {
		resp.EmployeeName = l.Profile.Name
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
