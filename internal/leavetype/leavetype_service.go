package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leavetypeerrors "github.com/logfretaulnay/hr-zen/internal/leavetype/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	maxDays, err := parseMaxDays(req.MaxDaysPerYear)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	lt := &LeaveType{
		ID:               uuid.New(),
		Label:            req.Label,
		Color:            req.Color,
		IsPaid:           *req.IsPaid,
		RequiresApproval: *req.RequiresApproval,
		MaxDaysPerYear:   maxDays,
	}

	if err := s.repo.WithTx(tx).Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("label", lt.Label),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}

	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidLeaveTypeID
	}
	maxDays, err := parseMaxDays(req.MaxDaysPerYear)
	if err != nil {
		return LeaveTypeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Label = req.Label
	lt.Color = req.Color
	lt.IsPaid = *req.IsPaid
	lt.RequiresApproval = *req.RequiresApproval
	lt.MaxDaysPerYear = maxDays

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.String("leave_type_id", id), zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

// Delete soft-deletes: requests referencing the type keep a resolvable id.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leavetypeerrors.ErrInvalidLeaveTypeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("leave type deleted", zap.String("leave_type_id", id))
	return nil
}

func parseMaxDays(v *float64) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d := decimal.NewFromFloat(*v)
	if d.IsNegative() {
		return nil, leavetypeerrors.ErrNegativeMaxDays
	}
	return &d, nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	resp := LeaveTypeResponse{
		ID:               lt.ID.String(),
		Label:            lt.Label,
		Color:            lt.Color,
		IsPaid:           lt.IsPaid,
		RequiresApproval: lt.RequiresApproval,
		CreatedAt:        lt.CreatedAt.Format(time.RFC3339),
	}
	if lt.MaxDaysPerYear != nil {
		v := lt.MaxDaysPerYear.InexactFloat64()
		resp.MaxDaysPerYear = &v
	}
	return resp
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
