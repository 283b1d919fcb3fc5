package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	profileerrors "github.com/logfretaulnay/hr-zen/internal/profile/errors"
	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	GetByUserID(ctx context.Context, userID string) (ProfileResponse, error)
	GetAll(ctx context.Context) ([]ProfileResponse, error)
	UpdateSelf(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	AdminUpdate(ctx context.Context, id string, req AdminUpdateProfileRequest) (ProfileResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetByUserID(ctx context.Context, userID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(profiles), nil
}

func (s *service) UpdateSelf(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}

	p.Name = req.Name
	p.Department = req.Department
	p.JobTitle = req.JobTitle
	p.Phone = req.Phone
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidStartDate
		}
		p.StartDate = &startDate
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update profile persist failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.logger.Info("profile updated", zap.String("user_id", userID))
	return mapToResponse(*p), nil
}

func (s *service) AdminUpdate(ctx context.Context, id string, req AdminUpdateProfileRequest) (ProfileResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidProfileID
	}
	if _, ok := role.Parse(req.Role); !ok {
		return ProfileResponse{}, profileerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("admin update profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}

	p.Role = req.Role
	if req.AnnualLeaveDays != nil {
		d := decimal.NewFromFloat(*req.AnnualLeaveDays)
		if d.IsNegative() {
			return ProfileResponse{}, profileerrors.ErrNegativeAllotment
		}
		p.AnnualLeaveDays = d
	}
	if req.RTTDays != nil {
		d := decimal.NewFromFloat(*req.RTTDays)
		if d.IsNegative() {
			return ProfileResponse{}, profileerrors.ErrNegativeAllotment
		}
		p.RTTDays = d
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("admin update profile persist failed", zap.String("profile_id", id), zap.Error(err))
		return ProfileResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.logger.Info("profile admin update",
		zap.String("profile_id", id),
		zap.String("role", p.Role),
		zap.Bool("is_active", p.IsActive),
	)
	return mapToResponse(*p), nil
}

func mapToResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		Name:            p.Name,
		Email:           p.Email,
		Role:            p.Role,
		Department:      p.Department,
		JobTitle:        p.JobTitle,
		Phone:           p.Phone,
		AnnualLeaveDays: p.AnnualLeaveDays.InexactFloat64(),
		RTTDays:         p.RTTDays.InexactFloat64(),
		IsActive:        p.IsActive,
	}
	if p.StartDate != nil {
		v := p.StartDate.Format("2006-01-02")
		resp.StartDate = &v
	}
	return resp
}

func mapToListResponse(profiles []Profile) []ProfileResponse {
	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp
}
