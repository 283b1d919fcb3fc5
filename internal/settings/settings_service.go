package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	GetBranding(ctx context.Context) (Branding, error)
	UpdateBranding(ctx context.Context, req Branding) (Branding, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetBranding(ctx context.Context) (Branding, error) {
	setting, err := s.repo.Get(ctx, BrandingKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultBranding, nil
		}
		return Branding{}, err
	}

	var branding Branding
	if err := json.Unmarshal(setting.Value, &branding); err != nil {
		s.logger.Error("stored branding is unreadable, serving defaults", zap.Error(err))
		return DefaultBranding, nil
	}
	return branding, nil
}

func (s *service) UpdateBranding(ctx context.Context, req Branding) (Branding, error) {
	value, err := json.Marshal(req)
	if err != nil {
		return Branding{}, err
	}

	if err := s.repo.Upsert(ctx, &AppSetting{Key: BrandingKey, Value: value}); err != nil {
		s.logger.Error("update branding persist failed", zap.Error(err))
		return Branding{}, err
	}

	s.logger.Info("branding updated", zap.String("app_name", req.AppName))
	return req, nil
}
