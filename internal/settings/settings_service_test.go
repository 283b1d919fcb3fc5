package settings_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/logfretaulnay/hr-zen/internal/settings"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	getFn    func(ctx context.Context, key string) (*settings.AppSetting, error)
	upsertFn func(ctx context.Context, setting *settings.AppSetting) error
}

func (f *fakeSettingsRepository) WithTx(tx *sql.Tx) settings.Repository { return f }

func (f *fakeSettingsRepository) Get(ctx context.Context, key string) (*settings.AppSetting, error) {
	if f.getFn != nil {
		return f.getFn(ctx, key)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSettingsRepository) Upsert(ctx context.Context, setting *settings.AppSetting) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, setting)
	}
	return nil
}

func setupSettingsServiceTest(t *testing.T) (*sql.DB, *fakeSettingsRepository, settings.Service) {
	t.Helper()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeSettingsRepository{}
	return db, repo, settings.NewService(db, repo)
}

func TestSettingsService_GetBranding(t *testing.T) {
	ctx := context.Background()

	t.Run("stored branding wins", func(t *testing.T) {
		db, repo, svc := setupSettingsServiceTest(t)
		defer db.Close()

		repo.getFn = func(ctx context.Context, key string) (*settings.AppSetting, error) {
			assert.Equal(t, settings.BrandingKey, key)
			return &settings.AppSetting{
				Key:   settings.BrandingKey,
				Value: []byte(`{"app_name":"Acme HR","primary_color":"#ff0000"}`),
			}, nil
		}

		branding, err := svc.GetBranding(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "Acme HR", branding.AppName)
		assert.Equal(t, "#ff0000", branding.PrimaryColor)
	})

	t.Run("missing row serves defaults", func(t *testing.T) {
		db, _, svc := setupSettingsServiceTest(t)
		defer db.Close()

		branding, err := svc.GetBranding(ctx)

		assert.NoError(t, err)
		assert.Equal(t, settings.DefaultBranding, branding)
	})

	t.Run("corrupt payload serves defaults", func(t *testing.T) {
		db, repo, svc := setupSettingsServiceTest(t)
		defer db.Close()

		repo.getFn = func(ctx context.Context, key string) (*settings.AppSetting, error) {
			return &settings.AppSetting{Key: settings.BrandingKey, Value: []byte(`{nope`)}, nil
		}

		branding, err := svc.GetBranding(ctx)

		assert.NoError(t, err)
		assert.Equal(t, settings.DefaultBranding, branding)
	})
}

func TestSettingsService_UpdateBranding(t *testing.T) {
	ctx := context.Background()

	db, repo, svc := setupSettingsServiceTest(t)
	defer db.Close()

	var stored *settings.AppSetting
	repo.upsertFn = func(ctx context.Context, setting *settings.AppSetting) error {
		stored = setting
		return nil
	}

	branding, err := svc.UpdateBranding(ctx, settings.Branding{
		AppName:      "Acme HR",
		PrimaryColor: "#16a34a",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme HR", branding.AppName)
	assert.NotNil(t, stored)
	assert.Equal(t, settings.BrandingKey, stored.Key)
	assert.JSONEq(t, `{"app_name":"Acme HR","logo_url":"","primary_color":"#16a34a"}`, string(stored.Value))
}
