package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/logfretaulnay/hr-zen/internal/auth"
	autherrors "github.com/logfretaulnay/hr-zen/internal/auth/errors"
	"github.com/logfretaulnay/hr-zen/internal/profile"
	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) WithTx(tx *sql.Tx) auth.Repository { return f }

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProfileRepository struct {
	createFn       func(ctx context.Context, p *profile.Profile) error
	findByUserIDFn func(ctx context.Context, userID string) (*profile.Profile, error)
}

func (f *fakeProfileRepository) WithTx(tx *sql.Tx) profile.Repository { return f }

func (f *fakeProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakeProfileRepository) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepository) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepository) FindAll(ctx context.Context) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepository) FindByRoles(ctx context.Context, roles []string) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepository) Update(ctx context.Context, p *profile.Profile) error { return nil }

func (f *fakeProfileRepository) RoleByUserID(ctx context.Context, userID string) (string, error) {
	return "", gorm.ErrRecordNotFound
}

type authServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	repo        *fakeAuthRepository
	profileRepo *fakeProfileRepository
	service     auth.Service
}

func setupAuthServiceTest(t *testing.T) *authServiceDeps {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAuthRepository{}
	profileRepo := &fakeProfileRepository{}
	svc := auth.NewService(db, repo, profileRepo)

	return &authServiceDeps{db: db, sqlMock: mock, repo: repo, profileRepo: profileRepo, service: svc}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions the account and its profile together", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		var createdUser *auth.User
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			createdUser = user
			return nil
		}
		var createdProfile *profile.Profile
		deps.profileRepo.createFn = func(ctx context.Context, p *profile.Profile) error {
			createdProfile = p
			return nil
		}

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			Email:    "Jean.Dupont@Example.com",
			Name:     "Jean Dupont",
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.NotNil(t, createdUser)
		assert.Equal(t, "jean.dupont@example.com", createdUser.Email)
		assert.True(t, createdUser.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.Password), []byte("s3cret-pass")))

		assert.NotNil(t, createdProfile)
		assert.Equal(t, createdUser.ID, createdProfile.UserID)
		assert.Equal(t, string(role.RoleEmployee), createdProfile.Role)
		assert.Equal(t, "Jean Dupont", createdProfile.Name)

		assert.Equal(t, createdUser.ID.String(), resp.ID)
		assert.Equal(t, string(role.RoleEmployee), resp.Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("taken email is refused", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return &auth.User{ID: uuid.New(), Email: email}, nil
		}

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			Email:    "taken@example.com",
			Name:     "Someone",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailTaken)
	})

	t.Run("profile create failure rolls everything back", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.profileRepo.createFn = func(ctx context.Context, p *profile.Profile) error {
			return assert.AnError
		}

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			Email:    "jean@example.com",
			Name:     "Jean",
			Password: "s3cret-pass",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	activeUser := func() *auth.User {
		return &auth.User{
			ID:       userID,
			Email:    "jean@example.com",
			Password: string(hash),
			IsActive: true,
		}
	}

	t.Run("issues tokens with the profile role claim", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			assert.Equal(t, "jean@example.com", email)
			return activeUser(), nil
		}
		deps.profileRepo.findByUserIDFn = func(ctx context.Context, uid string) (*profile.Profile, error) {
			return &profile.Profile{UserID: userID, Name: "Jean", Role: string(role.RoleManager)}, nil
		}

		access, refresh, resp, err := deps.service.Login(ctx, "Jean@Example.com", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, string(role.RoleManager), resp.Role)
		assert.Equal(t, "Jean", resp.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return activeUser(), nil
		}

		_, _, _, err := deps.service.Login(ctx, "jean@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		_, _, _, err := deps.service.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			u := activeUser()
			u.IsActive = false
			return u, nil
		}

		_, _, _, err := deps.service.Login(ctx, "jean@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})

	t.Run("missing profile still issues tokens", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return activeUser(), nil
		}

		access, _, resp, err := deps.service.Login(ctx, "jean@example.com", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.Empty(t, resp.Role)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("rotates both tokens", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return &auth.User{ID: userID, Email: email, Password: string(hash), IsActive: true}, nil
		}
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, userID, id)
			return &auth.User{ID: userID, Email: "jean@example.com", Password: string(hash), IsActive: true}, nil
		}
		deps.profileRepo.findByUserIDFn = func(ctx context.Context, uid string) (*profile.Profile, error) {
			return &profile.Profile{UserID: userID, Name: "Jean", Role: string(role.RoleAdmin)}, nil
		}

		_, refresh, _, err := deps.service.Login(ctx, "jean@example.com", "s3cret-pass")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := deps.service.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, string(role.RoleAdmin), resp.Role)
	})

	t.Run("garbage token", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		_, _, _, err := deps.service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("bad user id", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetMe(ctx, "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetMe(ctx, uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
