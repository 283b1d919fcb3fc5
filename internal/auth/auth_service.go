package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "github.com/logfretaulnay/hr-zen/internal/auth/errors"
	"github.com/logfretaulnay/hr-zen/internal/profile"
	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	profileRepo profile.Repository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profileRepo profile.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, profileRepo: profileRepo, logger: l}
}

// Register provisions the account and its profile row together, mirroring the
// provisioning trigger of the hosted identity provider this replaces.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, autherrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return AuthResponse{}, err
	}
	defer tx.Rollback()

	user := &User{
		ID:       uuid.New(),
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		IsActive: true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Error("register create user failed", zap.Error(err))
		return AuthResponse{}, err
	}

	p := &profile.Profile{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   req.Name,
		Email:  user.Email,
		Role:   string(role.RoleEmployee),
	}
	if err := s.profileRepo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("register create profile failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  p.Name,
		Role:  p.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	// The role claim is a snapshot taken at login. It is the metadata source
	// for role resolution and can go stale after an admin role change; the
	// resolver prefers it anyway, which preserves the original precedence.
	name, roleClaim := "", ""
	if p, err := s.profileRepo.FindByUserID(ctx, user.ID.String()); err == nil {
		name = p.Name
		roleClaim = p.Role
	} else {
		s.logger.Warn("login profile fetch failed, issuing token without role claim",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	accessToken, err := s.generateToken(user.ID.String(), user.Email, roleClaim, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), user.Email, roleClaim, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  name,
		Role:  roleClaim,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	// Refresh re-reads the profile so a role change lands in the new tokens.
	name, roleClaim := "", ""
	if p, err := s.profileRepo.FindByUserID(ctx, user.ID.String()); err == nil {
		name = p.Name
		roleClaim = p.Role
	}

	newAccessToken, err := s.generateToken(user.ID.String(), user.Email, roleClaim, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), user.Email, roleClaim, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  name,
		Role:  roleClaim,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := &AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	}
	if p, err := s.profileRepo.FindByUserID(ctx, user.ID.String()); err == nil {
		resp.Name = p.Name
		resp.Role = p.Role
	}
	return resp, nil
}

func (s *service) generateToken(userID, email, roleClaim string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	if roleClaim != "" {
		claims["role"] = roleClaim
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
