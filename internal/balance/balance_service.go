package balance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	balanceerrors "github.com/logfretaulnay/hr-zen/internal/balance/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	balanceCacheTTL       = 5 * time.Minute
	balanceCacheKeyPrefix = "balance:"
)

// The two built-in categories draw their yearly figure from the profile.
// Admins tune them per user on the profile, not through allotment rows.
const (
	annualLeaveLabel = "Congés payés"
	rttLabel         = "RTT"
)

func balanceCacheKey(userID string, year int) string {
	return fmt.Sprintf("%s%s:%d", balanceCacheKeyPrefix, userID, year)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Compute(ctx context.Context, userID string, year int) (BalanceResponse, error)
	SetAllotment(ctx context.Context, userID string, req SetAllotmentRequest) (BalanceResponse, error)
	Invalidate(ctx context.Context, userID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Compute(ctx context.Context, userID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidUserID
	}
	if year < 2000 || year > 2100 {
		return BalanceResponse{}, balanceerrors.ErrInvalidYear
	}

	cacheKey := balanceCacheKey(userID, year)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp BalanceResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				s.logger.Debug("balance cache hit", zap.String("key", cacheKey))
				return resp, nil
			}
		}
	}

	// Concurrent misses for the same user/year collapse into one query.
	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.computeFresh(ctx, userID, year)
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	resp := v.(BalanceResponse)

	if s.rdb != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, body, balanceCacheTTL).Err(); err != nil {
				s.logger.Error("balance cache store failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) computeFresh(ctx context.Context, userID string, year int) (BalanceResponse, error) {
	allowances, err := s.repo.AllowancesByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrProfileNotFound
		}
		return BalanceResponse{}, err
	}

	usages, err := s.repo.UsedDaysByType(ctx, userID, year)
	if err != nil {
		return BalanceResponse{}, err
	}
	allotments, err := s.repo.FindAllotments(ctx, userID, year)
	if err != nil {
		return BalanceResponse{}, err
	}

	overrides := make(map[string]decimal.Decimal, len(allotments))
	for _, a := range allotments {
		overrides[a.LeaveTypeID.String()] = a.Days
	}

	resp := BalanceResponse{
		UserID:          userID,
		Year:            year,
		AnnualLeaveDays: allowances.AnnualLeaveDays.InexactFloat64(),
		RTTDays:         allowances.RTTDays.InexactFloat64(),
		Items:           make([]BalanceItem, 0, len(usages)),
	}

	totalUsed := decimal.Zero
	for _, u := range usages {
		item := BalanceItem{
			LeaveTypeID: u.LeaveTypeID,
			Label:       u.Label,
			Color:       u.Color,
			Used:        u.Used.InexactFloat64(),
		}

		// Per-user override beats the profile figure for the built-in
		// categories, which beats the type default. No figure at all means
		// the type is untracked and has no remaining balance to report.
		var allotted *decimal.Decimal
		if override, ok := overrides[u.LeaveTypeID]; ok {
			allotted = &override
		} else if builtin := builtinAllowance(u.Label, allowances); builtin != nil {
			allotted = builtin
		} else if u.MaxDays != nil {
			allotted = u.MaxDays
		}
		if allotted != nil {
			a := allotted.InexactFloat64()
			remaining := allotted.Sub(u.Used).InexactFloat64()
			item.Allotted = &a
			item.Remaining = &remaining
		}

		totalUsed = totalUsed.Add(u.Used)
		resp.Items = append(resp.Items, item)
	}
	resp.TotalUsed = totalUsed.InexactFloat64()

	return resp, nil
}

func builtinAllowance(label string, pa *ProfileAllowances) *decimal.Decimal {
	switch label {
	case annualLeaveLabel:
		d := pa.AnnualLeaveDays
		return &d
	case rttLabel:
		d := pa.RTTDays
		return &d
	}
	return nil
}

func (s *service) SetAllotment(ctx context.Context, userID string, req SetAllotmentRequest) (BalanceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidUserID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidLeaveTypeID
	}
	days := decimal.NewFromFloat(req.Days)
	if days.IsNegative() {
		return BalanceResponse{}, balanceerrors.ErrNegativeAllotment
	}

	a := &Allotment{
		ID:          uuid.New(),
		UserID:      userUUID,
		LeaveTypeID: typeUUID,
		Year:        req.Year,
		Days:        days,
	}
	if err := s.repo.UpsertAllotment(ctx, a); err != nil {
		s.logger.Error("upsert allotment failed",
			zap.String("user_id", userID),
			zap.String("leave_type_id", req.LeaveTypeID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}

	if err := s.Invalidate(ctx, userID); err != nil {
		s.logger.Error("balance cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("allotment set",
		zap.String("user_id", userID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)
	return s.Compute(ctx, userID, req.Year)
}

// Invalidate drops the cached balances around the current year. Requests can
// only be filed a year ahead or behind, so this covers every key a decision
// can stale.
func (s *service) Invalidate(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	year := time.Now().UTC().Year()
	keys := []string{
		balanceCacheKey(userID, year-1),
		balanceCacheKey(userID, year),
		balanceCacheKey(userID, year+1),
	}
	return s.rdb.Del(ctx, keys...).Err()
}
