package balance

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TypeUsage is one row of the per-type aggregate: every live leave type,
// the approved days consumed against it, and its default yearly allowance.
type TypeUsage struct {
	LeaveTypeID string
	Label       string
	Color       string
	MaxDays     *decimal.Decimal
	Used        decimal.Decimal
}

// ProfileAllowances mirrors the headline figures stored on the profile.
type ProfileAllowances struct {
	AnnualLeaveDays decimal.Decimal
	RTTDays         decimal.Decimal
}

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UsedDaysByType(ctx context.Context, userID string, year int) ([]TypeUsage, error)
	FindAllotments(ctx context.Context, userID string, year int) ([]Allotment, error)
	UpsertAllotment(ctx context.Context, a *Allotment) error
	AllowancesByUserID(ctx context.Context, userID string) (*ProfileAllowances, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the attached transaction when one is set.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

// UsedDaysByType returns one row per live leave type, including types the
// user never requested. Cancelled years of the type itself do not appear.
func (r *repository) UsedDaysByType(ctx context.Context, userID string, year int) ([]TypeUsage, error) {
	query := `
SELECT
	lt.id::text            AS leave_type_id,
	lt.label               AS label,
	lt.color               AS color,
	lt.max_days_per_year   AS max_days,
	COALESCE(SUM(lr.total_days), 0) AS used
FROM leave_types lt
LEFT JOIN leave_requests lr
	ON lr.leave_type_id = lt.id
	AND lr.user_id = ?
	AND lr.status = 'APPROVED'
	AND EXTRACT(YEAR FROM lr.start_date) = ?
WHERE lt.deleted_at IS NULL
GROUP BY lt.id, lt.label, lt.color, lt.max_days_per_year
ORDER BY lt.label ASC
`
	var usages []TypeUsage
	err := r.conn(ctx).Raw(query, userID, year).Scan(&usages).Error
	return usages, err
}

func (r *repository) FindAllotments(ctx context.Context, userID string, year int) ([]Allotment, error) {
	var allotments []Allotment
	err := r.conn(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		Find(&allotments).Error
	return allotments, err
}

func (r *repository) UpsertAllotment(ctx context.Context, a *Allotment) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "leave_type_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) AllowancesByUserID(ctx context.Context, userID string) (*ProfileAllowances, error) {
	query := `
SELECT annual_leave_days, rtt_days
FROM profiles
WHERE user_id = ? AND deleted_at IS NULL
`
	var pa ProfileAllowances
	res := r.conn(ctx).Raw(query, userID).Scan(&pa)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &pa, nil
}
