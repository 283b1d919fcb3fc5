package leave

import (
	"context"
	"database/sql"

	"github.com/logfretaulnay/hr-zen/internal/leavetype"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindAllByUser(ctx context.Context, userID string) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindByStatus(ctx context.Context, status string) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error
	TypeExists(ctx context.Context, leaveTypeID string) (bool, error)
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

// conn runs statements on the attached transaction when one is set, so a
// status update and its outbox row really share the caller's tx.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("LeaveType", "Profile").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.conn(ctx).
		Preload("LeaveType").
		Preload("Profile").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("LeaveType").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("LeaveType").
		Preload("Profile").
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Leave, error) {
	var leaves []Leave
	err := r.conn(ctx).
		Preload("LeaveType").
		Preload("Profile").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("LeaveType", "Profile").Save(l).Error
}

// TypeExists only matches live rows; soft-deleted types cannot be used for
// new requests even though historical requests may still reference them.
func (r *repository) TypeExists(ctx context.Context, leaveTypeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&leavetype.LeaveType{}).
		Where("id = ?", leaveTypeID).
		Count(&count).Error
	return count > 0, err
}
