package profile

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	FindByRoles(ctx context.Context, roles []string) ([]Profile, error)
	Update(ctx context.Context, p *Profile) error
	RoleByUserID(ctx context.Context, userID string) (string, error)
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.conn(ctx).
		Order("name ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindByRoles(ctx context.Context, roles []string) ([]Profile, error) {
	var profiles []Profile
	err := r.conn(ctx).
		Where("role IN ?", roles).
		Where("is_active = ?", true).
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Save(p).Error
}

// RoleByUserID is the lightweight lookup the role-resolution middleware uses
// on every authenticated request.
func (r *repository) RoleByUserID(ctx context.Context, userID string) (string, error) {
	var roleName string
	err := r.conn(ctx).
		Model(&Profile{}).
		Select("role").
		Where("user_id = ?", userID).
		Scan(&roleName).Error
	return roleName, err
}
