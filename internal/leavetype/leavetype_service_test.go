package leavetype_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/logfretaulnay/hr-zen/internal/leavetype"
	leavetypeerrors "github.com/logfretaulnay/hr-zen/internal/leavetype/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	withTxFn   func(tx *sql.Tx) leavetype.Repository
	createFn   func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn  func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	updateFn   func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func setupLeaveTypeTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeLeaveTypeRepository, leavetype.Service) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveTypeRepository{}
	svc := leavetype.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var created *leavetype.LeaveType
		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			created = lt
			return nil
		}

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Label:            "Paid leave",
			Color:            "#22c55e",
			IsPaid:           boolPtr(true),
			RequiresApproval: boolPtr(true),
			MaxDaysPerYear:   floatPtr(25),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Paid leave", resp.Label)
		assert.NotNil(t, resp.MaxDaysPerYear)
		assert.Equal(t, 25.0, *resp.MaxDaysPerYear)
		assert.NotNil(t, created)
	})

	t.Run("negative max days", func(t *testing.T) {
		db, _, _, svc := setupLeaveTypeTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Label:            "Broken",
			Color:            "#000000",
			IsPaid:           boolPtr(true),
			RequiresApproval: boolPtr(true),
			MaxDaysPerYear:   floatPtr(-1),
		})

		assert.ErrorIs(t, err, leavetypeerrors.ErrNegativeMaxDays)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		db, _, repo, svc := setupLeaveTypeTest(t)
		defer db.Close()

		repo.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := svc.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		db, _, _, svc := setupLeaveTypeTest(t)
		defer db.Close()

		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		var deletedID string
		repo.deleteFn = func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		}

		id := uuid.New().String()
		err := svc.Delete(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, deletedID)
	})

	t.Run("repo error rolls back", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		repo.deleteFn = func(ctx context.Context, id string) error {
			return errors.New("db error")
		}

		err := svc.Delete(ctx, uuid.New().String())
		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
