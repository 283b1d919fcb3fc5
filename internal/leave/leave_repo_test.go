package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/logfretaulnay/hr-zen/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Two separate mock connections: one backing the gorm pool, one backing the
// transaction. A write that hits the wrong connection fails its expectation.
func TestLeaveRepository_WithTxRoutesWrites(t *testing.T) {
	ctx := context.Background()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	txMock.ExpectExec(`UPDATE "leave_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))

	repo := leave.NewRepository(gdb).WithTx(tx)
	l := &leave.Leave{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(5),
		Status:      leave.StatusApproved,
	}

	assert.NoError(t, repo.Update(ctx, l))
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestLeaveRepository_WithoutTxUsesPool(t *testing.T) {
	ctx := context.Background()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	poolMock.ExpectBegin()
	poolMock.ExpectExec(`UPDATE "leave_requests"`).WillReturnResult(sqlmock.NewResult(0, 1))
	poolMock.ExpectCommit()

	repo := leave.NewRepository(gdb)
	l := &leave.Leave{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TotalDays:   decimal.NewFromInt(1),
		Status:      leave.StatusPending,
	}

	assert.NoError(t, repo.Update(ctx, l))
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
