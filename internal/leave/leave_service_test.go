package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/logfretaulnay/hr-zen/internal/leave"
	leaveerrors "github.com/logfretaulnay/hr-zen/internal/leave/errors"
	"github.com/logfretaulnay/hr-zen/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepository struct {
	withTxFn        func(tx *sql.Tx) leave.Repository
	createFn        func(ctx context.Context, l *leave.Leave) error
	findByIDFn      func(ctx context.Context, id string) (*leave.Leave, error)
	findAllByUserFn func(ctx context.Context, userID string) ([]leave.Leave, error)
	findAllFn       func(ctx context.Context) ([]leave.Leave, error)
	findByStatusFn  func(ctx context.Context, status string) ([]leave.Leave, error)
	updateFn        func(ctx context.Context, l *leave.Leave) error
	typeExistsFn    func(ctx context.Context, leaveTypeID string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByUser(ctx context.Context, userID string) ([]leave.Leave, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.Leave, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByStatus(ctx context.Context, status string) ([]leave.Leave, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) TypeExists(ctx context.Context, leaveTypeID string) (bool, error) {
	if f.typeExistsFn != nil {
		return f.typeExistsFn(ctx, leaveTypeID)
	}
	return true, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error { return nil }
func (f *fakeOutboxRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, userID string) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}

type leaveServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     leave.Service
	repo        *fakeLeaveRepository
	outbox      *fakeOutboxRepository
	invalidator *fakeInvalidator
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	outbox := &fakeOutboxRepository{}
	invalidator := &fakeInvalidator{}
	svc := leave.NewServiceWithOutbox(db, repo, outbox, invalidator)

	return &leaveServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		outbox:      outbox,
		invalidator: invalidator,
	}
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

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	typeID := uuid.New().String()

	t.Run("success full days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-07",
			EndDate:     "2026-09-11",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 5.0, resp.TotalDays)
		assert.NotNil(t, created)
		assert.Equal(t, actorID, created.UserID.String())

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave_request.created", deps.outbox.created[0].EventType)
		assert.Equal(t, created.ID.String(), deps.outbox.created[0].AggregateID)
	})

	t.Run("half day markers reduce the count", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID:  typeID,
			StartDate:    "2026-09-07",
			EndDate:      "2026-09-08",
			HalfDayStart: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1.5, resp.TotalDays)
	})

	t.Run("single day marked half at both ends is rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID:  typeID,
			StartDate:    "2026-09-07",
			EndDate:      "2026-09-07",
			HalfDayStart: true,
			HalfDayEnd:   true,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNonPositiveDuration)
	})

	t.Run("start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-11",
			EndDate:     "2026-09-07",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.typeExistsFn = func(ctx context.Context, leaveTypeID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-07",
			EndDate:     "2026-09-08",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveTypeNotFound)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("repo error rolls back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			return errors.New("db error")
		}

		_, err := deps.service.Create(ctx, actorID, leave.CreateLeaveRequest{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-07",
			EndDate:     "2026-09-08",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func pendingLeave(owner uuid.UUID) *leave.Leave {
	l := &leave.Leave{
		ID:     uuid.New(),
		UserID: owner,
		Status: leave.StatusPending,
	}
	return l
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	manager := uuid.New().String()

	t.Run("approve", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		existing := pendingLeave(owner)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		resp, err := deps.service.Decide(ctx, manager, "MANAGER", existing.ID.String(), leave.DecideLeaveRequest{
			Status: leave.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.DecidedBy)
		assert.Equal(t, manager, *resp.DecidedBy)
		assert.NotNil(t, resp.DecidedAt)

		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "leave_request.decided", deps.outbox.created[0].EventType)
		assert.Equal(t, []string{owner.String()}, deps.invalidator.invalidated)
	})

	t.Run("reject requires a comment", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Decide(ctx, manager, "MANAGER", uuid.New().String(), leave.DecideLeaveRequest{
			Status: leave.StatusRejected,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrCommentRequired)
	})

	t.Run("reject keeps the balance cache", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		existing := pendingLeave(owner)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		resp, err := deps.service.Decide(ctx, manager, "ADMIN", existing.ID.String(), leave.DecideLeaveRequest{
			Status:  leave.StatusRejected,
			Comment: "team is at capacity that week",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.ManagerComment)
		assert.Empty(t, deps.invalidator.invalidated)
	})

	t.Run("employee role cannot decide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Decide(ctx, manager, "EMPLOYEE", uuid.New().String(), leave.DecideLeaveRequest{
			Status: leave.StatusApproved,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrManagerRoleRequired)
	})

	t.Run("terminal statuses are immutable", func(t *testing.T) {
		for _, status := range []string{leave.StatusApproved, leave.StatusRejected, leave.StatusCanceled} {
			t.Run(status, func(t *testing.T) {
				deps := setupLeaveServiceTest(t)
				defer deps.db.Close()

				existing := pendingLeave(owner)
				existing.Status = status

				expectTx(t, deps.sqlMock, false)
				deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
					return existing, nil
				}

				_, err := deps.service.Decide(ctx, manager, "MANAGER", existing.ID.String(), leave.DecideLeaveRequest{
					Status: leave.StatusApproved,
				})

				assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)
				assert.Empty(t, deps.outbox.created)
			})
		}
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("owner cancels pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		existing := pendingLeave(owner)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		resp, err := deps.service.Cancel(ctx, owner.String(), existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCanceled, resp.Status)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		existing := pendingLeave(owner)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		_, err := deps.service.Cancel(ctx, uuid.New().String(), existing.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		existing := pendingLeave(owner)
		existing.Status = leave.StatusApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		_, err := deps.service.Cancel(ctx, owner.String(), existing.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)
	})
}

func TestLeaveService_GetByID_Visibility(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	existing := pendingLeave(owner)

	t.Run("owner sees their own request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		resp, err := deps.service.GetByID(ctx, owner.String(), "EMPLOYEE", existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
	})

	t.Run("another employee is refused", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		_, err := deps.service.GetByID(ctx, uuid.New().String(), "EMPLOYEE", existing.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotVisible)
	})

	t.Run("manager sees any request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return existing, nil
		}

		resp, err := deps.service.GetByID(ctx, uuid.New().String(), "MANAGER", existing.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
	})
}
