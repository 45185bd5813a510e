package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"crm-admin/internal/batch"
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockFormLinkExpirer struct {
	mock.Mock
}

func (m *MockFormLinkExpirer) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockOfferExpirer struct {
	mock.Mock
}

func (m *MockOfferExpirer) ListOverdueIDs(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOfferExpirer) ChangeStatus(ctx context.Context, offerID int64, to offer.Status, actor string) (*offer.Offer, error) {
	args := m.Called(ctx, offerID, to, actor)
	if o, ok := args.Get(0).(*offer.Offer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFormLinkExpiryJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		links := new(MockFormLinkExpirer)
		links.On("ExpirePending", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

		job := batch.NewFormLinkExpiryJob(links, logger)
		assert.Equal(t, "FormLinkExpiry", job.Name())
		assert.NoError(t, job.Run(ctx))
		links.AssertExpectations(t)
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		links := new(MockFormLinkExpirer)
		links.On("ExpirePending", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), apperrors.ErrDatabase).Once()

		err := batch.NewFormLinkExpiryJob(links, logger).Run(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		links.AssertExpectations(t)
	})

	t.Run("NilDependencies", func(t *testing.T) {
		assert.Panics(t, func() { batch.NewFormLinkExpiryJob(nil, logger) })
	})
}

func TestOfferExpiryJob(t *testing.T) {
	ctx := context.Background()

	t.Run("ExpiresEveryOverdueOffer", func(t *testing.T) {
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", ctx, mock.AnythingOfType("time.Time")).Return([]int64{1, 2, 3}, nil).Once()
		for _, id := range []int64{1, 2, 3} {
			offers.On("ChangeStatus", ctx, id, offer.StatusExpired, "system").
				Return(&offer.Offer{ID: id, Status: offer.StatusExpired}, nil).Once()
		}

		assert.NoError(t, batch.NewOfferExpiryJob(offers, logger).Run(ctx))
		offers.AssertExpectations(t)
	})

	t.Run("NothingOverdue", func(t *testing.T) {
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", ctx, mock.AnythingOfType("time.Time")).Return([]int64{}, nil).Once()

		assert.NoError(t, batch.NewOfferExpiryJob(offers, logger).Run(ctx))
		offers.AssertNotCalled(t, "ChangeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConcurrentChangesAreSkipped", func(t *testing.T) {
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", ctx, mock.AnythingOfType("time.Time")).Return([]int64{4, 5}, nil).Once()
		offers.On("ChangeStatus", ctx, int64(4), offer.StatusExpired, "system").Return(nil, offer.ErrInvalidTransition).Once()
		offers.On("ChangeStatus", ctx, int64(5), offer.StatusExpired, "system").Return(nil, apperrors.ErrNotFound).Once()

		assert.NoError(t, batch.NewOfferExpiryJob(offers, logger).Run(ctx))
		offers.AssertExpectations(t)
	})

	t.Run("FailuresAreReported", func(t *testing.T) {
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", ctx, mock.AnythingOfType("time.Time")).Return([]int64{6, 7}, nil).Once()
		offers.On("ChangeStatus", ctx, int64(6), offer.StatusExpired, "system").Return(nil, errors.New("db down")).Once()
		offers.On("ChangeStatus", ctx, int64(7), offer.StatusExpired, "system").
			Return(&offer.Offer{ID: 7, Status: offer.StatusExpired}, nil).Once()

		err := batch.NewOfferExpiryJob(offers, logger).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 errors")
		offers.AssertExpectations(t)
	})

	t.Run("ListFailureAbortsJob", func(t *testing.T) {
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", ctx, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrDatabase).Once()

		err := batch.NewOfferExpiryJob(offers, logger).Run(ctx)
		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		offers.AssertNotCalled(t, "ChangeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		offers := new(MockOfferExpirer)
		offers.On("ListOverdueIDs", cancelled, mock.AnythingOfType("time.Time")).Return([]int64{8}, nil).Once()
		offers.On("ChangeStatus", cancelled, int64(8), offer.StatusExpired, "system").
			Return(nil, context.Canceled).Maybe()

		err := batch.NewOfferExpiryJob(offers, logger).Run(cancelled)
		assert.Error(t, err)
	})
}

type stubJob struct {
	mu    sync.Mutex
	runs  int
	ctxOK bool
}

func (s *stubJob) Name() string { return "Stub" }

func (s *stubJob) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, s.ctxOK = ctx.Deadline()
	s.runs++
	return nil
}

func TestSchedule(t *testing.T) {
	t.Run("RegistersJobWithDeadline", func(t *testing.T) {
		c := cron.New()
		job := &stubJob{}

		id, err := batch.Schedule(c, "@every 1h", time.Second, job, logger)
		require.NoError(t, err)

		c.Entry(id).Job.Run()
		job.mu.Lock()
		defer job.mu.Unlock()
		assert.Equal(t, 1, job.runs)
		assert.True(t, job.ctxOK)
	})

	t.Run("InvalidSpec", func(t *testing.T) {
		_, err := batch.Schedule(cron.New(), "not a schedule", 0, &stubJob{}, logger)
		assert.Error(t, err)
	})
}
