package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"crm-admin/internal/domain/offer"
	"crm-admin/internal/infrastructure/monitoring"
	"crm-admin/internal/pkg/apperrors"
)

const (
	offerExpiryJobName = "OfferExpiry"
	systemActor        = "system"
	defaultWorkers     = 4
)

type OfferExpirer interface {
	ListOverdueIDs(ctx context.Context, now time.Time) ([]int64, error)
	ChangeStatus(ctx context.Context, offerID int64, to offer.Status, actor string) (*offer.Offer, error)
}

// OfferExpiryJob moves sent offers whose validity date has passed to expired.
type OfferExpiryJob struct {
	offers  OfferExpirer
	workers int
	now     func() time.Time
	logger  *slog.Logger
}

func NewOfferExpiryJob(offers OfferExpirer, logger *slog.Logger) *OfferExpiryJob {
	if offers == nil || logger == nil {
		panic("OfferExpiryJob dependencies cannot be nil")
	}
	return &OfferExpiryJob{
		offers:  offers,
		workers: defaultWorkers,
		now:     time.Now,
		logger:  logger.With("job", offerExpiryJobName),
	}
}

func (j *OfferExpiryJob) Name() string { return offerExpiryJobName }

func (j *OfferExpiryJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting offer expiry job.")

	ids, err := j.offers.ListOverdueIDs(ctx, j.now())
	if err != nil {
		monitoring.RecordJobRun(offerExpiryJobName, "error", time.Since(startTime).Seconds())
		j.logger.ErrorContext(ctx, "Failed to list overdue offers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list overdue offers: %w", err)
	}
	if len(ids) == 0 {
		monitoring.RecordJobRun(offerExpiryJobName, "success", time.Since(startTime).Seconds())
		j.logger.InfoContext(ctx, "No overdue offers found.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var expired, skipped, failed atomic.Int32
	work := make(chan int64)
	var wg sync.WaitGroup
	for i := 0; i < j.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range work {
				logCtx := j.logger.With(slog.Int64("offerID", id))
				_, err := j.offers.ChangeStatus(ctx, id, offer.StatusExpired, systemActor)
				switch {
				case err == nil:
					expired.Add(1)
				case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, offer.ErrInvalidTransition):
					logCtx.WarnContext(ctx, "Offer changed before it could be expired", slog.Any("error", err))
					skipped.Add(1)
				default:
					logCtx.ErrorContext(ctx, "Failed to expire offer", slog.Any("error", err))
					failed.Add(1)
				}
			}
		}()
	}

feed:
	for _, id := range ids {
		select {
		case work <- id:
		case <-ctx.Done():
			j.logger.WarnContext(ctx, "Job context done, stopping early", slog.Any("error", ctx.Err()))
			break feed
		}
	}
	close(work)
	wg.Wait()

	monitoring.RecordJobItems(offerExpiryJobName, "expired", int(expired.Load()))
	monitoring.RecordJobItems(offerExpiryJobName, "skipped", int(skipped.Load()))
	monitoring.RecordJobItems(offerExpiryJobName, "failed", int(failed.Load()))

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("overdue", len(ids)),
		slog.Int("expired", int(expired.Load())),
		slog.Int("skipped", int(skipped.Load())),
		slog.Int("errors_encountered", int(failed.Load())),
	)

	if n := failed.Load(); n > 0 {
		monitoring.RecordJobRun(offerExpiryJobName, "error", time.Since(startTime).Seconds())
		summaryLog.WarnContext(ctx, "Offer expiry job finished with errors.")
		return fmt.Errorf("job completed with %d errors", n)
	}
	if err := ctx.Err(); err != nil {
		monitoring.RecordJobRun(offerExpiryJobName, "error", time.Since(startTime).Seconds())
		return fmt.Errorf("job interrupted: %w", err)
	}
	monitoring.RecordJobRun(offerExpiryJobName, "success", time.Since(startTime).Seconds())
	summaryLog.InfoContext(ctx, "Offer expiry job finished successfully.")
	return nil
}
