package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crm-admin/internal/infrastructure/monitoring"
)

const formLinkExpiryJobName = "FormLinkExpiry"

type FormLinkExpirer interface {
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// FormLinkExpiryJob marks pending form links whose validity has passed as expired.
type FormLinkExpiryJob struct {
	links  FormLinkExpirer
	now    func() time.Time
	logger *slog.Logger
}

func NewFormLinkExpiryJob(links FormLinkExpirer, logger *slog.Logger) *FormLinkExpiryJob {
	if links == nil || logger == nil {
		panic("FormLinkExpiryJob dependencies cannot be nil")
	}
	return &FormLinkExpiryJob{
		links:  links,
		now:    time.Now,
		logger: logger.With("job", formLinkExpiryJobName),
	}
}

func (j *FormLinkExpiryJob) Name() string { return formLinkExpiryJobName }

func (j *FormLinkExpiryJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting form link expiry job.")

	n, err := j.links.ExpirePending(ctx, j.now())
	if err != nil {
		monitoring.RecordJobRun(formLinkExpiryJobName, "error", time.Since(startTime).Seconds())
		j.logger.ErrorContext(ctx, "Failed to expire pending form links.", slog.Any("error", err))
		return fmt.Errorf("failed to expire form links: %w", err)
	}

	monitoring.RecordJobItems(formLinkExpiryJobName, "expired", int(n))
	monitoring.RecordJobRun(formLinkExpiryJobName, "success", time.Since(startTime).Seconds())
	j.logger.InfoContext(ctx, "Form link expiry job finished.",
		slog.Int64("expired", n), slog.Duration("duration", time.Since(startTime)))
	return nil
}
