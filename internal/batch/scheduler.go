package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 10 * time.Minute

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Schedule registers job on c. Each run gets its own context bounded by timeout.
func Schedule(c *cron.Cron, spec string, timeout time.Duration, job Job, logger *slog.Logger) (cron.EntryID, error) {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	jobLogger := logger.With("job_name", job.Name())

	id, err := c.AddJob(spec, cron.FuncJob(func() {
		jobLogger.Info("Cron triggered: running job.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Job finished with error", slog.Any("error", runErr))
			return
		}
		jobLogger.Info("Job finished successfully.")
	}))
	if err != nil {
		jobLogger.Error("Failed to schedule job", "schedule", spec, slog.Any("error", err))
		return 0, err
	}

	jobLogger.Info("Scheduled job", "schedule", spec, "job_id", id)
	return id, nil
}
