// File: internal/jobs/catalog_archive.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"homequest_backend/internal/catalog"
	"homequest_backend/internal/config"
)

// CatalogArchiveJob periodically archives listings that have been on the
// market longer than the configured maximum age. Archived listings stop
// appearing in search results but stay in the catalog table.
type CatalogArchiveJob struct {
	catalogRepo   catalog.Repository
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewCatalogArchiveJob creates a new CatalogArchiveJob.
func NewCatalogArchiveJob(
	catalogRepo catalog.Repository,
	logger *zap.Logger,
	cfg *config.Config,
) *CatalogArchiveJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &CatalogArchiveJob{
		catalogRepo:   catalogRepo,
		logger:        logger.Named("CatalogArchiveJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *CatalogArchiveJob) SetupAndStart() error {
	jobSpec := j.cfg.ListingArchiveCron
	if jobSpec == "" {
		j.logger.Warn("Listing archive job schedule not defined (LISTING_ARCHIVE_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule listing archive job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Listing archive job scheduled",
		zap.String("spec", jobSpec),
		zap.Int("max_age_days", j.cfg.ListingMaxAgeDays),
		zap.Any("jobID", jobID),
	)
	j.cronScheduler.Start()
	return nil
}

// runJob archives everything listed before now minus the configured max age.
func (j *CatalogArchiveJob) runJob() {
	j.logger.Info("Starting listing archive job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.cfg.ListingMaxAgeDays)
	archivedCount, err := j.catalogRepo.ArchiveOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("Listing archive job run failed", zap.Error(err))
	} else {
		j.logger.Info("Listing archive job run completed",
			zap.Int64("listings_archived", archivedCount),
			zap.Time("cutoff", cutoff),
		)
	}
}

// Stop gracefully stops the cron scheduler.
func (j *CatalogArchiveJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping listing archive job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Listing archive job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Listing archive job scheduler stop timed out.")
		}
	}
}

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
