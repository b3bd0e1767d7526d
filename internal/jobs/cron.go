package jobs

import (
	"context"
	"time"

	"deadyet/internal/services"
	"deadyet/pkg/logger"

	"github.com/robfig/cron/v3"
)

// InitCronJobs wires the optional in-process sweep schedule. The HTTP sweep
// trigger stays the primary surface; this exists for deployments without an
// external scheduler.
func InitCronJobs(c *cron.Cron, spec string, sweeps services.SweepService, log *logger.Logger) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := sweeps.Run(ctx)
		if err != nil {
			log.WithError(err).Error("Scheduled sweep failed")
			return
		}

		if report.AlreadyRunning {
			log.Info("Scheduled sweep skipped, another run in progress")
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.WithField("spec", spec).Info("Sweep schedule initialized")

	return nil
}
