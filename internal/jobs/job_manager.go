package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
)

// Schedules holds cron specs and age thresholds for the sweeps.
type Schedules struct {
	PaymentTimeout    string
	PaymentStaleAfter time.Duration
	FailedOrderExpiry string
	FailedOrderMaxAge time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentTimeoutJob    *PaymentTimeoutJob
	failedOrderExpiryJob *FailedOrderExpiryJob
}

func NewJobManager(sweeper commands.SweepCommandHandler, schedules Schedules, logger *slog.Logger) *JobManager {
	return &JobManager{
		paymentTimeoutJob: NewPaymentTimeoutJob(
			sweeper, schedules.PaymentStaleAfter, schedules.PaymentTimeout, logger,
		),
		failedOrderExpiryJob: NewFailedOrderExpiryJob(
			sweeper, schedules.FailedOrderMaxAge, schedules.FailedOrderExpiry, logger,
		),
	}
}

// StartAll starts every job. If one fails to start, the ones already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment timeout job: %w", err)
	}

	if err := jm.failedOrderExpiryJob.Start(); err != nil {
		jm.paymentTimeoutJob.Stop()
		return fmt.Errorf("failed to start failed order expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running sweeps.
func (jm *JobManager) StopAll() {
	jm.failedOrderExpiryJob.Stop()
	jm.paymentTimeoutJob.Stop()
}
