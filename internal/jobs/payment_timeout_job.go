package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StalePaymentSweeper fails payments stuck in PROCESSING.
type StalePaymentSweeper interface {
	FailStalePayments(ctx context.Context, cmd commands.FailStalePaymentsCommand) (int, error)
}

// PaymentTimeoutJob periodically fails payments whose gateway call never came back,
// which moves their orders to PAYMENT_FAILED.
type PaymentTimeoutJob struct {
	sweeper    StalePaymentSweeper
	staleAfter time.Duration
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewPaymentTimeoutJob(
	sweeper StalePaymentSweeper,
	staleAfter time.Duration,
	schedule string,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		sweeper:    sweeper,
		staleAfter: staleAfter,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payment_timeout_job"),
	}
}

// Run performs a single sweep.
func (j *PaymentTimeoutJob) Run(ctx context.Context) {
	cmd, err := commands.NewFailStalePaymentsCommand(j.staleAfter)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout job misconfigured", "error", err)
		return
	}

	failed, err := j.sweeper.FailStalePayments(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout job failed", "error", err)
		return
	}
	if failed > 0 {
		j.logger.InfoContext(ctx, "Failed stale payments", "count", failed, "stale_after", j.staleAfter)
	}
}

func (j *PaymentTimeoutJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment timeout job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *PaymentTimeoutJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}
