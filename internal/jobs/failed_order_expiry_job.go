package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FailedOrderSweeper cancels orders abandoned after a failed payment.
type FailedOrderSweeper interface {
	ExpireFailedOrders(ctx context.Context, cmd commands.ExpireFailedOrdersCommand) (int, error)
}

// FailedOrderExpiryJob moves orders that stayed in PAYMENT_FAILED too long to CANCELLED_BY_SYSTEM.
type FailedOrderExpiryJob struct {
	sweeper   FailedOrderSweeper
	olderThan time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewFailedOrderExpiryJob(
	sweeper FailedOrderSweeper,
	olderThan time.Duration,
	schedule string,
	logger *slog.Logger,
) *FailedOrderExpiryJob {
	return &FailedOrderExpiryJob{
		sweeper:   sweeper,
		olderThan: olderThan,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "failed_order_expiry_job"),
	}
}

func (j *FailedOrderExpiryJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireFailedOrdersCommand(j.olderThan)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed order expiry job misconfigured", "error", err)
		return
	}

	expired, err := j.sweeper.ExpireFailedOrders(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed order expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired failed orders", "count", expired, "older_than", j.olderThan)
	}
}

func (j *FailedOrderExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Failed order expiry job started", "schedule", j.schedule)
	return nil
}

func (j *FailedOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Failed order expiry job stopped")
}
