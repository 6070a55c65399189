// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. PaymentTimeoutJob fails payments that stayed in PROCESSING longer than the
//     stale threshold. Their orders move to PAYMENT_FAILED through the payment mirror.
//  2. FailedOrderExpiryJob cancels (CANCELLED_BY_SYSTEM) orders left in PAYMENT_FAILED
//     longer than the expiry threshold.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, jobs.Schedules{
//		PaymentTimeout:    "@every 30s",
//		PaymentStaleAfter: 2 * time.Minute,
//		FailedOrderExpiry: "@every 1m",
//		FailedOrderMaxAge: 30 * time.Minute,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Each sweep handles records in their own transactions and skips the ones that
// fail, so a run only logs at Error when the listing itself failed. Failed job
// starts stop the jobs already running.
package jobs
