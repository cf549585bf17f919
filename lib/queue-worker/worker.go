package queueworker

import (
	"context"
	"time"

	regenqueue "timesheet-backend/lib/regen-queue"
	baseworker "timesheet-backend/lib/utils/base-worker"
)

// Periodic drain of the pdf regeneration queue.
func StartWorker(ctx context.Context, queueHandler regenqueue.Provider, interval time.Duration) {
	i := &impl{
		BaseImpl:     *baseworker.NewInstance("PdfQueueWorker", 15*time.Second, interval),
		queueHandler: queueHandler,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	queueHandler regenqueue.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	result, err := i.queueHandler.ProcessQueue(ctx)
	if err != nil {
		logger.WithError(err).Error("queue drain failed")
		return
	}
	if result.Processed > 0 {
		logger.WithField("processed", result.Processed).Info("regeneration jobs processed")
	}
}
