package reminderworker

import (
	"context"

	"timesheet-backend/lib/notifier"
	baseworker "timesheet-backend/lib/utils/base-worker"
)

// Daily 09:00 sweep reminding managers about stale pending validations.
func StartWorker(ctx context.Context, notifierHandler notifier.Provider, timezone string) {
	i := &impl{
		BaseImpl:        *baseworker.NewDailyInstance("ValidationReminderWorker", 9, 0, timezone),
		notifierHandler: notifierHandler,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	notifierHandler notifier.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	count, err := i.notifierHandler.SendPendingReminders(ctx)
	if err != nil {
		logger.WithError(err).Error("reminder sweep failed")
		return
	}
	logger.WithField("count", count).Info("reminder sweep finished")
}
