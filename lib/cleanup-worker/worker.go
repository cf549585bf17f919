package cleanupworker

import (
	"context"

	baseworker "timesheet-backend/lib/utils/base-worker"
	validationstore "timesheet-backend/lib/validation/store"
)

// Daily 02:00 trigger of the store-side expired-validation cleanup routine.
// What counts as expired lives entirely in that routine.
func StartWorker(ctx context.Context, validationStore validationstore.Provider, timezone string) {
	i := &impl{
		BaseImpl:        *baseworker.NewDailyInstance("ValidationCleanupWorker", 2, 0, timezone),
		validationStore: validationStore,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	validationStore validationstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	err := i.validationStore.CleanExpired()
	if err != nil {
		logger.WithError(err).Error("expired validation cleanup failed")
		return
	}
	logger.Info("expired validations cleaned")
}
