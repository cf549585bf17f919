package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration

	// daily mode: runs at the given wall-clock time instead of a fixed interval
	daily    bool
	hour     int
	minute   int
	location *time.Location
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

// NewDailyInstance schedules the job once a day at hour:minute in the given
// timezone name. An unknown timezone falls back to UTC.
func NewDailyInstance(WorkerName string, hour, minute int, timezone string) *BaseImpl {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).WithField("worker_name", WorkerName).Error("unknown timezone, falling back to UTC")
		location = time.UTC
	}
	return &BaseImpl{
		WorkerName: WorkerName,
		daily:      true,
		hour:       hour,
		minute:     minute,
		location:   location,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	period := i.firstRunDelay
	if i.daily {
		period = i.untilNextRun(time.Now())
	}
	logger := i.GetLogger()
	for {
		select {
		// exit once the process context is cancelled
		case <-ctx.Done():
			logger.Info("job stopped")
			return
		case <-time.After(period):
			logger.Info("job started")
			jobFunc(ctx)
			logger.Info("job finished")
		}
		if i.daily {
			period = i.untilNextRun(time.Now())
		} else {
			period = i.runInterval
		}
	}
}

func (i BaseImpl) untilNextRun(now time.Time) time.Duration {
	now = now.In(i.location)
	next := time.Date(now.Year(), now.Month(), now.Day(), i.hour, i.minute, 0, 0, i.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
