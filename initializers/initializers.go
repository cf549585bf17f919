package initializers

import (
	"context"
	"time"

	"timesheet-backend/config"
	"timesheet-backend/db"
	"timesheet-backend/fiberlog"
	cleanupworker "timesheet-backend/lib/cleanup-worker"
	xlsexport "timesheet-backend/lib/export/xls"
	filestorage "timesheet-backend/lib/file-storage"
	"timesheet-backend/lib/notifier"
	notificationstore "timesheet-backend/lib/notifier/store"
	pdfcompositor "timesheet-backend/lib/pdf-compositor"
	"timesheet-backend/lib/push"
	queueworker "timesheet-backend/lib/queue-worker"
	regenqueue "timesheet-backend/lib/regen-queue"
	regenqueuestore "timesheet-backend/lib/regen-queue/store"
	reminderworker "timesheet-backend/lib/reminder-worker"
	"timesheet-backend/lib/users"
	usersstore "timesheet-backend/lib/users/store"
	"timesheet-backend/lib/validation"
	validationstore "timesheet-backend/lib/validation/store"
	connectionhub "timesheet-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

// Services holds every wired provider the http layer depends on.
type Services struct {
	ValidationHandler validation.Provider
	QueueHandler      regenqueue.Provider
	UsersHandler      users.Provider
	NotifierHandler   notifier.Provider
	XlsExport         xlsexport.Provider
	Hub               connectionhub.Provider
}

func InitAllServices(ctx context.Context) Services {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	minioClient := InitS3()

	usersStore := usersstore.NewInstance(db.DB)
	validationStore := validationstore.NewInstance(db.DB)
	queueStore := regenqueuestore.NewInstance(db.DB)
	notificationStore := notificationstore.NewInstance(db.DB)

	storage := filestorage.NewProvider(minioClient, config.Conf.S3.BucketName)
	if err := storage.EnsureBucket(ctx); err != nil {
		log.WithError(err).Error("bucket check failed")
	}

	pushProvider := push.NewProvider(config.Conf.Push.Endpoint, config.Conf.Push.ServerKey)
	compositor := pdfcompositor.NewProvider(pdfcompositor.DefaultLayout())
	hub := connectionhub.NewHub()

	notifierHandler := notifier.NewHandler(usersStore, validationStore, notificationStore, pushProvider)
	queueHandler := regenqueue.NewHandler(queueStore, validationStore, storage, compositor)
	validationHandler := validation.NewHandler(validationStore, usersStore, queueStore, notifierHandler, hub)

	go initWorkers(ctx, queueHandler, notifierHandler, validationStore)

	return Services{
		ValidationHandler: validationHandler,
		QueueHandler:      queueHandler,
		UsersHandler:      users.NewHandler(usersStore),
		NotifierHandler:   notifierHandler,
		XlsExport:         xlsexport.NewHandler(),
		Hub:               hub,
	}
}

// started with a 10s gap between each to spread the load
func initWorkers(ctx context.Context, queueHandler regenqueue.Provider,
	notifierHandler notifier.Provider, validationStore validationstore.Provider) {
	// drains pending pdf regeneration jobs
	queueworker.StartWorker(ctx, queueHandler, time.Duration(config.Conf.Workers.QueueDrainIntervalInSec)*time.Second)
	time.Sleep(10 * time.Second)

	// daily reminder for stale pending validations
	reminderworker.StartWorker(ctx, notifierHandler, config.Conf.Workers.Timezone)
	time.Sleep(10 * time.Second)

	// daily purge of expired records
	cleanupworker.StartWorker(ctx, validationStore, config.Conf.Workers.Timezone)
}
