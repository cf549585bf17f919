package regenqueue

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filestorage "timesheet-backend/lib/file-storage"
	pdfcompositor "timesheet-backend/lib/pdf-compositor"
	regenqueuestore "timesheet-backend/lib/regen-queue/store"
	"timesheet-backend/lib/utils/helpers"
	validationstore "timesheet-backend/lib/validation/store"
	"timesheet-backend/models"
	validationapimodels "timesheet-backend/models/api/validation"
	dbmodels "timesheet-backend/models/db"
)

// batchSize bounds one drain pass; older jobs go first.
const batchSize = 10

type Provider interface {
	// ProcessQueue drains up to batchSize pending jobs. A failed job is
	// recorded in its result entry and never aborts the batch.
	ProcessQueue(ctx context.Context) (validationapimodels.QueueResult, error)
	// Regenerate produces the signed pdf variant for one validation request
	// and returns the derived storage path.
	Regenerate(ctx context.Context, validationID string) (newPath string, err error)
}

func NewHandler(queueStore regenqueuestore.Provider, validationStore validationstore.Provider,
	storage filestorage.Provider, compositor pdfcompositor.Provider) Provider {
	return &impl{
		queueStore:      queueStore,
		validationStore: validationStore,
		storage:         storage,
		compositor:      compositor,
	}
}

type impl struct {
	queueStore      regenqueuestore.Provider
	validationStore validationstore.Provider
	storage         filestorage.Provider
	compositor      pdfcompositor.Provider
}

func (i impl) getLogger(jobID, validationID string) *log.Entry {
	return log.
		WithField("job_id", jobID).
		WithField("validation_id", validationID)
}

func (i impl) ProcessQueue(ctx context.Context) (validationapimodels.QueueResult, error) {
	result := validationapimodels.QueueResult{
		Results: []validationapimodels.JobResult{},
	}
	jobs, err := i.queueStore.ListPending(batchSize)
	if err != nil {
		return result, errors.Wrap(err, "failed to fetch queue")
	}
	for _, job := range jobs {
		if helpers.IsContextDone(ctx) {
			break
		}
		jobResult := i.processJob(ctx, job)
		if jobResult == nil {
			// lost the claim to a concurrent drain
			continue
		}
		result.Results = append(result.Results, *jobResult)
	}
	result.Processed = len(result.Results)
	return result, nil
}

func (i impl) processJob(ctx context.Context, job dbmodels.RegenerationJob) *validationapimodels.JobResult {
	logger := i.getLogger(job.ID, job.ValidationID)
	claimed, err := i.queueStore.Claim(job.ID)
	if err != nil {
		logger.WithError(err).Error("job claim error")
		return &validationapimodels.JobResult{
			JobID:  job.ID,
			Status: string(dbmodels.RegenerationJobPending),
			Error:  err.Error(),
		}
	}
	if !claimed {
		return nil
	}
	newPath, err := i.Regenerate(ctx, job.ValidationID)
	if err != nil {
		logger.WithError(err).Error("pdf regeneration failed")
		markErr := i.queueStore.MarkFailed(job.ID, err.Error())
		if markErr != nil {
			logger.WithError(markErr).Error("failed to mark job failed")
		}
		return &validationapimodels.JobResult{
			JobID:  job.ID,
			Status: string(dbmodels.RegenerationJobFailed),
			Error:  err.Error(),
		}
	}
	err = i.queueStore.MarkCompleted(job.ID)
	if err != nil {
		logger.WithError(err).Error("failed to mark job completed")
	}
	logger.WithField("new_path", newPath).Info("pdf regenerated with signature")
	return &validationapimodels.JobResult{
		JobID:   job.ID,
		Status:  string(dbmodels.RegenerationJobCompleted),
		NewPath: newPath,
	}
}

func (i impl) Regenerate(ctx context.Context, validationID string) (string, error) {
	validation, err := i.validationStore.GetByID(validationID)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch validation")
	}
	if validation == nil {
		return "", errors.Wrap(models.ErrNotFound, "validation not found")
	}
	if validation.ManagerSignature == "" {
		return "", models.ErrSignatureMissing
	}

	pdfData, err := i.storage.Download(ctx, validation.PdfPath)
	if err != nil {
		return "", errors.Wrap(models.ErrDownloadFailed, err.Error())
	}

	validatedAt := time.Now()
	if validation.ValidatedAt != nil {
		validatedAt = *validation.ValidatedAt
	}
	signedPdf, err := i.compositor.Compose(pdfData, validation.ManagerSignature, validatedAt)
	if err != nil {
		return "", err
	}

	newPath := helpers.ValidatedPdfPath(validation.PdfPath)
	err = i.storage.Upload(ctx, newPath, signedPdf)
	if err != nil {
		return "", errors.Wrap(models.ErrUploadFailed, err.Error())
	}

	err = i.validationStore.SetPdfPath(validationID, newPath)
	if err != nil {
		return "", errors.Wrap(models.ErrUpdateFailed, err.Error())
	}
	return newPath, nil
}
