package regenqueuestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	// Enqueue creates a pending job unless a non-terminal job for the same
	// validation already exists; it reports whether a job was created.
	Enqueue(validationID string) (created bool, id string, err error)
	// ListPending returns the oldest pending jobs first, limited to limit.
	ListPending(limit int) (list []dbmodels.RegenerationJob, err error)
	// Claim marks a pending job processing. The update is conditional on the
	// current status, so only one of several concurrent drains wins the job.
	Claim(id string) (claimed bool, err error)
	MarkCompleted(id string) error
	MarkFailed(id, errorMessage string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Enqueue(validationID string) (created bool, id string, err error) {
	var count int64
	err = i.db.
		Model(&dbmodels.RegenerationJob{}).
		Where("validation_id = ?", validationID).
		Where("status IN ?", []dbmodels.RegenerationJobStatus{
			dbmodels.RegenerationJobPending,
			dbmodels.RegenerationJobProcessing,
		}).
		Count(&count).
		Error
	if err != nil {
		return false, "", err
	}
	if count > 0 {
		return false, "", nil
	}
	rec := dbmodels.RegenerationJob{
		ValidationID: validationID,
		Status:       dbmodels.RegenerationJobPending,
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return false, "", err
	}
	return true, rec.ID, nil
}

func (i impl) ListPending(limit int) (list []dbmodels.RegenerationJob, err error) {
	list = []dbmodels.RegenerationJob{}
	err = i.db.
		Where("status = ?", dbmodels.RegenerationJobPending).
		Order("created_at asc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Claim(id string) (claimed bool, err error) {
	tx := i.db.
		Model(&dbmodels.RegenerationJob{}).
		Where("id = ?", id).
		Where("status = ?", dbmodels.RegenerationJobPending).
		Updates(map[string]interface{}{"status": dbmodels.RegenerationJobProcessing})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) MarkCompleted(id string) error {
	return i.markTerminal(id, dbmodels.RegenerationJobCompleted, "")
}

func (i impl) MarkFailed(id, errorMessage string) error {
	return i.markTerminal(id, dbmodels.RegenerationJobFailed, errorMessage)
}

func (i impl) markTerminal(id string, status dbmodels.RegenerationJobStatus, errorMessage string) error {
	now := time.Now()
	updMap := map[string]interface{}{
		"status":       status,
		"processed_at": now,
	}
	if errorMessage != "" {
		updMap["error_message"] = errorMessage
	}
	tx := i.db.
		Model(&dbmodels.RegenerationJob{}).
		Where("id = ?", id).
		Where("status = ?", dbmodels.RegenerationJobProcessing).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("job is not processing or does not exist")
	}
	return nil
}
