package dbmodels

import "time"

type RegenerationJob struct {
	BaseModel
	ValidationID string                `gorm:"type:uuid;index"`
	Validation   *ValidationRequest    `gorm:"foreignKey:ValidationID"`
	Status       RegenerationJobStatus `gorm:"type:varchar(50);index"`
	ProcessedAt  *time.Time
	ErrorMessage string
}

type RegenerationJobStatus string

const (
	RegenerationJobPending    RegenerationJobStatus = "pending"
	RegenerationJobProcessing RegenerationJobStatus = "processing"
	RegenerationJobCompleted  RegenerationJobStatus = "completed"
	RegenerationJobFailed     RegenerationJobStatus = "failed"
)
