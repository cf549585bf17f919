package dbmodels

import (
	"time"
	"timesheet-backend/models"
)

type ValidationRequest struct {
	BaseModel
	EmployeeID       string `gorm:"type:uuid;index"`
	Employee         *User  `gorm:"foreignKey:EmployeeID"`
	ManagerID        string `gorm:"type:uuid;index"`
	Manager          *User  `gorm:"foreignKey:ManagerID"`
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Status           models.ValidationStatus `gorm:"type:varchar(50);index"`
	ManagerSignature string                  // base64 png, set on approval
	PdfPath          string                  `gorm:"type:varchar(1024)"`
	PdfWithSignature bool
	ValidatedAt      *time.Time
}

// ValidationView mirrors a ValidationRequest into a read-optimized row for
// clients that poll or stream state, refreshed by the sync endpoint.
type ValidationView struct {
	ValidationID     string `gorm:"primaryKey;type:uuid"`
	EmployeeID       string `gorm:"type:uuid;index"`
	ManagerID        string `gorm:"type:uuid;index"`
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Status           models.ValidationStatus `gorm:"type:varchar(50)"`
	PdfPath          string                  `gorm:"type:varchar(1024)"`
	PdfWithSignature bool
	ValidatedAt      *time.Time
	SyncedAt         time.Time
}
