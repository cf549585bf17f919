package dbmodels

import "timesheet-backend/models"

// Notification is an append-only log of delivered (or attempted) pushes.
type Notification struct {
	BaseModel
	UserID              string                  `gorm:"type:uuid;index"`
	ValidationRequestID string                  `gorm:"type:uuid;index"`
	Type                models.NotificationType `gorm:"type:varchar(50)"`
	Title               string                  `gorm:"type:varchar(255)"`
	Body                string
	Data                map[string]string `gorm:"serializer:json;type:jsonb"`
}
