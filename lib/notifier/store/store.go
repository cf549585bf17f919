package notificationstore

import (
	"gorm.io/gorm"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Add(rec dbmodels.Notification) error
	ListByUser(userID string) (list []dbmodels.Notification, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Add appends to the log; records are never updated afterwards.
func (i impl) Add(rec dbmodels.Notification) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) ListByUser(userID string) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
