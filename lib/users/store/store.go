package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.User, err error)
	Create(rec dbmodels.User) (id string, err error)
	SetFCMToken(id, token string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) SetFCMToken(id, token string) error {
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"fcm_token": token})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("user not found")
	}
	return nil
}
