package validationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ValidationRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.ValidationRequest, err error)
	// SetStatus performs the pending -> approved|rejected transition.
	// The update is conditional on the current status still being pending,
	// so a terminal record can never transition again.
	SetStatus(id string, status models.ValidationStatus, signature string, validatedAt time.Time) error
	SetPdfPath(id, pdfPath string) error
	ListPendingOlderThan(cutoff time.Time) (list []dbmodels.ValidationRequest, err error)
	List(employeeID, managerID string) (list []dbmodels.ValidationRequest, err error)
	UpsertView(view dbmodels.ValidationView) error
	CleanExpired() error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ValidationRequest) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ValidationRequest, error) {
	rec := dbmodels.ValidationRequest{}
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

func (i impl) SetStatus(id string, status models.ValidationStatus, signature string, validatedAt time.Time) error {
	updMap := map[string]interface{}{
		"status":       status,
		"validated_at": validatedAt,
	}
	if signature != "" {
		updMap["manager_signature"] = signature
	}
	tx := i.db.
		Model(&dbmodels.ValidationRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.ValidationStatusPending).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("validation is not pending or does not exist")
	}
	return nil
}

func (i impl) SetPdfPath(id, pdfPath string) error {
	tx := i.db.
		Model(&dbmodels.ValidationRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pdf_path":           pdfPath,
			"pdf_with_signature": true,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("validation not found")
	}
	return nil
}

func (i impl) ListPendingOlderThan(cutoff time.Time) (list []dbmodels.ValidationRequest, err error) {
	list = []dbmodels.ValidationRequest{}
	err = i.db.
		Where("status = ?", models.ValidationStatusPending).
		Where("created_at <= ?", cutoff).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List(employeeID, managerID string) (list []dbmodels.ValidationRequest, err error) {
	list = []dbmodels.ValidationRequest{}
	tx := i.db.Model(&dbmodels.ValidationRequest{})
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	if managerID != "" {
		tx = tx.Where("manager_id = ?", managerID)
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpsertView(view dbmodels.ValidationView) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "validation_id"}},
			UpdateAll: true,
		}).
		Create(&view).
		Error
}

// CleanExpired delegates the definition of "expired" to the SQL routine
// owned by the record store.
func (i impl) CleanExpired() error {
	return i.db.Exec(`SELECT clean_expired_validations()`).Error
}
