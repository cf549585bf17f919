package validationapimodels

import (
	"time"

	"github.com/pkg/errors"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

type ValidationCreateData struct {
	ManagerID   string    `json:"manager_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	PdfPath     string    `json:"pdf_path"`
}

func (r ValidationCreateData) Validate() error {
	if r.ManagerID == "" {
		return errors.New("manager is not specified")
	}
	if r.PeriodStart.IsZero() || r.PeriodEnd.IsZero() {
		return errors.New("period is not specified")
	}
	if r.PeriodEnd.Before(r.PeriodStart) {
		return errors.New("period end is before period start")
	}
	if r.PdfPath == "" {
		return errors.New("pdf path is not specified")
	}
	return nil
}

type DecisionData struct {
	Signature string `json:"signature"` // base64 png, required on approval
}

type ValidationRequestView struct {
	ID               string                  `json:"id"`
	EmployeeID       string                  `json:"employee_id"`
	ManagerID        string                  `json:"manager_id"`
	PeriodStart      time.Time               `json:"period_start"`
	PeriodEnd        time.Time               `json:"period_end"`
	Status           models.ValidationStatus `json:"status"`
	PdfPath          string                  `json:"pdf_path"`
	PdfWithSignature bool                    `json:"pdf_with_signature"`
	CreatedAt        time.Time               `json:"created_at"`
	ValidatedAt      *time.Time              `json:"validated_at,omitempty"`
}

func ConvertToView(rec dbmodels.ValidationRequest) ValidationRequestView {
	return ValidationRequestView{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		ManagerID:        rec.ManagerID,
		PeriodStart:      rec.PeriodStart,
		PeriodEnd:        rec.PeriodEnd,
		Status:           rec.Status,
		PdfPath:          rec.PdfPath,
		PdfWithSignature: rec.PdfWithSignature,
		CreatedAt:        rec.CreatedAt,
		ValidatedAt:      rec.ValidatedAt,
	}
}

type ListFilter struct {
	EmployeeID string `json:"employee_id"`
	ManagerID  string `json:"manager_id"`
}

func (r ListFilter) Validate() error {
	return nil
}

type RegenerateData struct {
	ValidationID string `json:"validation_id"`
}

func (r RegenerateData) Validate() error {
	if r.ValidationID == "" {
		return errors.Wrap(models.ErrInvalidInput, "validation id is required")
	}
	return nil
}

type RegenerateResult struct {
	NewPath string `json:"new_path"`
}

type JobResult struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	NewPath string `json:"new_path,omitempty"`
	Error   string `json:"error,omitempty"`
}

type QueueResult struct {
	Processed int         `json:"processed"`
	Results   []JobResult `json:"results"`
}
