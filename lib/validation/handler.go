package validation

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	regenqueuestore "timesheet-backend/lib/regen-queue/store"
	usersstore "timesheet-backend/lib/users/store"
	validationstore "timesheet-backend/lib/validation/store"
	connectionhub "timesheet-backend/lib/ws/hub/connection-hub"
	"timesheet-backend/models"
	validationapimodels "timesheet-backend/models/api/validation"
	dbmodels "timesheet-backend/models/db"
	wsmodels "timesheet-backend/models/ws"
)

// Notifier is the lifecycle observer invoked on record creation and on
// status transitions.
type Notifier interface {
	OnCreated(ctx context.Context, rec dbmodels.ValidationRequest)
	OnStatusChanged(ctx context.Context, before, after dbmodels.ValidationRequest)
}

type Provider interface {
	Create(ctx context.Context, employeeID string, data validationapimodels.ValidationCreateData) (id string, err error)
	GetByID(id, callerID string) (validationapimodels.ValidationRequestView, error)
	List(callerID string, filter validationapimodels.ListFilter) ([]validationapimodels.ValidationRequestView, error)
	ListAll() ([]dbmodels.ValidationRequest, error)
	// Approve attaches the manager signature, flips the record to approved
	// and enqueues a pdf regeneration job.
	Approve(ctx context.Context, id, callerID string, data validationapimodels.DecisionData) error
	Reject(ctx context.Context, id, callerID string) error
	// Sync refreshes the read view of one record and pushes it to any live
	// session of the employee and the manager. Only those two may call it.
	Sync(ctx context.Context, id, callerID string) error
}

func NewHandler(store validationstore.Provider, usersStore usersstore.Provider,
	queueStore regenqueuestore.Provider, notifier Notifier, hub connectionhub.Provider) Provider {
	return &impl{
		store:      store,
		usersStore: usersStore,
		queueStore: queueStore,
		notifier:   notifier,
		hub:        hub,
	}
}

type impl struct {
	store      validationstore.Provider
	usersStore usersstore.Provider
	queueStore regenqueuestore.Provider
	notifier   Notifier
	hub        connectionhub.Provider
}

func (i impl) Create(ctx context.Context, employeeID string, data validationapimodels.ValidationCreateData) (string, error) {
	manager, err := i.usersStore.GetByID(data.ManagerID)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch manager")
	}
	if manager == nil {
		return "", errors.Wrap(models.ErrNotFound, "manager not found")
	}
	rec := dbmodels.ValidationRequest{
		EmployeeID:  employeeID,
		ManagerID:   data.ManagerID,
		PeriodStart: data.PeriodStart,
		PeriodEnd:   data.PeriodEnd,
		Status:      models.ValidationStatusPending,
		PdfPath:     data.PdfPath,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	rec.ID = id
	i.notifier.OnCreated(ctx, rec)
	return id, nil
}

func (i impl) GetByID(id, callerID string) (validationapimodels.ValidationRequestView, error) {
	rec, err := i.getAuthorized(id, callerID)
	if err != nil {
		return validationapimodels.ValidationRequestView{}, err
	}
	return validationapimodels.ConvertToView(*rec), nil
}

func (i impl) List(callerID string, filter validationapimodels.ListFilter) ([]validationapimodels.ValidationRequestView, error) {
	// callers only ever see their own records
	if filter.EmployeeID != callerID && filter.ManagerID != callerID {
		return nil, errors.Wrap(models.ErrPermissionDenied, "list is limited to own records")
	}
	list, err := i.store.List(filter.EmployeeID, filter.ManagerID)
	if err != nil {
		return nil, err
	}
	views := make([]validationapimodels.ValidationRequestView, 0, len(list))
	for _, rec := range list {
		views = append(views, validationapimodels.ConvertToView(rec))
	}
	return views, nil
}

func (i impl) ListAll() ([]dbmodels.ValidationRequest, error) {
	return i.store.List("", "")
}

func (i impl) Approve(ctx context.Context, id, callerID string, data validationapimodels.DecisionData) error {
	if data.Signature == "" {
		return errors.Wrap(models.ErrInvalidInput, "manager signature is required")
	}
	return i.decide(ctx, id, callerID, models.ValidationStatusApproved, data.Signature)
}

func (i impl) Reject(ctx context.Context, id, callerID string) error {
	return i.decide(ctx, id, callerID, models.ValidationStatusRejected, "")
}

func (i impl) decide(ctx context.Context, id, callerID string, status models.ValidationStatus, signature string) error {
	before, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "failed to fetch validation")
	}
	if before == nil {
		return errors.Wrap(models.ErrNotFound, "validation not found")
	}
	if before.ManagerID != callerID {
		return errors.Wrap(models.ErrPermissionDenied, "only the assigned manager can decide")
	}
	if before.Status.IsTerminal() {
		return errors.Wrap(models.ErrInvalidInput, "validation is already decided")
	}

	validatedAt := time.Now()
	err = i.store.SetStatus(id, status, signature, validatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to update status")
	}

	after := *before
	after.Status = status
	after.ManagerSignature = signature
	after.ValidatedAt = &validatedAt

	if status == models.ValidationStatusApproved {
		created, jobID, err := i.queueStore.Enqueue(id)
		if err != nil {
			log.WithError(err).
				WithField("validation_id", id).
				Error("failed to enqueue pdf regeneration job")
		} else if created {
			log.
				WithField("validation_id", id).
				WithField("job_id", jobID).
				Info("pdf regeneration job enqueued")
		}
	}

	i.notifier.OnStatusChanged(ctx, *before, after)
	return nil
}

func (i impl) Sync(ctx context.Context, id, callerID string) error {
	rec, err := i.getAuthorized(id, callerID)
	if err != nil {
		return err
	}
	view := dbmodels.ValidationView{
		ValidationID:     rec.ID,
		EmployeeID:       rec.EmployeeID,
		ManagerID:        rec.ManagerID,
		PeriodStart:      rec.PeriodStart,
		PeriodEnd:        rec.PeriodEnd,
		Status:           rec.Status,
		PdfPath:          rec.PdfPath,
		PdfWithSignature: rec.PdfWithSignature,
		ValidatedAt:      rec.ValidatedAt,
		SyncedAt:         time.Now(),
	}
	err = i.store.UpsertView(view)
	if err != nil {
		return errors.Wrap(err, "failed to refresh validation view")
	}
	i.broadcast(*rec)
	return nil
}

func (i impl) getAuthorized(id, callerID string) (*dbmodels.ValidationRequest, error) {
	if callerID == "" {
		return nil, models.ErrUnauthenticated
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch validation")
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "validation not found")
	}
	if rec.EmployeeID != callerID && rec.ManagerID != callerID {
		return nil, errors.Wrap(models.ErrPermissionDenied, "user does not have access to this validation")
	}
	return rec, nil
}

func (i impl) broadcast(rec dbmodels.ValidationRequest) {
	if i.hub == nil {
		return
	}
	payload := validationapimodels.ConvertToView(rec)
	now := time.Now().Format("02.01.2006 15:04:05")
	for _, userID := range []string{rec.EmployeeID, rec.ManagerID} {
		if !i.hub.IsConnected(userID) {
			continue
		}
		i.hub.SendMessage(wsmodels.ServerMessage{
			ToUserID: userID,
			Time:     now,
			Code:     wsmodels.CodeValidationSynced,
			Data:     payload,
		})
	}
}
