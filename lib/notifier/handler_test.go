package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"timesheet-backend/lib/push"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

type fakeUsersStore struct {
	users map[string]*dbmodels.User
}

func (f *fakeUsersStore) GetByID(id string) (*dbmodels.User, error) {
	return f.users[id], nil
}

func (f *fakeUsersStore) Create(rec dbmodels.User) (string, error) { return "", nil }

func (f *fakeUsersStore) SetFCMToken(id, token string) error { return nil }

type fakeValidationStore struct {
	pending []dbmodels.ValidationRequest
}

func (f *fakeValidationStore) Create(rec dbmodels.ValidationRequest) (string, error) { return "", nil }

func (f *fakeValidationStore) GetByID(id string) (*dbmodels.ValidationRequest, error) {
	return nil, nil
}

func (f *fakeValidationStore) SetStatus(id string, status models.ValidationStatus, signature string, validatedAt time.Time) error {
	return nil
}

func (f *fakeValidationStore) SetPdfPath(id, pdfPath string) error { return nil }

func (f *fakeValidationStore) ListPendingOlderThan(cutoff time.Time) ([]dbmodels.ValidationRequest, error) {
	var list []dbmodels.ValidationRequest
	for _, rec := range f.pending {
		if rec.CreatedAt.Before(cutoff) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeValidationStore) List(employeeID, managerID string) ([]dbmodels.ValidationRequest, error) {
	return nil, nil
}

func (f *fakeValidationStore) UpsertView(view dbmodels.ValidationView) error { return nil }

func (f *fakeValidationStore) CleanExpired() error { return nil }

type fakeNotificationStore struct {
	records []dbmodels.Notification
}

func (f *fakeNotificationStore) Add(rec dbmodels.Notification) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeNotificationStore) ListByUser(userID string) ([]dbmodels.Notification, error) {
	return nil, nil
}

type fakePush struct {
	sent    []push.Message
	sendErr error
}

func (f *fakePush) Send(ctx context.Context, msg push.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func user(id, firstName, token string, pushEnabled bool) *dbmodels.User {
	rec := dbmodels.User{
		FirstName:   firstName,
		LastName:    "Dupont",
		FCMToken:    token,
		PushEnabled: pushEnabled,
	}
	rec.ID = id
	return &rec
}

func validation(id, employeeID, managerID string, status models.ValidationStatus, createdAt time.Time) dbmodels.ValidationRequest {
	rec := dbmodels.ValidationRequest{
		EmployeeID:  employeeID,
		ManagerID:   managerID,
		PeriodStart: createdAt.AddDate(0, -1, 0),
		PeriodEnd:   createdAt,
		Status:      status,
	}
	rec.ID = id
	rec.CreatedAt = createdAt
	return rec
}

func TestOnCreated(t *testing.T) {
	ctx := context.TODO()
	now := time.Now()

	t.Run(`manager notified check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"emp": user("emp", "Marie", "tok-emp", true),
			"mgr": user("mgr", "Paul", "tok-mgr", true),
		}}
		pushClient := &fakePush{}
		store := &fakeNotificationStore{}
		handler := NewHandler(users, &fakeValidationStore{}, store, pushClient)

		handler.OnCreated(ctx, validation("v1", "emp", "mgr", models.ValidationStatusPending, now))

		require.Len(t, pushClient.sent, 1)
		require.Equal(t, "tok-mgr", pushClient.sent[0].Token)
		require.Equal(t, "Nouvelle demande de validation", pushClient.sent[0].Notification.Title)
		require.Equal(t, "Marie Dupont demande la validation de sa timesheet", pushClient.sent[0].Notification.Body)
		require.Len(t, store.records, 1)
		require.Equal(t, models.NotificationTypeRequest, store.records[0].Type)
		require.Equal(t, "mgr", store.records[0].UserID)
	})

	t.Run(`unknown employee fallback name check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"mgr": user("mgr", "Paul", "tok-mgr", true),
		}}
		pushClient := &fakePush{}
		handler := NewHandler(users, &fakeValidationStore{}, &fakeNotificationStore{}, pushClient)

		handler.OnCreated(ctx, validation("v1", "ghost", "mgr", models.ValidationStatusPending, now))

		require.Len(t, pushClient.sent, 1)
		require.Equal(t, "Un employé demande la validation de sa timesheet", pushClient.sent[0].Notification.Body)
	})

	t.Run(`manager without token skipped check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"mgr": user("mgr", "Paul", "", true),
		}}
		pushClient := &fakePush{}
		store := &fakeNotificationStore{}
		handler := NewHandler(users, &fakeValidationStore{}, store, pushClient)

		handler.OnCreated(ctx, validation("v1", "emp", "mgr", models.ValidationStatusPending, now))

		require.Empty(t, pushClient.sent)
		require.Empty(t, store.records)
	})

	t.Run(`push disabled skipped check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"mgr": user("mgr", "Paul", "tok-mgr", false),
		}}
		pushClient := &fakePush{}
		handler := NewHandler(users, &fakeValidationStore{}, &fakeNotificationStore{}, pushClient)

		handler.OnCreated(ctx, validation("v1", "emp", "mgr", models.ValidationStatusPending, now))

		require.Empty(t, pushClient.sent)
	})
}

func TestOnStatusChanged(t *testing.T) {
	ctx := context.TODO()
	now := time.Now()

	users := func() *fakeUsersStore {
		return &fakeUsersStore{users: map[string]*dbmodels.User{
			"emp": user("emp", "Marie", "tok-emp", true),
		}}
	}

	t.Run(`approval notifies employee check`, func(t *testing.T) {
		pushClient := &fakePush{}
		store := &fakeNotificationStore{}
		handler := NewHandler(users(), &fakeValidationStore{}, store, pushClient)

		before := validation("v1", "emp", "mgr", models.ValidationStatusPending, now)
		after := validation("v1", "emp", "mgr", models.ValidationStatusApproved, now)
		handler.OnStatusChanged(ctx, before, after)

		require.Len(t, pushClient.sent, 1)
		require.Equal(t, "tok-emp", pushClient.sent[0].Token)
		require.Equal(t, "Timesheet approuvée", pushClient.sent[0].Notification.Title)
		require.Equal(t, "Votre timesheet a été approuvée par votre manager", pushClient.sent[0].Notification.Body)
		require.Len(t, store.records, 1)
		require.Equal(t, models.NotificationTypeFeedback, store.records[0].Type)
	})

	t.Run(`rejection notifies employee check`, func(t *testing.T) {
		pushClient := &fakePush{}
		handler := NewHandler(users(), &fakeValidationStore{}, &fakeNotificationStore{}, pushClient)

		before := validation("v1", "emp", "mgr", models.ValidationStatusPending, now)
		after := validation("v1", "emp", "mgr", models.ValidationStatusRejected, now)
		handler.OnStatusChanged(ctx, before, after)

		require.Len(t, pushClient.sent, 1)
		require.Equal(t, "Timesheet rejetée", pushClient.sent[0].Notification.Title)
		require.Equal(t, "Votre timesheet nécessite des corrections", pushClient.sent[0].Notification.Body)
	})

	t.Run(`unchanged status is a no-op check`, func(t *testing.T) {
		pushClient := &fakePush{}
		store := &fakeNotificationStore{}
		handler := NewHandler(users(), &fakeValidationStore{}, store, pushClient)

		rec := validation("v1", "emp", "mgr", models.ValidationStatusApproved, now)
		handler.OnStatusChanged(ctx, rec, rec)

		require.Empty(t, pushClient.sent)
		require.Empty(t, store.records)
	})

	t.Run(`push failure keeps log clean check`, func(t *testing.T) {
		pushClient := &fakePush{sendErr: errors.New("fcm unavailable")}
		store := &fakeNotificationStore{}
		handler := NewHandler(users(), &fakeValidationStore{}, store, pushClient)

		before := validation("v1", "emp", "mgr", models.ValidationStatusPending, now)
		after := validation("v1", "emp", "mgr", models.ValidationStatusApproved, now)
		handler.OnStatusChanged(ctx, before, after)

		require.Empty(t, store.records)
	})
}

func TestSendPendingReminders(t *testing.T) {
	ctx := context.TODO()
	now := time.Now()

	t.Run(`stale pending reminded check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"mgr": user("mgr", "Paul", "tok-mgr", true),
		}}
		validations := &fakeValidationStore{pending: []dbmodels.ValidationRequest{
			validation("v1", "emp", "mgr", models.ValidationStatusPending, now.Add(-72*time.Hour)),
			validation("v2", "emp", "mgr", models.ValidationStatusPending, now.Add(-24*time.Hour)),
		}}
		pushClient := &fakePush{}
		handler := NewHandler(users, validations, &fakeNotificationStore{}, pushClient)

		count, err := handler.SendPendingReminders(ctx)
		require.Nil(t, err)
		require.Equal(t, 1, count)
		require.Len(t, pushClient.sent, 1)
		require.Equal(t, "Rappel: Validation en attente", pushClient.sent[0].Notification.Title)
		require.Equal(t, "Vous avez une timesheet en attente de validation", pushClient.sent[0].Notification.Body)
	})

	t.Run(`manager without token not counted check`, func(t *testing.T) {
		users := &fakeUsersStore{users: map[string]*dbmodels.User{
			"mgr": user("mgr", "Paul", "", true),
		}}
		validations := &fakeValidationStore{pending: []dbmodels.ValidationRequest{
			validation("v1", "emp", "mgr", models.ValidationStatusPending, now.Add(-72*time.Hour)),
		}}
		pushClient := &fakePush{}
		handler := NewHandler(users, validations, &fakeNotificationStore{}, pushClient)

		count, err := handler.SendPendingReminders(ctx)
		require.Nil(t, err)
		require.Equal(t, 0, count)
		require.Empty(t, pushClient.sent)
	})
}
