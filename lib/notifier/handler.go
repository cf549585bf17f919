package notifier

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	notificationstore "timesheet-backend/lib/notifier/store"
	"timesheet-backend/lib/push"
	usersstore "timesheet-backend/lib/users/store"
	"timesheet-backend/lib/utils/helpers"
	validationstore "timesheet-backend/lib/validation/store"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

// reminderThreshold is how long a validation may stay pending before its
// manager gets nudged.
const reminderThreshold = 48 * time.Hour

const clickAction = "FLUTTER_NOTIFICATION_CLICK"

type Provider interface {
	// OnCreated notifies the manager about a new validation request.
	// Delivery problems are logged, never surfaced to the caller.
	OnCreated(ctx context.Context, rec dbmodels.ValidationRequest)
	// OnStatusChanged notifies the employee about an approval or rejection.
	// An unchanged or unrecognized status is a no-op.
	OnStatusChanged(ctx context.Context, before, after dbmodels.ValidationRequest)
	// SendPendingReminders pushes a reminder to every manager with a
	// validation pending for longer than the threshold and returns the
	// number of reminders attempted.
	SendPendingReminders(ctx context.Context) (int, error)
	// History returns the notification log of one user, newest first.
	History(userID string) ([]dbmodels.Notification, error)
}

func NewHandler(usersStore usersstore.Provider, validationStore validationstore.Provider,
	notificationStore notificationstore.Provider, pushProvider push.Provider) Provider {
	return &impl{
		usersStore:        usersStore,
		validationStore:   validationStore,
		notificationStore: notificationStore,
		pushProvider:      pushProvider,
	}
}

type impl struct {
	usersStore        usersstore.Provider
	validationStore   validationstore.Provider
	notificationStore notificationstore.Provider
	pushProvider      push.Provider
}

func (i impl) getLogger(validationID string) *log.Entry {
	return log.
		WithField("validation_id", validationID)
}

func (i impl) OnCreated(ctx context.Context, rec dbmodels.ValidationRequest) {
	logger := i.getLogger(rec.ID)
	manager, err := i.usersStore.GetByID(rec.ManagerID)
	if err != nil {
		logger.WithError(err).Error("failed to fetch manager")
		return
	}
	if manager == nil || manager.FCMToken == "" || !manager.PushEnabled {
		logger.Info("manager unreachable for push, notification skipped")
		return
	}
	employeeName := "Un employé"
	employee, err := i.usersStore.GetByID(rec.EmployeeID)
	if err != nil {
		logger.WithError(err).Error("failed to fetch employee")
	} else if employee != nil {
		employeeName = employee.DisplayName()
	}

	title := "Nouvelle demande de validation"
	body := fmt.Sprintf("%v demande la validation de sa timesheet", employeeName)
	data := map[string]string{
		"type":          string(models.NotificationTypeRequest),
		"validation_id": rec.ID,
		"click_action":  clickAction,
	}
	i.deliver(ctx, logger, *manager, rec.ID, models.NotificationTypeRequest, title, body, data, "validations")
}

func (i impl) OnStatusChanged(ctx context.Context, before, after dbmodels.ValidationRequest) {
	if before.Status == after.Status {
		return
	}
	logger := i.getLogger(after.ID)

	var title, body string
	switch after.Status {
	case models.ValidationStatusApproved:
		title = "Timesheet approuvée"
		body = "Votre timesheet a été approuvée par votre manager"
	case models.ValidationStatusRejected:
		title = "Timesheet rejetée"
		body = "Votre timesheet nécessite des corrections"
	default:
		// unrecognized target status, nothing to announce
		return
	}

	employee, err := i.usersStore.GetByID(after.EmployeeID)
	if err != nil {
		logger.WithError(err).Error("failed to fetch employee")
		return
	}
	if employee == nil || employee.FCMToken == "" || !employee.PushEnabled {
		logger.Info("employee unreachable for push, notification skipped")
		return
	}

	data := map[string]string{
		"type":          string(models.NotificationTypeFeedback),
		"validation_id": after.ID,
		"status":        string(after.Status),
		"click_action":  clickAction,
	}
	i.deliver(ctx, logger, *employee, after.ID, models.NotificationTypeFeedback, title, body, data, "feedback")
}

func (i impl) SendPendingReminders(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-reminderThreshold)
	pending, err := i.validationStore.ListPendingOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	attempted := 0
	for _, rec := range pending {
		if helpers.IsContextDone(ctx) {
			break
		}
		logger := i.getLogger(rec.ID)
		manager, err := i.usersStore.GetByID(rec.ManagerID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch manager")
			continue
		}
		if manager == nil || manager.FCMToken == "" || !manager.PushEnabled {
			continue
		}
		data := map[string]string{
			"type":          string(models.NotificationTypeReminder),
			"validation_id": rec.ID,
			"click_action":  clickAction,
		}
		attempted++
		i.deliver(ctx, logger, *manager, rec.ID, models.NotificationTypeReminder,
			"Rappel: Validation en attente", "Vous avez une timesheet en attente de validation", data, "reminders")
	}
	log.WithField("count", attempted).Info("validation reminders sent")
	return attempted, nil
}

func (i impl) History(userID string) ([]dbmodels.Notification, error) {
	return i.notificationStore.ListByUser(userID)
}

// deliver sends the push and appends the notification log entry. Failures
// on either side are logged and swallowed.
func (i impl) deliver(ctx context.Context, logger *log.Entry, recipient dbmodels.User, validationID string,
	notificationType models.NotificationType, title, body string, data map[string]string, channelID string) {
	msg := push.Message{
		Token: recipient.FCMToken,
		Notification: push.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &push.AndroidConfig{
			Priority: "high",
			Notification: push.AndroidNotification{
				ChannelID: channelID,
				Priority:  "high",
			},
		},
		Apns: &push.ApnsConfig{
			Payload: push.ApnsPayload{
				Aps: push.Aps{
					Badge: 1,
					Sound: "default",
				},
			},
		},
	}
	err := i.pushProvider.Send(ctx, msg)
	if err != nil {
		logger.WithError(err).Error("push delivery error")
		return
	}
	err = i.notificationStore.Add(dbmodels.Notification{
		UserID:              recipient.ID,
		ValidationRequestID: validationID,
		Type:                notificationType,
		Title:               title,
		Body:                body,
		Data:                data,
	})
	if err != nil {
		logger.WithError(err).Error("failed to append notification record")
	}
}
