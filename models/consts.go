package models

type UserRole string

const (
	EmployeeRole UserRole = "employee"
	ManagerRole  UserRole = "manager"
)

type ValidationStatus string

const (
	ValidationStatusPending  ValidationStatus = "pending"
	ValidationStatusApproved ValidationStatus = "approved"
	ValidationStatusRejected ValidationStatus = "rejected"
)

// IsTerminal reports whether no further status transition is allowed.
func (s ValidationStatus) IsTerminal() bool {
	return s == ValidationStatusApproved || s == ValidationStatusRejected
}

type NotificationType string

const (
	NotificationTypeRequest  NotificationType = "validation_request"
	NotificationTypeFeedback NotificationType = "validation_feedback"
	NotificationTypeReminder NotificationType = "reminder"
)
