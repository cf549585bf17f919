package usersapimodels

import (
	"github.com/pkg/errors"
	"timesheet-backend/models"
	dbmodels "timesheet-backend/models/db"
)

type RegisterData struct {
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
}

func (r RegisterData) Validate() error {
	if r.Email == "" {
		return errors.New("email is not specified")
	}
	if r.Role != models.EmployeeRole && r.Role != models.ManagerRole {
		return errors.New("unknown role")
	}
	return nil
}

type RegisterResult struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type FCMTokenData struct {
	Token string `json:"token"`
}

func (r FCMTokenData) Validate() error {
	if r.Token == "" {
		return errors.New("token is not specified")
	}
	return nil
}

type ProfileView struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        models.UserRole `json:"role"`
	PushEnabled bool            `json:"push_enabled"`
}

func ConvertToProfileView(rec dbmodels.User) ProfileView {
	return ProfileView{
		ID:          rec.ID,
		Email:       rec.Email,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Role:        rec.Role,
		PushEnabled: rec.PushEnabled,
	}
}
