package users

import (
	"github.com/pkg/errors"
	usersstore "timesheet-backend/lib/users/store"
	authutils "timesheet-backend/lib/utils/auth-utils"
	"timesheet-backend/models"
	usersapimodels "timesheet-backend/models/api/users"
	dbmodels "timesheet-backend/models/db"
)

type Provider interface {
	// Register creates the account and mints its access token.
	Register(data usersapimodels.RegisterData) (usersapimodels.RegisterResult, error)
	// RegisterFCMToken stores the device push token of the user.
	RegisterFCMToken(userID, token string) error
	GetProfile(userID string) (usersapimodels.ProfileView, error)
}

func NewHandler(store usersstore.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Register(data usersapimodels.RegisterData) (usersapimodels.RegisterResult, error) {
	rec := dbmodels.User{
		Email:       data.Email,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Role:        data.Role,
		PushEnabled: true,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return usersapimodels.RegisterResult{}, errors.Wrap(err, "failed to create user")
	}
	rec.ID = id
	token, err := authutils.GetToken(id, rec.DisplayName(), rec.Role)
	if err != nil {
		return usersapimodels.RegisterResult{}, errors.Wrap(err, "failed to issue token")
	}
	return usersapimodels.RegisterResult{
		UserID: id,
		Token:  token,
	}, nil
}

func (i impl) RegisterFCMToken(userID, token string) error {
	return i.store.SetFCMToken(userID, token)
}

func (i impl) GetProfile(userID string) (usersapimodels.ProfileView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return usersapimodels.ProfileView{}, errors.Wrap(err, "failed to fetch user")
	}
	if rec == nil {
		return usersapimodels.ProfileView{}, errors.Wrap(models.ErrNotFound, "user not found")
	}
	return usersapimodels.ConvertToProfileView(*rec), nil
}
