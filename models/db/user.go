package dbmodels

import (
	"fmt"
	"timesheet-backend/models"
)

type User struct {
	BaseModel
	Email       string          `gorm:"type:varchar(255);index"`
	FirstName   string          `gorm:"type:varchar(150)"`
	LastName    string          `gorm:"type:varchar(150)"`
	Role        models.UserRole `gorm:"type:varchar(50)"`
	FCMToken    string          `gorm:"type:varchar(512)"`
	PushEnabled bool            `gorm:"default:true"`
}

// DisplayName is what notifications show for the user.
func (u User) DisplayName() string {
	if u.FirstName != "" || u.LastName != "" {
		return fmt.Sprintf("%v %v", u.FirstName, u.LastName)
	}
	return u.Email
}
