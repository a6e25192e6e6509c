package dbschema

import (
	"time"

	"loopware.io/user-directory/app/domain/user"
	"loopware.io/user-directory/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

type User struct {
	BaseModel
	Name      string
	Surname   string
	Username  string `gorm:"index"`
	Birthdate time.Time
}

func NewSchemaUser(u *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID: u.ID,
		},
		Name:      u.Name,
		Surname:   u.Surname,
		Username:  u.Username,
		Birthdate: u.Birthdate,
	}
}

func (u *User) EtoD() *user.User {
	return &user.User{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Username:  u.Username,
		Birthdate: u.Birthdate,
	}
}
