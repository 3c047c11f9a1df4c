package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a household member expenses can be shared with.
type User struct {
	DefaultModel
	FirstName string
	LastName  *string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.FirstName = strings.TrimSpace(u.FirstName)
	if u.FirstName == "" {
		return ErrUserFirstNameEmpty
	}

	if u.LastName != nil {
		last := strings.TrimSpace(*u.LastName)
		u.LastName = &last
	}

	return nil
}
