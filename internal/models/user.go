package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the identity provider's subject. Rows are provisioned on the
// first authenticated request; the Role column is what admin routes check,
// not the token claim.
type User struct {
	gorm.Model
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email string    `gorm:"unique;not null" json:"email"`
	Name  string    `json:"name"`
	Role  string    `gorm:"not null;default:'user'" json:"role"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
