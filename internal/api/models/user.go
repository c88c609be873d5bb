package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	Role      Role   `gorm:"size:20;default:'user';not null" json:"role"`
	Superuser bool   `gorm:"default:false;not null" json:"-"`

	// Bcrypt hash of the last confirmation code issued at signup. The code
	// itself is only ever delivered out-of-band.
	ConfirmationCodeHash string `gorm:"column:confirmation_code_hash" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// CanModerate reports whether the user may act on content they do not own.
func (user *User) CanModerate() bool {
	return user.Role.CanModerate()
}

// IsAdministrator covers both the admin role and the superuser flag; the
// user-management endpoints accept either.
func (user *User) IsAdministrator() bool {
	return user.Superuser || user.Role.IsAdmin()
}

func (User) TableName() string {
	return "users"
}
