package user

import (
	"time"
)

// User mirrors an identity-provider account. The ID is the provider-issued
// uid, not a locally generated key.
type User struct {
	ID       string `gorm:"primaryKey;column:id" json:"id"`
	Email    string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username string `gorm:"uniqueIndex;not null;column:username" json:"username"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
