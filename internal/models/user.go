package models

import (
	"time"

	"github.com/taskforge/scheduler/internal/id"
)

// User is the account behind the opaque user id the scheduling core
// treats as a black box. Authentication is an external collaborator per
// spec.md §1; this shape exists so the HTTP transport has something
// concrete to authenticate against.
type User struct {
	ID           id.ID  `gorm:"primarykey;type:char(36)" json:"id"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	SchedulingZone string `gorm:"type:varchar(64);not null;default:'UTC'" json:"scheduling_zone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
