package chat

import (
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Chat is a scheduled group conversation. The stored Status column is a
// cache: readers derive the authoritative value from the schedule via
// DeriveStatus and never trust the column alone.
type Chat struct {
	ID          string `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"not null;index;column:name" json:"name"`
	Description string `gorm:"column:description" json:"description,omitempty"`
	CreatorID   string `gorm:"not null;index;column:creator_id" json:"creator_id"`

	Status    string     `gorm:"not null;default:'active';column:status" json:"status"`
	StartTime *time.Time `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime   time.Time  `gorm:"not null;column:end_time" json:"end_time"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Chat) TableName() string { return "chats" }

// Participant is the join record between a chat and a user. The
// (chat_id, user_id) pair is unique; a second add for the same pair is a
// storage-level conflict.
type Participant struct {
	ID     string `gorm:"primaryKey;column:id" json:"id"`
	ChatID string `gorm:"not null;index:idx_chat_participant_pair,unique,priority:1;column:chat_id" json:"chat_id"`
	UserID string `gorm:"not null;index:idx_chat_participant_pair,unique,priority:2;index;column:user_id" json:"user_id"`

	JoinedAt time.Time `gorm:"not null;index" json:"joined_at"`
}

func (Participant) TableName() string { return "chat_participants" }
