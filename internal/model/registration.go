package model

import "time"

// Registration statuses. A row is never deleted; cancelling flips the status
// and re-registering flips it back.
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusCancelled  = "cancelled"
)

// EventRegistration links a user to an announcement. Exactly one row exists
// per (announcement, user) pair.
type EventRegistration struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AnnouncementID uint      `json:"announcement_id" gorm:"uniqueIndex:idx_event_user;not null"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_event_user;not null"`
	Status         string    `json:"status" gorm:"size:20;not null;default:'registered'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
