package model

import "time"

// ClubSubscription is a student's opt-in to a club's announcement emails.
// One row per (club, user) pair; unsubscribe flips the active flag.
type ClubSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClubID    uint      `json:"club_id" gorm:"uniqueIndex:idx_club_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_club_user;not null"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID"`
}
