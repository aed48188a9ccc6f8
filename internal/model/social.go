package model

import "time"

// Like marks that a user liked an announcement. Toggling off removes the row.
type Like struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AnnouncementID uint      `json:"announcement_id" gorm:"uniqueIndex:idx_like_ann_user;not null"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_like_ann_user;not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// Comment is a user comment on an announcement.
type Comment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AnnouncementID uint      `json:"announcement_id" gorm:"index;not null"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	Body           string    `json:"body" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
