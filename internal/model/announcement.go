package model

import "time"

// Announcement is a club post, optionally carrying an event registration
// policy. Deletion is soft: the active flag flips off and the row stays.
type Announcement struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	ClubID               uint       `json:"club_id" gorm:"index;not null"`
	CreatedByID          uint       `json:"created_by_id" gorm:"index"`
	Title                string     `json:"title" gorm:"size:255;not null"`
	Content              string     `json:"content" gorm:"type:text"`
	ImagePath            string     `json:"image_path" gorm:"size:255"`
	RegistrationEnabled  bool       `json:"registration_enabled" gorm:"default:false"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	MaxRegistrations     *int       `json:"max_registrations"`
	Active               bool       `json:"active" gorm:"default:true;index"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// derived by the list queries, never stored
	LikeCount    int64 `json:"like_count" gorm:"->;-:migration"`
	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID"`
}
