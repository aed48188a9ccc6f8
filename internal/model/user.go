package model

import "time"

// User roles. A freshly verified user has no role until self-declaration.
const (
	RoleStudent   = "student"
	RoleClubAdmin = "club_admin"
)

// User represents an authenticated user in the system. A row is created on the
// first successful OTP verification; the role stays null until the user
// self-declares through the profile endpoint.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"size:255"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string     `json:"-" gorm:"size:255"` // empty until a password is set
	Role             *string    `json:"role" gorm:"size:50"`
	Branch           string     `json:"branch" gorm:"size:255"`
	RollNumber       string     `json:"roll_number" gorm:"size:64"`
	ClubID           *uint      `json:"club_id" gorm:"index"`
	AdminRequested   bool       `json:"admin_requested" gorm:"default:false;index"`
	AdminRequestedAt *time.Time `json:"admin_requested_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID"`
}

// HasRole reports whether the user already declared a role.
func (u *User) HasRole() bool {
	return u.Role != nil && *u.Role != ""
}

// IsClubAdmin reports whether the user is an approved club admin with a club.
func (u *User) IsClubAdmin() bool {
	return u.Role != nil && *u.Role == RoleClubAdmin && u.ClubID != nil
}
