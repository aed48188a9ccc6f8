package model

import "time"

// Club is static reference data seeded at install time.
type Club struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Code      string    `json:"code" gorm:"uniqueIndex;size:32;not null"`
	Active    bool      `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
