package models

import "time"

// Professor defines the instructor model based on the 'professors' table
type Professor struct {
	ID            int64      `json:"id" db:"id" example:"1"`
	Code          string     `json:"code" db:"code" example:"PRF-0007"`
	Name          string     `json:"name" db:"name" example:"Carlos Andrade"`
	Email         string     `json:"email" db:"email"`
	Phone         string     `json:"phone" db:"phone"`
	SignaturePath *string    `json:"signaturePath,omitempty" db:"signature_path"` // Image composited onto certificates
	IsActive      bool       `json:"isActive" db:"is_active"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`
}
