package models

import "time"

// Lead defines a marketing-site contact captured by the public form
type Lead struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Phone          string    `json:"phone" db:"phone"`
	Message        string    `json:"message" db:"message"`
	CourseInterest *int64    `json:"courseInterest,omitempty" db:"course_interest"` // Optional course the visitor asked about
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
