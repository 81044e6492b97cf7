package models

import "time"

// User defines an account able to sign in to the back office.
// Students and professors get a user row once their pre-registration
// is completed; admins are seeded or created by other admins.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@capacita.app"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Name        string     `json:"name" db:"name"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"ADMIN"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// PreRegistrationToken is a one-time token letting a student or
// professor complete their own signup before activation.
type PreRegistrationToken struct {
	ID        int64      `json:"id" db:"id"`
	Token     string     `json:"token" db:"token"`
	Kind      TokenKind  `json:"kind" db:"kind"`
	SubjectID int64      `json:"subjectId" db:"subject_id"` // Student or professor row the token completes
	ExpiresAt time.Time  `json:"expiresAt" db:"expires_at"`
	UsedAt    *time.Time `json:"usedAt,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
