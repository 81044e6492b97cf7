package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin     RoleType = "ADMIN"
	RoleStudent   RoleType = "STUDENT"
	RoleProfessor RoleType = "PROFESSOR"
)

// StudentStatus represents the enrollment lifecycle state of a student
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusCompleted StudentStatus = "COMPLETED"
	StudentStatusCancelled StudentStatus = "CANCELLED"
)

// TokenKind distinguishes what a pre-registration token activates
type TokenKind string

const (
	TokenKindStudent   TokenKind = "STUDENT"
	TokenKindProfessor TokenKind = "PROFESSOR"
)
