package models

// CourseHours is a lookup value for the workload printed on certificates
type CourseHours struct {
	ID    int64 `json:"id" db:"id" example:"1"`
	Hours int   `json:"hours" db:"hours" example:"40"`
}
