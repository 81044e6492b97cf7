package models

import "time"

// Setting is a white-label configuration row (company name, colors, logo)
type Setting struct {
	Key       string    `json:"key" db:"key" example:"company_name"`
	Value     string    `json:"value" db:"value" example:"Capacita Cursos"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
