package models

import (
	"strings"
	"time"
)

// Course defines the course model based on the 'courses' table
type Course struct {
	ID                int64     `json:"id" db:"id" example:"1"`
	Name              string    `json:"name" db:"name" example:"Eletricista Predial"`
	Description       string    `json:"description" db:"description"`
	CertificatePhrase string    `json:"certificatePhrase" db:"certificate_phrase"` // May contain {aluno} and {curso} placeholders
	DisplayOrder      int       `json:"displayOrder" db:"display_order"`
	IsActive          bool      `json:"isActive" db:"is_active"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// RenderPhrase expands the certificate phrase placeholders for a student.
func (c *Course) RenderPhrase(studentName string) string {
	phrase := c.CertificatePhrase
	if phrase == "" {
		phrase = "concluiu com aproveitamento o curso de {curso}."
	}
	phrase = strings.ReplaceAll(phrase, "{aluno}", studentName)
	phrase = strings.ReplaceAll(phrase, "{curso}", c.Name)
	return phrase
}
