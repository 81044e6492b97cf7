package dto

import "time"

// GenerateBatchRequest lists the students to generate certificates for
type GenerateBatchRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1,dive,min=1"`
	Force      bool    `json:"force"`
}

// BatchResult summarizes a batch generation run. Individual failures are
// counted, never propagated: one bad record must not block the rest.
type BatchResult struct {
	Generated int `json:"gerados"`
	Skipped   int `json:"pulados"` // Already certified and force not set
	Failed    int `json:"erros"`
}

// CertificateResponse reports a single generation outcome
type CertificateResponse struct {
	StudentID   int64     `json:"studentId"`
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// VerificationResponse is the public certificate-authenticity payload
type VerificationResponse struct {
	StudentName    string     `json:"studentName"`
	CourseName     string     `json:"courseName"`
	Hours          int        `json:"hours"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Certified      bool       `json:"certified"`
	GeneratedAt    *time.Time `json:"generatedAt,omitempty"`
}
