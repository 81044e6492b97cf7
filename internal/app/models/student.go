package models

import "time"

// Student defines the student model based on the 'students' table.
// The certificate fields are derived state: a non-null CertificatePath
// implies CertificateGenerated is true, and both are always mutated
// together with CertificateGeneratedAt.
type Student struct {
	ID                     int64         `json:"id" db:"id" example:"1"`
	Code                   string        `json:"code" db:"code" example:"ALU-2024-0042"` // Public identifier printed on certificates
	Name                   string        `json:"name" db:"name" example:"Maria da Silva"`
	Email                  string        `json:"email" db:"email" example:"maria@example.com"`
	Phone                  string        `json:"phone" db:"phone" example:"+5511999990000"`
	CourseID               int64         `json:"courseId" db:"course_id"`
	ProfessorID            int64         `json:"professorId" db:"professor_id"`
	CourseHoursID          int64         `json:"courseHoursId" db:"course_hours_id"`
	StartDate              *time.Time    `json:"startDate,omitempty" db:"start_date"`
	EndDate                *time.Time    `json:"endDate,omitempty" db:"end_date"`
	Grade                  *float64      `json:"grade,omitempty" db:"grade"`
	BestStudent            bool          `json:"bestStudent" db:"best_student"`
	PhotoPath              *string       `json:"photoPath,omitempty" db:"photo_path"`
	CertificatePath        *string       `json:"certificatePath,omitempty" db:"certificate_path"`
	CertificateGenerated   bool          `json:"certificateGenerated" db:"certificate_generated"`
	CertificateGeneratedAt *time.Time    `json:"certificateGeneratedAt,omitempty" db:"certificate_generated_at"`
	Status                 StudentStatus `json:"status" db:"status" example:"ACTIVE"`
	CreatedAt              time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time     `json:"updatedAt" db:"updated_at"`
	DeletedAt              *time.Time    `json:"-" db:"deleted_at"` // Soft delete marker

	// Relations (populated when needed)
	Course      *Course      `json:"course,omitempty"`
	Professor   *Professor   `json:"professor,omitempty"`
	CourseHours *CourseHours `json:"courseHours,omitempty"`
}

// CompletionDate returns the date printed on the certificate: the end
// date when set, the current day otherwise.
func (s *Student) CompletionDate() time.Time {
	if s.EndDate != nil {
		return *s.EndDate
	}
	return time.Now()
}
