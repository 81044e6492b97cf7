package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	CourseRepository      *CourseRepository
	ProfessorRepository   *ProfessorRepository
	CourseHoursRepository *CourseHoursRepository
	LeadRepository        *LeadRepository
	SettingsRepository    *SettingsRepository
	TokenRepository       *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		StudentRepository:     NewStudentRepository(db),
		CourseRepository:      NewCourseRepository(db),
		ProfessorRepository:   NewProfessorRepository(db),
		CourseHoursRepository: NewCourseHoursRepository(db),
		LeadRepository:        NewLeadRepository(db),
		SettingsRepository:    NewSettingsRepository(db),
		TokenRepository:       NewTokenRepository(db),
	}
}
