package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// statementBuilder returns a squirrel builder configured for PostgreSQL
// placeholders, shared by every repository.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository      *AccountRepository
	StudentRepository      *StudentRepository
	InstructorRepository   *InstructorRepository
	CourseRepository       *CourseRepository
	EnrollmentRepository   *EnrollmentRepository
	ScheduleRepository     *ScheduleRepository
	FinanceRepository      *FinanceRepository
	AssignmentRepository   *AssignmentRepository
	GradeRepository        *GradeRepository
	AnnouncementRepository *AnnouncementRepository
	MessagingRepository    *MessagingRepository
	AttendanceRepository   *AttendanceRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:      NewAccountRepository(db),
		StudentRepository:      NewStudentRepository(db),
		InstructorRepository:   NewInstructorRepository(db),
		CourseRepository:       NewCourseRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		ScheduleRepository:     NewScheduleRepository(db),
		FinanceRepository:      NewFinanceRepository(db),
		AssignmentRepository:   NewAssignmentRepository(db),
		GradeRepository:        NewGradeRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		MessagingRepository:    NewMessagingRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
	}
}
