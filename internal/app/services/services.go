package services

import (
	"github.com/mkaraca/campushub/internal/app/repositories"
	"github.com/mkaraca/campushub/internal/pkg/auth"
	"github.com/mkaraca/campushub/internal/pkg/filestorage"
	"github.com/mkaraca/campushub/internal/pkg/mailer"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	MessagingService  *MessagingService
	FinanceService    *FinanceService
	EnrollmentService *EnrollmentService
	AssignmentService *AssignmentService
	GradeService      *GradeService
	AttendanceService *AttendanceService
	DashboardService  *DashboardService
	RegistrarService  *RegistrarService
}

// NewServices wires the service layer on top of the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, mail mailer.Mailer, storage filestorage.FileStorage) *Services {
	messaging := NewMessagingService(
		mail,
		repos.MessagingRepository,
		repos.AnnouncementRepository,
		repos.EnrollmentRepository,
		repos.StudentRepository,
		repos.InstructorRepository,
	)
	finance := NewFinanceService(repos.FinanceRepository)

	return &Services{
		AuthService:       NewAuthService(repos.AccountRepository, repos.StudentRepository, repos.InstructorRepository, jwtService),
		MessagingService:  messaging,
		FinanceService:    finance,
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository, repos.CourseRepository),
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, repos.CourseRepository, repos.EnrollmentRepository, storage),
		GradeService:      NewGradeService(repos.GradeRepository, repos.CourseRepository, repos.EnrollmentRepository, messaging),
		AttendanceService: NewAttendanceService(repos.AttendanceRepository, repos.CourseRepository, repos.ScheduleRepository, repos.EnrollmentRepository),
		DashboardService:  NewDashboardService(repos, finance),
		RegistrarService:  NewRegistrarService(repos.StudentRepository, repos.InstructorRepository, repos.CourseRepository, repos.FinanceRepository, repos.ScheduleRepository),
	}
}
