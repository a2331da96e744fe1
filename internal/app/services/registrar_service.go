package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/helpers"
	"github.com/mkaraca/campushub/internal/pkg/logger"
	"github.com/mkaraca/campushub/internal/pkg/studentid"
)

type studentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
	ListStudents(ctx context.Context) ([]*models.Student, error)
}

type instructorStore interface {
	CreateInstructor(ctx context.Context, instructor *models.Instructor) (int64, error)
	ListInstructors(ctx context.Context) ([]*models.Instructor, error)
}

type courseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

type feeCreator interface {
	CreateFee(ctx context.Context, fee *models.Fee) (int64, error)
}

type scheduleCreator interface {
	CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error)
}

// RegistrarService handles record provisioning: students, instructors,
// courses with their fees and schedules.
type RegistrarService struct {
	students    studentStore
	instructors instructorStore
	courses     courseStore
	fees        feeCreator
	schedules   scheduleCreator
}

// NewRegistrarService creates a new registrar service instance
func NewRegistrarService(students studentStore, instructors instructorStore, courses courseStore, fees feeCreator, schedules scheduleCreator) *RegistrarService {
	return &RegistrarService{
		students:    students,
		instructors: instructors,
		courses:     courses,
		fees:        fees,
		schedules:   schedules,
	}
}

// CreateStudent provisions a student with a generated student ID and
// university email derived from the major.
func (s *RegistrarService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("Date of birth must be YYYY-MM-DD")
	}

	id := studentid.Generate(req.Major)
	student := &models.Student{
		Name:             req.Name,
		DateOfBirth:      dob,
		Faculty:          req.Faculty,
		Major:            req.Major,
		StudentID:        id,
		UniversityEmail:  studentid.Email(id),
		RegistrationDate: time.Now(),
	}
	student.ID, err = s.students.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("studentId", student.StudentID).Msg("Student provisioned")
	return student, nil
}

// UpdateStudent applies profile changes. A changed major regenerates the
// student ID and university email; any other change keeps them.
func (s *RegistrarService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("Date of birth must be YYYY-MM-DD")
	}

	if req.Major != student.Major {
		newID := studentid.Generate(req.Major)
		student.StudentID = newID
		student.UniversityEmail = studentid.Email(newID)
	}
	student.Name = req.Name
	student.DateOfBirth = dob
	student.Faculty = req.Faculty
	student.Major = req.Major

	if err := s.students.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student together with their payments
func (s *RegistrarService) DeleteStudent(ctx context.Context, id int64) error {
	return s.students.DeleteStudent(ctx, id)
}

// ListStudents retrieves all students
func (s *RegistrarService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return s.students.ListStudents(ctx)
}

// CreateInstructor provisions an instructor
func (s *RegistrarService) CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error) {
	instructor := &models.Instructor{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}
	id, err := s.instructors.CreateInstructor(ctx, instructor)
	if err != nil {
		return nil, err
	}
	instructor.ID = id
	return instructor, nil
}

// ListInstructors retrieves all instructors
func (s *RegistrarService) ListInstructors(ctx context.Context) ([]*models.Instructor, error) {
	return s.instructors.ListInstructors(ctx)
}

// CreateCourse creates a course for an instructor
func (s *RegistrarService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:         req.Code,
		Name:         req.Name,
		CreditHours:  req.CreditHours,
		InstructorID: req.InstructorID,
	}
	id, err := s.courses.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	return course, nil
}

// DeleteCourse removes a course and its dependent rows
func (s *RegistrarService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courses.DeleteCourse(ctx, id)
}

// ListCourses retrieves all courses
func (s *RegistrarService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courses.ListCourses(ctx)
}

// CreateFee attaches a fee to a course
func (s *RegistrarService) CreateFee(ctx context.Context, req *dto.CreateFeeRequest) (*models.Fee, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, apperrors.NewValidationError("Fee amount must be a positive decimal")
	}
	if _, err := s.courses.GetCourseByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	fee := &models.Fee{CourseID: req.CourseID, Amount: amount}
	id, err := s.fees.CreateFee(ctx, fee)
	if err != nil {
		return nil, err
	}
	fee.ID = id
	return fee, nil
}

// CreateSchedule adds a weekly time slot to a course
func (s *RegistrarService) CreateSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*models.Schedule, error) {
	if _, err := helpers.ParseTimeOfDay(req.StartTime); err != nil {
		return nil, apperrors.NewValidationError("Start time must be HH:MM")
	}
	if _, err := helpers.ParseTimeOfDay(req.EndTime); err != nil {
		return nil, apperrors.NewValidationError("End time must be HH:MM")
	}
	if _, err := s.courses.GetCourseByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		CourseID:  req.CourseID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	id, err := s.schedules.CreateSchedule(ctx, schedule)
	if err != nil {
		return nil, err
	}
	schedule.ID = id
	return schedule, nil
}
