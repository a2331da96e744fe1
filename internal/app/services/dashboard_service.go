package services

import (
	"context"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/app/repositories"
)

// DashboardService assembles the aggregate dashboard payloads. It reads
// across nearly every table, so it takes the repository container whole
// instead of a dozen single-method interfaces.
type DashboardService struct {
	repos   *repositories.Repositories
	finance *FinanceService
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos *repositories.Repositories, finance *FinanceService) *DashboardService {
	return &DashboardService{repos: repos, finance: finance}
}

// StudentDashboard builds the full student dashboard payload
func (s *DashboardService) StudentDashboard(ctx context.Context, student *models.Student) (*dto.StudentDashboard, error) {
	enrollments, err := s.repos.EnrollmentRepository.ListEnrollmentsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	courses := make([]*models.Course, 0, len(enrollments))
	courseIDs := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		courses = append(courses, e.Course)
		courseIDs = append(courseIDs, e.CourseID)
	}

	instructors, err := s.repos.InstructorRepository.ListInstructorsByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	schedules, err := s.repos.ScheduleRepository.ListSchedulesByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	enrollable, err := s.repos.CourseRepository.ListEnrollableCourses(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	statement, err := s.finance.GetFeeStatement(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.FinanceRepository.ListPaymentsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	grades, err := s.repos.GradeRepository.ListGradesByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repos.AssignmentRepository.ListAssignmentsByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	submittedSet, err := s.repos.AssignmentRepository.SubmittedAssignmentIDs(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	submittedIDs := make([]int64, 0, len(submittedSet))
	for id := range submittedSet {
		submittedIDs = append(submittedIDs, id)
	}
	submissions, err := s.repos.AssignmentRepository.ListSubmissionsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.repos.MessagingRepository.ListNotificationsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	sentEmails, err := s.repos.MessagingRepository.ListSentEmailsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboard{
		Student:           student,
		Courses:           courses,
		Instructors:       instructors,
		Schedules:         schedules,
		EnrollableCourses: enrollable,
		FeeStatement:      statement,
		Payments:          payments,
		Grades:            grades,
		Assignments:       assignments,
		SubmittedIDs:      submittedIDs,
		Submissions:       submissions,
		Notifications:     notifications,
		SentEmails:        sentEmails,
	}, nil
}

// InstructorDashboard builds the full instructor dashboard payload
func (s *DashboardService) InstructorDashboard(ctx context.Context, instructor *models.Instructor) (*dto.InstructorDashboard, error) {
	courses, err := s.repos.CourseRepository.ListCoursesByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	enrollments, err := s.repos.EnrollmentRepository.ListEnrollmentsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	students, err := s.repos.StudentRepository.ListStudentsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.repos.ScheduleRepository.ListSchedulesByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repos.AssignmentRepository.ListAssignmentsByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	submissions, err := s.repos.AssignmentRepository.ListSubmissionsByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	announcements, err := s.repos.AnnouncementRepository.ListAnnouncementsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	grades, err := s.repos.GradeRepository.ListGradesByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	attendance := []*models.Attendance{}
	for _, courseID := range courseIDs {
		marks, err := s.repos.AttendanceRepository.ListAttendanceByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		attendance = append(attendance, marks...)
	}
	notifications, err := s.repos.MessagingRepository.ListNotificationsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}
	sentEmails, err := s.repos.MessagingRepository.ListSentEmailsByInstructor(ctx, instructor.ID)
	if err != nil {
		return nil, err
	}

	return &dto.InstructorDashboard{
		Instructor:        instructor,
		Courses:           courses,
		Enrollments:       enrollments,
		Students:          students,
		Schedules:         schedules,
		Assignments:       assignments,
		Submissions:       submissions,
		Announcements:     announcements,
		Grades:            grades,
		AttendanceRecords: attendance,
		Notifications:     notifications,
		SentEmails:        sentEmails,
	}, nil
}
