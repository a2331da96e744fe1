package dto

import (
	"github.com/mkaraca/campushub/internal/app/models"
)

// StudentDashboard aggregates everything the student dashboard shows.
type StudentDashboard struct {
	Student           *models.Student                  `json:"student"`
	Courses           []*models.Course                 `json:"courses"`
	Instructors       []*models.Instructor             `json:"instructors"`
	Schedules         []*models.Schedule               `json:"schedules"`
	EnrollableCourses []*models.Course                 `json:"enrollableCourses"`
	FeeStatement      models.FeeStatement              `json:"feeStatement"`
	Payments          []*models.Payment                `json:"payments"`
	Grades            []*models.Grade                  `json:"grades"`
	Assignments       []*models.Assignment             `json:"assignments"`
	SubmittedIDs      []int64                          `json:"submittedAssignmentIds"`
	Submissions       []*models.AssignmentSubmission   `json:"submissions"`
	Notifications     []*models.Notification           `json:"notifications"`
	SentEmails        []*models.SentEmail              `json:"sentEmails"`
}

// InstructorDashboard aggregates everything the instructor dashboard shows.
type InstructorDashboard struct {
	Instructor        *models.Instructor             `json:"instructor"`
	Courses           []*models.Course               `json:"courses"`
	Enrollments       []*models.Enrollment           `json:"enrollments"`
	Students          []*models.Student              `json:"students"`
	Schedules         []*models.Schedule             `json:"schedules"`
	Assignments       []*models.Assignment           `json:"assignments"`
	Submissions       []*models.AssignmentSubmission `json:"assignmentSubmissions"`
	Announcements     []*models.Announcement         `json:"announcements"`
	Grades            []*models.Grade                `json:"grades"`
	AttendanceRecords []*models.Attendance           `json:"attendanceRecords"`
	Notifications     []*models.Notification         `json:"notifications"`
	SentEmails        []*models.SentEmail            `json:"sentEmails"`
}
