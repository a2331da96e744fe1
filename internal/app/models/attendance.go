package models

import "time"

// Attendance is one Present/Absent mark for a student at a scheduled class
// on a given date. No uniqueness is enforced per (student, schedule, date).
type Attendance struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	ScheduleID int64            `json:"scheduleId" db:"schedule_id"`
	Date       time.Time        `json:"date" db:"date"`
	Status     AttendanceStatus `json:"status" db:"status" example:"Present"`

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Course   *Course   `json:"course,omitempty"`
	Schedule *Schedule `json:"schedule,omitempty"`
}
