package models

// Course represents a course taught by exactly one instructor.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Code         string `json:"code" db:"code" example:"CS101"`
	Name         string `json:"name" db:"name" example:"Introduction to Programming"`
	CreditHours  int    `json:"creditHours" db:"credit_hours" example:"3"`
	InstructorID int64  `json:"instructorId" db:"instructor_id"`

	// Relations (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
}

// Schedule is a weekly time slot for a course. DayOfWeek is Monday-based,
// 0 = Monday .. 6 = Sunday.
type Schedule struct {
	ID        int64  `json:"id" db:"id"`
	CourseID  int64  `json:"courseId" db:"course_id"`
	DayOfWeek int    `json:"dayOfWeek" db:"day_of_week" example:"0"`
	StartTime string `json:"startTime" db:"start_time" example:"09:00"`
	EndTime   string `json:"endTime" db:"end_time" example:"10:00"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// DayName returns the display name of the schedule's day of week.
func (s *Schedule) DayName() string {
	return DayName(s.DayOfWeek)
}
