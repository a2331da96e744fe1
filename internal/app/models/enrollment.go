package models

// Enrollment links a student to a course. The instructor is denormalized
// from the course at creation time, matching course.instructor_id.
type Enrollment struct {
	ID           int64 `json:"id" db:"id"`
	CourseID     int64 `json:"courseId" db:"course_id"`
	StudentID    int64 `json:"studentId" db:"student_id"`
	InstructorID int64 `json:"instructorId" db:"instructor_id"`

	// Relations (populated when needed)
	Course     *Course     `json:"course,omitempty"`
	Student    *Student    `json:"student,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
}
