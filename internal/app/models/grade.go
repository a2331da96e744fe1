package models

// Grade is a letter grade for a (student, course) pair with upsert semantics.
type Grade struct {
	ID        int64      `json:"id" db:"id"`
	StudentID int64      `json:"studentId" db:"student_id"`
	CourseID  int64      `json:"courseId" db:"course_id"`
	Grade     GradeValue `json:"grade" db:"grade" example:"A"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
