package models

import "time"

// Assignment is course work posted by an instructor, optionally with a
// reference document.
type Assignment struct {
	ID                int64     `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	DueDate           time.Time `json:"dueDate" db:"due_date"`
	CourseID          int64     `json:"courseId" db:"course_id"`
	InstructorID      int64     `json:"instructorId" db:"instructor_id"`
	ReferenceDocument string    `json:"referenceDocument,omitempty" db:"reference_document"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Course     *Course     `json:"course,omitempty"`
	Instructor *Instructor `json:"instructor,omitempty"`
}

// AssignmentSubmission is one submission attempt; a student may submit the
// same assignment more than once and every attempt gets its own row.
type AssignmentSubmission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	File         string    `json:"file" db:"file"`
	SubmittedAt  time.Time `json:"submittedAt" db:"submitted_at"`

	// Relations (populated when needed)
	Assignment *Assignment `json:"assignment,omitempty"`
	Student    *Student    `json:"student,omitempty"`
}
