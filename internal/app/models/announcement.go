package models

import "time"

// Announcement is posted by an instructor and fanned out as notifications to
// every student enrolled in any of the instructor's courses.
type Announcement struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
