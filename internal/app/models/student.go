package models

import "time"

// Student defines the student model based on the 'students' table.
// StudentID and UniversityEmail are derived from the major and regenerated
// whenever the major changes.
type Student struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Name             string    `json:"name" db:"name" example:"Jane Doe"`
	DateOfBirth      time.Time `json:"dateOfBirth" db:"dob" example:"2002-05-14T00:00:00Z"`
	Faculty          string    `json:"faculty" db:"faculty" example:"Engineering"`
	Major            string    `json:"major" db:"major" example:"Computer Science"`
	StudentID        string    `json:"studentId" db:"student_id" example:"COM1a2b"`
	UniversityEmail  string    `json:"universityEmail" db:"university_email" example:"COM1a2b@stu.uni.edu"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date" example:"2024-09-01T09:00:00Z"`
}
