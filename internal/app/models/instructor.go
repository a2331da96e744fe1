package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	FullName   string `json:"fullName" db:"full_name" example:"Dr. Alan Grant"`
	Email      string `json:"email" db:"email" example:"agrant@uni.edu"`
	Department string `json:"department" db:"department" example:"Computer Science"`
}
