package models

import "time"

// Account defines the login identity based on the 'accounts' table. The role
// is resolved once at registration time by matching the email against the
// students and instructors tables, and tagged here.
type Account struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"jdoe"`
	Email     string    `json:"email" db:"email" example:"CSC1a2b@stu.uni.edu"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role      RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
