package models

import "time"

// SentEmail records a mail sent from a dashboard. Exactly one of the sender
// fields is set; the recipient fields are set when the address matches a
// known student or instructor, and RecipientEmail always holds the raw
// address (external recipients have neither recipient ID set).
type SentEmail struct {
	ID                  int64     `json:"id" db:"id"`
	SenderStudentID     *int64    `json:"senderStudentId,omitempty" db:"sender_student_id"`
	SenderInstructorID  *int64    `json:"senderInstructorId,omitempty" db:"sender_instructor_id"`
	RecipientStudentID  *int64    `json:"recipientStudentId,omitempty" db:"recipient_student_id"`
	RecipientInstructor *int64    `json:"recipientInstructorId,omitempty" db:"recipient_instructor_id"`
	RecipientEmail      string    `json:"recipientEmail" db:"recipient_email"`
	Subject             string    `json:"subject" db:"subject"`
	Message             string    `json:"message" db:"message"`
	SentAt              time.Time `json:"sentAt" db:"sent_at"`
}

// Notification targets exactly one student or one instructor.
type Notification struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    *int64    `json:"studentId,omitempty" db:"student_id"`
	InstructorID *int64    `json:"instructorId,omitempty" db:"instructor_id"`
	Subject      string    `json:"subject" db:"subject"`
	Message      string    `json:"message" db:"message"`
	IsRead       bool      `json:"isRead" db:"is_read"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
