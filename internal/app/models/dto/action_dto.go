package dto

// Action is the POST discriminator carried in the "action" form field of a
// dashboard action request.
type Action string

// Student dashboard actions
const (
	ActionSendEmail            Action = "send_email"
	ActionDeleteEmail          Action = "delete_email"
	ActionMarkNotificationRead Action = "mark_notification_read"
	ActionDeleteNotification   Action = "delete_notification"
	ActionEnroll               Action = "enroll"
	ActionPay                  Action = "pay"
	ActionSubmitAssignment     Action = "submit_assignment"
	ActionDeleteAssignment     Action = "delete_assignment"
)

// Instructor dashboard actions (send_email, delete_email, notification
// actions and delete_assignment are shared with the student set)
const (
	ActionMakeAnnouncement   Action = "make_announcement"
	ActionDeleteAnnouncement Action = "delete_announcement"
	ActionAddAssignment      Action = "add_assignment"
	ActionUpdateGrade        Action = "update_grade"
	ActionAddGrade           Action = "add_grade"
	ActionDeleteGrade        Action = "delete_grade"
	ActionMarkAttendance     Action = "mark_attendance"
)

// SendEmailRequest sends a mail from the caller's dashboard.
type SendEmailRequest struct {
	RecipientEmail string `form:"recipient_email" binding:"required,email"`
	Subject        string `form:"subject" binding:"required,max=100"`
	Message        string `form:"message" binding:"required"`
}

// DeleteEmailRequest removes a sent-email record owned by the caller.
type DeleteEmailRequest struct {
	EmailID int64 `form:"email_id" binding:"required"`
}

// NotificationRequest targets one of the caller's notifications.
type NotificationRequest struct {
	NotificationID int64 `form:"notification_id" binding:"required"`
}

// EnrollRequest enrolls the student in a course.
type EnrollRequest struct {
	CourseID int64 `form:"course_id" binding:"required"`
}

// PayRequest pays an amount against the student's fee balance. The amount is
// a decimal string to avoid float rounding of money.
type PayRequest struct {
	Amount string `form:"amount" binding:"required"`
}

// SubmitAssignmentRequest submits a file for an assignment. The file itself
// arrives as the "submission_file" multipart part.
type SubmitAssignmentRequest struct {
	AssignmentID int64 `form:"assignment_id" binding:"required"`
}

// DeleteAssignmentRequest targets an assignment. For students it removes
// their own submission; for instructors it removes the assignment.
type DeleteAssignmentRequest struct {
	AssignmentID int64 `form:"assignment_id" binding:"required"`
}

// AnnouncementRequest posts an announcement to all enrolled students.
type AnnouncementRequest struct {
	Title   string `form:"title" binding:"required,max=200"`
	Content string `form:"content" binding:"required"`
}

// DeleteAnnouncementRequest removes one of the caller's announcements.
type DeleteAnnouncementRequest struct {
	AnnouncementID int64 `form:"announcement_id" binding:"required"`
}

// AddAssignmentRequest creates an assignment for one of the instructor's
// courses. The optional reference document arrives as the
// "reference_document" multipart part. DueDate is RFC 3339.
type AddAssignmentRequest struct {
	Title       string `form:"title" binding:"required,max=100"`
	Description string `form:"description" binding:"required"`
	DueDate     string `form:"due_date" binding:"required"`
	CourseID    int64  `form:"course_id" binding:"required"`
}

// GradeRequest adds, updates or deletes a grade for a (student, course) pair.
type GradeRequest struct {
	StudentID int64  `form:"student_id" binding:"required"`
	CourseID  int64  `form:"course_id" binding:"required"`
	Grade     string `form:"grade"`
}

// MarkAttendanceRequest marks a set of students present or absent for one
// scheduled class on a date (YYYY-MM-DD).
type MarkAttendanceRequest struct {
	CourseID   int64   `form:"course_id" binding:"required"`
	ScheduleID int64   `form:"schedule_id" binding:"required"`
	Date       string  `form:"date" binding:"required"`
	Status     string  `form:"status" binding:"required"`
	StudentIDs []int64 `form:"student_ids" binding:"required"`
}
