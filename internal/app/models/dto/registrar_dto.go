package dto

// CreateStudentRequest provisions a student record. The student ID and
// university email are generated from the major.
type CreateStudentRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Jane Doe"`
	DateOfBirth string `json:"dateOfBirth" binding:"required" example:"2002-05-14"`
	Faculty     string `json:"faculty" binding:"required,max=100" example:"Engineering"`
	Major       string `json:"major" binding:"required,max=100" example:"Computer Science"`
}

// UpdateStudentRequest updates a student; changing the major regenerates the
// student ID and university email.
type UpdateStudentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Faculty     string `json:"faculty" binding:"required,max=100"`
	Major       string `json:"major" binding:"required,max=100"`
}

// CreateInstructorRequest provisions an instructor record.
type CreateInstructorRequest struct {
	FullName   string `json:"fullName" binding:"required,max=100" example:"Dr. Alan Grant"`
	Email      string `json:"email" binding:"required,email" example:"agrant@uni.edu"`
	Department string `json:"department" binding:"required,max=100" example:"Computer Science"`
}

// CreateCourseRequest creates a course for an instructor.
type CreateCourseRequest struct {
	Code         string `json:"code" binding:"required,max=10" example:"CS101"`
	Name         string `json:"name" binding:"required,max=100" example:"Introduction to Programming"`
	CreditHours  int    `json:"creditHours" binding:"required,min=1" example:"3"`
	InstructorID int64  `json:"instructorId" binding:"required"`
}

// CreateFeeRequest attaches a fee to a course. Amount is a decimal string.
type CreateFeeRequest struct {
	CourseID int64  `json:"courseId" binding:"required"`
	Amount   string `json:"amount" binding:"required" example:"150.00"`
}

// CreateScheduleRequest adds a weekly time slot to a course. Times are HH:MM,
// day 0 = Monday .. 6 = Sunday.
type CreateScheduleRequest struct {
	CourseID  int64  `json:"courseId" binding:"required"`
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6" example:"0"`
	StartTime string `json:"startTime" binding:"required" example:"09:00"`
	EndTime   string `json:"endTime" binding:"required" example:"10:00"`
}
