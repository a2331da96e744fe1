package models

// RoleType defines the account role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
)

// GradeValue is a letter grade
type GradeValue string

const (
	GradeNone GradeValue = "None"
	GradeA    GradeValue = "A"
	GradeB    GradeValue = "B"
	GradeC    GradeValue = "C"
	GradeD    GradeValue = "D"
	GradeF    GradeValue = "F"
)

// Valid reports whether g is one of the allowed letter grades.
func (g GradeValue) Valid() bool {
	switch g {
	case GradeNone, GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	}
	return false
}

// AttendanceStatus marks a student present or absent for a scheduled class.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Valid reports whether s is an allowed attendance status.
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// dayNames is Monday-based: 0 = Monday .. 6 = Sunday.
var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the display name of a 0-6 day-of-week value, or an empty
// string when the value is out of range.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}
