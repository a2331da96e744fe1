// Package studentid derives student identifiers and university email
// addresses from a student's major.
package studentid

import (
	"unicode"

	"github.com/google/uuid"
)

// EmailDomain is the domain appended to generated student identifiers.
const EmailDomain = "stu.uni.edu"

// Generate derives a student ID from the major: the first three alphanumeric
// characters uppercased, followed by the first four characters of a random
// UUID. Collisions are not retried; the unique index on students.student_id
// surfaces them at persistence time.
func Generate(major string) string {
	return prefix(major) + uuid.New().String()[:4]
}

// Email returns the university email address for a student ID.
func Email(studentID string) string {
	return studentID + "@" + EmailDomain
}

func prefix(major string) string {
	runes := make([]rune, 0, 3)
	for _, r := range major {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			runes = append(runes, unicode.ToUpper(r))
			if len(runes) == 3 {
				break
			}
		}
	}
	return string(runes)
}
