package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee is the amount charged for one course.
type Fee struct {
	ID       int64           `json:"id" db:"id"`
	CourseID int64           `json:"courseId" db:"course_id"`
	Amount   decimal.Decimal `json:"amount" db:"amount" example:"150.00"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// Payment is a single payment by a student against their fee balance.
type Payment struct {
	ID            int64           `json:"id" db:"id"`
	StudentID     int64           `json:"studentId" db:"student_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount" example:"60.00"`
	Date          time.Time       `json:"date" db:"date"`
	TransactionID string          `json:"transactionId" db:"transaction_id"`
}

// FeeStatement is the computed fee-balance view for one student. Totals are
// aggregate sums computed on read, never stored.
type FeeStatement struct {
	StudentID        int64           `json:"studentId"`
	TotalFee         decimal.Decimal `json:"totalFee" example:"150.00"`
	TotalPaid        decimal.Decimal `json:"totalPaid" example:"110.00"`
	RemainingBalance decimal.Decimal `json:"remainingBalance" example:"40.00"`
}

// NewFeeStatement builds a statement from the two aggregate totals.
func NewFeeStatement(studentID int64, totalFee, totalPaid decimal.Decimal) FeeStatement {
	return FeeStatement{
		StudentID:        studentID,
		TotalFee:         totalFee,
		TotalPaid:        totalPaid,
		RemainingBalance: totalFee.Sub(totalPaid),
	}
}
