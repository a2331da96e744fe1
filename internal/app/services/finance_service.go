package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type financeStore interface {
	TotalFeeForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error)
	TotalPaidForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error)
	CreatePayment(ctx context.Context, payment *models.Payment) (int64, error)
	ListPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error)
}

// FinanceService handles fee statements and payments
type FinanceService struct {
	finance financeStore
}

// NewFinanceService creates a new finance service instance
func NewFinanceService(finance financeStore) *FinanceService {
	return &FinanceService{finance: finance}
}

// GetFeeStatement computes the student's fee statement from the current
// enrollment and payment rows.
func (s *FinanceService) GetFeeStatement(ctx context.Context, studentID int64) (models.FeeStatement, error) {
	totalFee, err := s.finance.TotalFeeForStudent(ctx, studentID)
	if err != nil {
		return models.FeeStatement{}, err
	}
	totalPaid, err := s.finance.TotalPaidForStudent(ctx, studentID)
	if err != nil {
		return models.FeeStatement{}, err
	}
	return models.NewFeeStatement(studentID, totalFee, totalPaid), nil
}

// Pay records a payment after checking it fits the remaining balance. The
// rejection message names the remaining amount so the caller can correct the
// payment.
func (s *FinanceService) Pay(ctx context.Context, studentID int64, amount decimal.Decimal) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("Payment amount must be positive")
	}

	statement, err := s.GetFeeStatement(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if amount.Add(statement.TotalPaid).GreaterThan(statement.TotalFee) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrPaymentExceedsBalance,
			Message: fmt.Sprintf("Payment exceeds remaining balance of %s", statement.RemainingBalance.StringFixed(2)),
		}
	}

	payment := &models.Payment{
		StudentID:     studentID,
		Amount:        amount,
		Date:          time.Now(),
		TransactionID: uuid.New().String(),
	}
	payment.ID, err = s.finance.CreatePayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", studentID).Str("amount", amount.String()).Msg("Payment recorded")
	return payment, nil
}

// ListPayments retrieves a student's payment history
func (s *FinanceService) ListPayments(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	return s.finance.ListPaymentsByStudent(ctx, studentID)
}
