package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/dberrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// FinanceRepository handles fee and payment database operations
type FinanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFinanceRepository creates a new FinanceRepository
func NewFinanceRepository(db *pgxpool.Pool) *FinanceRepository {
	return &FinanceRepository{db: db, sb: statementBuilder()}
}

// CreateFee inserts a per-course fee
func (r *FinanceRepository) CreateFee(ctx context.Context, fee *models.Fee) (int64, error) {
	sql, args, err := r.sb.Insert("fees").
		Columns("course_id", "amount").
		Values(fee.CourseID, fee.Amount).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create fee query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error executing create fee query")
		return 0, fmt.Errorf("error creating fee: %w", err)
	}
	return id, nil
}

// TotalFeeForStudent sums the fees of every course the student is enrolled in.
// Totals are always computed from the current rows, never stored.
func (r *FinanceRepository) TotalFeeForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(f.amount), 0)").
		From("fees f").
		Join("enrollments e ON e.course_id = f.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build total fee query: %w", err)
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing total fee query")
		return decimal.Zero, fmt.Errorf("error summing fees: %w", err)
	}
	return total, nil
}

// TotalPaidForStudent sums the student's recorded payments
func (r *FinanceRepository) TotalPaidForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build total paid query: %w", err)
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing total paid query")
		return decimal.Zero, fmt.Errorf("error summing payments: %w", err)
	}
	return total, nil
}

// CreatePayment inserts a payment row
func (r *FinanceRepository) CreatePayment(ctx context.Context, payment *models.Payment) (int64, error) {
	sql, args, err := r.sb.Insert("payments").
		Columns("student_id", "amount", "date", "transaction_id").
		Values(payment.StudentID, payment.Amount, payment.Date, payment.TransactionID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create payment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error executing create payment query")
		return 0, fmt.Errorf("error creating payment: %w", err)
	}
	return id, nil
}

// ListPaymentsByStudent retrieves a student's payments, newest first
func (r *FinanceRepository) ListPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select("id, student_id, amount, date, transaction_id").
		From("payments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing payments query")
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Date, &p.TransactionID); err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
