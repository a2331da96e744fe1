package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type fakeFinanceStore struct {
	fees     []decimal.Decimal
	payments []*models.Payment
}

func (f *fakeFinanceStore) TotalFeeForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, fee := range f.fees {
		total = total.Add(fee)
	}
	return total, nil
}

func (f *fakeFinanceStore) TotalPaidForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

func (f *fakeFinanceStore) CreatePayment(ctx context.Context, payment *models.Payment) (int64, error) {
	f.payments = append(f.payments, payment)
	return int64(len(f.payments)), nil
}

func (f *fakeFinanceStore) ListPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	return f.payments, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetFeeStatement(t *testing.T) {
	store := &fakeFinanceStore{fees: []decimal.Decimal{dec("100"), dec("50")}}
	store.payments = []*models.Payment{{Amount: dec("60")}, {Amount: dec("50")}}
	svc := NewFinanceService(store)

	statement, err := svc.GetFeeStatement(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, statement.TotalFee.Equal(dec("150")))
	assert.True(t, statement.TotalPaid.Equal(dec("110")))
	assert.True(t, statement.RemainingBalance.Equal(dec("40")))
}

func TestPayRejectsOverpayment(t *testing.T) {
	store := &fakeFinanceStore{fees: []decimal.Decimal{dec("100"), dec("50")}}
	store.payments = []*models.Payment{{Amount: dec("60")}, {Amount: dec("50")}}
	svc := NewFinanceService(store)
	ctx := context.Background()

	// 110 already paid of 150: 41 does not fit into the remaining 40
	_, err := svc.Pay(ctx, 1, dec("41"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	assert.Contains(t, err.Error(), "40.00")
	assert.Len(t, store.payments, 2)

	// exactly the remaining balance fits
	payment, err := svc.Pay(ctx, 1, dec("40"))
	require.NoError(t, err)
	assert.NotEmpty(t, payment.TransactionID)
	assert.Len(t, store.payments, 3)

	// balance is zero now, any further amount is rejected
	_, err = svc.Pay(ctx, 1, dec("1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	assert.Len(t, store.payments, 3)
}

func TestPayRejectsNonPositiveAmount(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceStore{fees: []decimal.Decimal{dec("100")}})

	for _, amount := range []string{"0", "-5"} {
		_, err := svc.Pay(context.Background(), 1, dec(amount))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
}
