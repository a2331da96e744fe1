package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/app/services"
	"github.com/mkaraca/campushub/internal/middleware"
)

type stubStudentResolver struct {
	student *models.Student
}

func (s *stubStudentResolver) GetStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.student, nil
}

type stubFinanceStore struct {
	totalFee  decimal.Decimal
	totalPaid decimal.Decimal
	payments  []*models.Payment
}

func (f *stubFinanceStore) TotalFeeForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	return f.totalFee, nil
}

func (f *stubFinanceStore) TotalPaidForStudent(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	return f.totalPaid, nil
}

func (f *stubFinanceStore) CreatePayment(ctx context.Context, payment *models.Payment) (int64, error) {
	f.payments = append(f.payments, payment)
	return int64(len(f.payments)), nil
}

func (f *stubFinanceStore) ListPaymentsByStudent(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	return f.payments, nil
}

func newStudentTestRouter(finance *stubFinanceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svcs := &services.Services{
		FinanceService: services.NewFinanceService(finance),
	}
	controller := NewStudentController(
		&stubStudentResolver{student: &models.Student{ID: 7, Name: "Jane Doe", UniversityEmail: "COM1a2b@stu.uni.edu"}},
		svcs,
		zerolog.Nop(),
	)

	r := gin.New()
	r.POST("/api/v1/student/actions", func(c *gin.Context) {
		c.Set(middleware.ContextEmail, "COM1a2b@stu.uni.edu")
		c.Set(middleware.ContextRole, string(models.RoleStudent))
	}, controller.Actions)
	return r
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return &resp
}

func TestActionsUnknownAction(t *testing.T) {
	r := newStudentTestRouter(&stubFinanceStore{})

	w := postForm(t, r, "/api/v1/student/actions", url.Values{"action": {"self_destruct"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestActionsMissingAction(t *testing.T) {
	r := newStudentTestRouter(&stubFinanceStore{})

	w := postForm(t, r, "/api/v1/student/actions", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActionsPayRejectionEnvelope(t *testing.T) {
	finance := &stubFinanceStore{totalFee: decimal.RequireFromString("100"), totalPaid: decimal.RequireFromString("50")}
	r := newStudentTestRouter(finance)

	w := postForm(t, r, "/api/v1/student/actions", url.Values{
		"action": {"pay"},
		"amount": {"60"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "amount", resp.Error.Field)
	assert.Contains(t, resp.Error.Message, "50.00")
	assert.Empty(t, finance.payments, "rejected payment writes nothing")
}

func TestActionsPaySuccess(t *testing.T) {
	finance := &stubFinanceStore{totalFee: decimal.RequireFromString("100"), totalPaid: decimal.RequireFromString("50")}
	r := newStudentTestRouter(finance)

	w := postForm(t, r, "/api/v1/student/actions", url.Values{
		"action": {"pay"},
		"amount": {"50"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Payment received. Thank you!", resp.Message)
	require.Len(t, finance.payments, 1)
	assert.NotEmpty(t, finance.payments[0].TransactionID)
}

func TestActionsPayNonNumericAmount(t *testing.T) {
	r := newStudentTestRouter(&stubFinanceStore{totalFee: decimal.RequireFromString("100")})

	w := postForm(t, r, "/api/v1/student/actions", url.Values{
		"action": {"pay"},
		"amount": {"lots"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
