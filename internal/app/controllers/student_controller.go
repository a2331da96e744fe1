package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/app/services"
	"github.com/mkaraca/campushub/internal/middleware"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type studentResolver interface {
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
}

// studentAction executes one dashboard action and returns the flash-style
// success message.
type studentAction func(ctx *gin.Context, student *models.Student) (string, error)

// StudentController serves the student dashboard and its actions. Actions
// dispatch through a fixed registry keyed by the form's action field.
type StudentController struct {
	students studentResolver
	services *services.Services
	actions  map[dto.Action]studentAction
	logger   zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(students studentResolver, svcs *services.Services, logger zerolog.Logger) *StudentController {
	c := &StudentController{
		students: students,
		services: svcs,
		logger:   logger,
	}
	c.actions = map[dto.Action]studentAction{
		dto.ActionSendEmail:            c.sendEmail,
		dto.ActionDeleteEmail:          c.deleteEmail,
		dto.ActionMarkNotificationRead: c.markNotificationRead,
		dto.ActionDeleteNotification:   c.deleteNotification,
		dto.ActionEnroll:               c.enroll,
		dto.ActionPay:                  c.pay,
		dto.ActionSubmitAssignment:     c.submitAssignment,
		dto.ActionDeleteAssignment:     c.deleteSubmission,
	}
	return c
}

// caller resolves the authenticated student from the token email
func (c *StudentController) caller(ctx *gin.Context) (*models.Student, error) {
	return c.students.GetStudentByEmail(ctx.Request.Context(), middleware.CallerEmail(ctx))
}

// Dashboard returns the aggregate student dashboard
// @Summary Student dashboard
// @Description Returns profile, courses, schedules, fee statement, grades, assignments, notifications and sent emails in one payload.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboard} "Dashboard payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or expired session"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	student, err := c.caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	dashboard, err := c.services.DashboardService.StudentDashboard(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard, ""))
}

// Actions dispatches a student dashboard action
// @Summary Student dashboard action
// @Description Executes one action from the student dashboard. The multipart form carries an action discriminator plus the action's own fields.
// @Tags student
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param action formData string true "One of send_email, delete_email, mark_notification_read, delete_notification, enroll, pay, submit_assignment, delete_assignment"
// @Success 200 {object} dto.APIResponse "Action result message"
// @Failure 400 {object} dto.ErrorResponse "Unknown action or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Target resource not found or not owned"
// @Router /student/actions [post]
func (c *StudentController) Actions(ctx *gin.Context) {
	student, err := c.caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	action := dto.Action(ctx.PostForm("action"))
	handler, ok := c.actions[action]
	if !ok {
		c.logger.Warn().Str("action", string(action)).Msg("Unknown student action")
		middleware.HandleAPIError(ctx, apperrors.ErrUnknownAction)
		return
	}

	message, err := handler(ctx, student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, message))
}

func (c *StudentController) sendEmail(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.SendEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid email form")
	}
	if err := c.services.MessagingService.SendEmailFromStudent(ctx.Request.Context(), student, &req); err != nil {
		return "", err
	}
	return "Email sent successfully!", nil
}

func (c *StudentController) deleteEmail(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.DeleteEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid email form")
	}
	if err := c.services.MessagingService.DeleteSentEmailForStudent(ctx.Request.Context(), req.EmailID, student.ID); err != nil {
		return "", err
	}
	return "Email deleted.", nil
}

func (c *StudentController) markNotificationRead(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.NotificationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid notification form")
	}
	if err := c.services.MessagingService.MarkNotificationReadForStudent(ctx.Request.Context(), req.NotificationID, student.ID); err != nil {
		return "", err
	}
	return "Notification marked as read.", nil
}

func (c *StudentController) deleteNotification(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.NotificationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid notification form")
	}
	if err := c.services.MessagingService.DeleteNotificationForStudent(ctx.Request.Context(), req.NotificationID, student.ID); err != nil {
		return "", err
	}
	return "Notification deleted.", nil
}

func (c *StudentController) enroll(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid enrollment form")
	}
	if _, err := c.services.EnrollmentService.Enroll(ctx.Request.Context(), student.ID, req.CourseID); err != nil {
		return "", err
	}
	return "Enrollment successful!", nil
}

func (c *StudentController) pay(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.PayRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid payment form")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return "", apperrors.NewValidationError("Payment amount must be a decimal number")
	}
	if _, err := c.services.FinanceService.Pay(ctx.Request.Context(), student.ID, amount); err != nil {
		return "", err
	}
	return "Payment received. Thank you!", nil
}

func (c *StudentController) submitAssignment(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.SubmitAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid submission form")
	}
	file, err := ctx.FormFile("submission_file")
	if err != nil {
		return "", apperrors.NewValidationError("Submission file is required")
	}
	if _, err := c.services.AssignmentService.SubmitAssignment(ctx.Request.Context(), student.ID, &req, file); err != nil {
		return "", err
	}
	return "Assignment submitted.", nil
}

func (c *StudentController) deleteSubmission(ctx *gin.Context, student *models.Student) (string, error) {
	var req dto.DeleteAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid assignment form")
	}
	if err := c.services.AssignmentService.DeleteSubmission(ctx.Request.Context(), req.AssignmentID, student.ID); err != nil {
		return "", err
	}
	return "Submission deleted.", nil
}
