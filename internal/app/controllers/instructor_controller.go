package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/app/services"
	"github.com/mkaraca/campushub/internal/middleware"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

type instructorResolver interface {
	GetInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error)
}

type instructorAction func(ctx *gin.Context, instructor *models.Instructor) (string, error)

// InstructorController serves the instructor dashboard and its actions
type InstructorController struct {
	instructors instructorResolver
	services    *services.Services
	actions     map[dto.Action]instructorAction
	logger      zerolog.Logger
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructors instructorResolver, svcs *services.Services, logger zerolog.Logger) *InstructorController {
	c := &InstructorController{
		instructors: instructors,
		services:    svcs,
		logger:      logger,
	}
	c.actions = map[dto.Action]instructorAction{
		dto.ActionSendEmail:            c.sendEmail,
		dto.ActionDeleteEmail:          c.deleteEmail,
		dto.ActionMarkNotificationRead: c.markNotificationRead,
		dto.ActionDeleteNotification:   c.deleteNotification,
		dto.ActionMakeAnnouncement:     c.makeAnnouncement,
		dto.ActionDeleteAnnouncement:   c.deleteAnnouncement,
		dto.ActionAddAssignment:        c.addAssignment,
		dto.ActionDeleteAssignment:     c.deleteAssignment,
		dto.ActionAddGrade:             c.setGrade,
		dto.ActionUpdateGrade:          c.setGrade,
		dto.ActionDeleteGrade:          c.deleteGrade,
		dto.ActionMarkAttendance:       c.markAttendance,
	}
	return c
}

func (c *InstructorController) caller(ctx *gin.Context) (*models.Instructor, error) {
	return c.instructors.GetInstructorByEmail(ctx.Request.Context(), middleware.CallerEmail(ctx))
}

// Dashboard returns the aggregate instructor dashboard
// @Summary Instructor dashboard
// @Description Returns profile, courses, enrollments, students, schedules, assignments, submissions, announcements, grades, attendance, notifications and sent emails.
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InstructorDashboard} "Dashboard payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or expired session"
// @Router /instructor/dashboard [get]
func (c *InstructorController) Dashboard(ctx *gin.Context) {
	instructor, err := c.caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	dashboard, err := c.services.DashboardService.InstructorDashboard(ctx.Request.Context(), instructor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard, ""))
}

// Actions dispatches an instructor dashboard action
// @Summary Instructor dashboard action
// @Description Executes one action from the instructor dashboard. The multipart form carries an action discriminator plus the action's own fields.
// @Tags instructor
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param action formData string true "One of send_email, delete_email, make_announcement, delete_announcement, add_assignment, delete_assignment, add_grade, update_grade, delete_grade, mark_notification_read, delete_notification, mark_attendance"
// @Success 200 {object} dto.APIResponse "Action result message"
// @Failure 400 {object} dto.ErrorResponse "Unknown action or invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Target resource not found or not owned"
// @Router /instructor/actions [post]
func (c *InstructorController) Actions(ctx *gin.Context) {
	instructor, err := c.caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	action := dto.Action(ctx.PostForm("action"))
	handler, ok := c.actions[action]
	if !ok {
		c.logger.Warn().Str("action", string(action)).Msg("Unknown instructor action")
		middleware.HandleAPIError(ctx, apperrors.ErrUnknownAction)
		return
	}

	message, err := handler(ctx, instructor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, message))
}

func (c *InstructorController) sendEmail(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.SendEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid email form")
	}
	if err := c.services.MessagingService.SendEmailFromInstructor(ctx.Request.Context(), instructor, &req); err != nil {
		return "", err
	}
	return "Email sent successfully!", nil
}

func (c *InstructorController) deleteEmail(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.DeleteEmailRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid email form")
	}
	if err := c.services.MessagingService.DeleteSentEmailForInstructor(ctx.Request.Context(), req.EmailID, instructor.ID); err != nil {
		return "", err
	}
	return "Email deleted.", nil
}

func (c *InstructorController) markNotificationRead(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.NotificationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid notification form")
	}
	if err := c.services.MessagingService.MarkNotificationReadForInstructor(ctx.Request.Context(), req.NotificationID, instructor.ID); err != nil {
		return "", err
	}
	return "Notification marked as read.", nil
}

func (c *InstructorController) deleteNotification(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.NotificationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid notification form")
	}
	if err := c.services.MessagingService.DeleteNotificationForInstructor(ctx.Request.Context(), req.NotificationID, instructor.ID); err != nil {
		return "", err
	}
	return "Notification deleted.", nil
}

func (c *InstructorController) makeAnnouncement(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.AnnouncementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid announcement form")
	}
	if _, err := c.services.MessagingService.PostAnnouncement(ctx.Request.Context(), instructor, &req); err != nil {
		return "", err
	}
	return "Announcement posted.", nil
}

func (c *InstructorController) deleteAnnouncement(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.DeleteAnnouncementRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid announcement form")
	}
	if err := c.services.MessagingService.DeleteAnnouncement(ctx.Request.Context(), req.AnnouncementID, instructor.ID); err != nil {
		return "", err
	}
	return "Announcement deleted.", nil
}

func (c *InstructorController) addAssignment(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.AddAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid assignment form")
	}
	// reference document is optional
	referenceDoc, err := ctx.FormFile("reference_document")
	if err != nil {
		referenceDoc = nil
	}
	if _, err := c.services.AssignmentService.AddAssignment(ctx.Request.Context(), instructor.ID, &req, referenceDoc); err != nil {
		return "", err
	}
	return "Assignment created.", nil
}

func (c *InstructorController) deleteAssignment(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.DeleteAssignmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid assignment form")
	}
	if err := c.services.AssignmentService.DeleteAssignment(ctx.Request.Context(), req.AssignmentID, instructor.ID); err != nil {
		return "", err
	}
	return "Assignment deleted.", nil
}

func (c *InstructorController) setGrade(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.GradeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid grade form")
	}
	if _, err := c.services.GradeService.SetGrade(ctx.Request.Context(), instructor.ID, &req); err != nil {
		return "", err
	}
	return "Grade saved.", nil
}

func (c *InstructorController) deleteGrade(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.GradeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid grade form")
	}
	if err := c.services.GradeService.DeleteGrade(ctx.Request.Context(), instructor.ID, &req); err != nil {
		return "", err
	}
	return "Grade deleted.", nil
}

func (c *InstructorController) markAttendance(ctx *gin.Context, instructor *models.Instructor) (string, error) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return "", apperrors.NewValidationError("Invalid attendance form")
	}
	marked, err := c.services.AttendanceService.MarkAttendance(ctx.Request.Context(), instructor.ID, &req)
	if err != nil {
		return "", err
	}
	if marked == 0 {
		return "No enrolled students were checked.", nil
	}
	return "Attendance recorded.", nil
}
