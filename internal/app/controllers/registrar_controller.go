package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/app/services"
	"github.com/mkaraca/campushub/internal/middleware"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
)

// RegistrarController exposes the provisioning surface: students,
// instructors, courses, fees and schedules.
type RegistrarController struct {
	registrar *services.RegistrarService
	logger    zerolog.Logger
}

// NewRegistrarController creates a new RegistrarController
func NewRegistrarController(registrar *services.RegistrarService, logger zerolog.Logger) *RegistrarController {
	return &RegistrarController{
		registrar: registrar,
		logger:    logger,
	}
}

func pathID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid id parameter")
	}
	return id, nil
}

// CreateStudent provisions a student record
// @Summary Create student
// @Description Provisions a student; the student ID and university email are generated from the major.
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /registrar/students [post]
func (c *RegistrarController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	student, err := c.registrar.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student, "Student created."))
}

// ListStudents lists all students
// @Summary List students
// @Tags registrar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students"
// @Router /registrar/students [get]
func (c *RegistrarController) ListStudents(ctx *gin.Context) {
	students, err := c.registrar.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students, ""))
}

// UpdateStudent updates a student record
// @Summary Update student
// @Description Updates a student's profile. Changing the major regenerates the student ID and university email.
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /registrar/students/{id} [put]
func (c *RegistrarController) UpdateStudent(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	student, err := c.registrar.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student updated."))
}

// DeleteStudent removes a student and their payments
// @Summary Delete student
// @Description Deletes the student's payment history first, then the student row.
// @Tags registrar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /registrar/students/{id} [delete]
func (c *RegistrarController) DeleteStudent(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.registrar.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student deleted."))
}

// CreateInstructor provisions an instructor record
// @Summary Create instructor
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstructorRequest true "Instructor information"
// @Success 201 {object} dto.APIResponse{data=models.Instructor} "Instructor created"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /registrar/instructors [post]
func (c *RegistrarController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	instructor, err := c.registrar.CreateInstructor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(instructor, "Instructor created."))
}

// ListInstructors lists all instructors
// @Summary List instructors
// @Tags registrar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Instructor} "Instructors"
// @Router /registrar/instructors [get]
func (c *RegistrarController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.registrar.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructors, ""))
}

// CreateCourse creates a course
// @Summary Create course
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /registrar/courses [post]
func (c *RegistrarController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	course, err := c.registrar.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course, "Course created."))
}

// ListCourses lists all courses
// @Summary List courses
// @Tags registrar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Router /registrar/courses [get]
func (c *RegistrarController) ListCourses(ctx *gin.Context) {
	courses, err := c.registrar.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses, ""))
}

// DeleteCourse removes a course and its dependent rows
// @Summary Delete course
// @Tags registrar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /registrar/courses/{id} [delete]
func (c *RegistrarController) DeleteCourse(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.registrar.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course deleted."))
}

// CreateFee attaches a fee to a course
// @Summary Create fee
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFeeRequest true "Fee information"
// @Success 201 {object} dto.APIResponse{data=models.Fee} "Fee created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /registrar/fees [post]
func (c *RegistrarController) CreateFee(ctx *gin.Context) {
	var req dto.CreateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	fee, err := c.registrar.CreateFee(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(fee, "Fee created."))
}

// CreateSchedule adds a weekly time slot to a course
// @Summary Create schedule slot
// @Tags registrar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse{data=models.Schedule} "Schedule created"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /registrar/schedules [post]
func (c *RegistrarController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	schedule, err := c.registrar.CreateSchedule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(schedule, "Schedule created."))
}
