package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mkaraca/campushub/internal/app/controllers"
	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	instructorController *controllers.InstructorController,
	registrarController *controllers.RegistrarController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Student dashboard and actions. The role carried in the token decides
	// access, so an instructor token is rejected here with 403.
	student := authenticated.Group("/student")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/dashboard", studentController.Dashboard)
		student.POST("/actions", studentController.Actions)
	}

	// Instructor dashboard and actions
	instructor := authenticated.Group("/instructor")
	instructor.Use(authMiddleware.RoleRequired(models.RoleInstructor))
	{
		instructor.GET("/dashboard", instructorController.Dashboard)
		instructor.POST("/actions", instructorController.Actions)
	}

	// Registrar routes manage the institutional records themselves. They are
	// restricted to the instructor role.
	registrar := authenticated.Group("/registrar")
	registrar.Use(authMiddleware.RoleRequired(models.RoleInstructor))
	{
		students := registrar.Group("/students")
		{
			students.POST("", registrarController.CreateStudent)
			students.GET("", registrarController.ListStudents)
			students.PUT("/:id", registrarController.UpdateStudent)
			students.DELETE("/:id", registrarController.DeleteStudent)
		}

		instructors := registrar.Group("/instructors")
		{
			instructors.POST("", registrarController.CreateInstructor)
			instructors.GET("", registrarController.ListInstructors)
		}

		courses := registrar.Group("/courses")
		{
			courses.POST("", registrarController.CreateCourse)
			courses.GET("", registrarController.ListCourses)
			courses.DELETE("/:id", registrarController.DeleteCourse)
		}

		registrar.POST("/fees", registrarController.CreateFee)
		registrar.POST("/schedules", registrarController.CreateSchedule)
	}
}
