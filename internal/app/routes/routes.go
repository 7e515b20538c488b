package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bearnet/internal/app/controllers"
	"github.com/yigit/bearnet/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
) {
	students := router.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.GetAllStudents)
		students.POST("/:studentId/courses/:courseId", studentController.EnrollStudentInCourse)
	}

	courses := router.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
	}

	router.GET("/health", Health)
}

// Health reports that the service is up
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is healthy"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
}
