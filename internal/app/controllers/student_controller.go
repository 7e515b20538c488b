package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/models/dto"
	"github.com/yigit/bearnet/internal/app/services"
	"github.com/yigit/bearnet/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Stores the student as given
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req, "Invalid student data") {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &models.Student{Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetAllStudents retrieves all students
// @Summary Get all students
// @Description Lists every student with the titles of the courses they are enrolled in
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentDTO} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// EnrollStudentInCourse enrolls a student in a course
// @Summary Enroll a student in a course
// @Description Adds the course to the student's courses. Enrolling twice stores the enrollment twice.
// @Tags students
// @Produce json
// @Param studentId path int true "Student ID" Format(int64)
// @Param courseId path int true "Course ID" Format(int64)
// @Success 200 {object} dto.APIResponse{data=dto.StudentDTO} "Student enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student or course ID"
// @Failure 500 {object} dto.ErrorResponse "Unknown student or course, or internal server error"
// @Router /students/{studentId}/courses/{courseId} [post]
func (c *StudentController) EnrollStudentInCourse(ctx *gin.Context) {
	studentID, ok := middleware.ParseIDParam(ctx, "studentId", "student")
	if !ok {
		return
	}
	courseID, ok := middleware.ParseIDParam(ctx, "courseId", "course")
	if !ok {
		return
	}

	student, err := c.studentService.EnrollStudentInCourse(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}
