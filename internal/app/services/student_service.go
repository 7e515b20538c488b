package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/bearnet/internal/app/mappers"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/models/dto"
	"github.com/yigit/bearnet/internal/app/repositories"
	"github.com/yigit/bearnet/internal/pkg/metrics"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]dto.StudentDTO, error)
	EnrollStudentInCourse(ctx context.Context, studentID, courseID int64) (*dto.StudentDTO, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo repositories.StudentStore
	courseRepo  repositories.CourseStore
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance. m may be nil.
func NewStudentService(studentRepo repositories.StudentStore, courseRepo repositories.CourseStore, m *metrics.Metrics, lgr zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		metrics:     m,
		logger:      lgr,
	}
}

// CreateStudent stores the student as given
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return student, nil
}

// GetAllStudents retrieves all students projected to DTOs
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]dto.StudentDTO, error) {
	students, err := s.studentRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return mappers.ToStudentDTOList(students), nil
}

// EnrollStudentInCourse adds the course to the student's courses.
// Both lookups happen before the write, so an unknown id changes nothing.
// Unknown ids are plain errors; callers see a generic failure.
func (s *studentServiceImpl) EnrollStudentInCourse(ctx context.Context, studentID, courseID int64) (*dto.StudentDTO, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("error retrieving student %d: %w", studentID, err)
	}

	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("error retrieving course %d: %w", courseID, err)
	}

	enrollment, err := s.studentRepo.AddCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error enrolling student: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Enrollments.Inc()
	}
	s.logger.Info().
		Int64("enrollmentID", enrollment.ID).
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Msg("Student enrolled in course")

	// Reload so enrollments committed by other requests show up too
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error reloading student: %w", err)
	}

	result := mappers.ToStudentDTO(student)
	return &result, nil
}
