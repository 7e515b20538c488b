package services

import (
	"context"
	"fmt"

	"github.com/yigit/bearnet/internal/app/mappers"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/models/dto"
	"github.com/yigit/bearnet/internal/app/repositories"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]dto.CourseDTO, error)
}

type courseServiceImpl struct {
	courseRepo repositories.CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseStore) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// CreateCourse stores the course as given
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// GetAllCourses retrieves all courses projected to DTOs
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return mappers.ToCourseDTOList(courses), nil
}
