package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
	"github.com/yigit/bearnet/internal/pkg/logger"
	"gorm.io/gorm"
)

// CourseRepository handles course operations through gorm
type CourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a course and sets its generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	rec := courseRecord{Title: course.Title}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		logger.Error().Err(err).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	course.ID = rec.ID
	return nil
}

// FindAll retrieves all courses with their enrolled students
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	var recs []courseRecord
	err := r.withStudents(ctx).Order("courses.id ASC").Find(&recs).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}

	courses := make([]*models.Course, 0, len(recs))
	for i := range recs {
		courses = append(courses, recs[i].toModel())
	}
	return courses, nil
}

// FindByID retrieves a course by ID with its enrolled students
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	var rec courseRecord
	err := r.withStudents(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error getting course by ID")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return rec.toModel(), nil
}

// Count returns the number of stored courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&courseRecord{}).Count(&count).Error; err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

func (r *CourseRepository) withStudents(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Enrollments", byEnrollmentOrder).
		Preload("Enrollments.Student")
}

func (rec *courseRecord) toModel() *models.Course {
	course := &models.Course{
		ID:       rec.ID,
		Title:    rec.Title,
		Students: make([]*models.Student, 0, len(rec.Enrollments)),
	}
	for _, e := range rec.Enrollments {
		if e.Student == nil {
			continue
		}
		course.Students = append(course.Students, &models.Student{ID: e.Student.ID, Name: e.Student.Name})
	}
	return course
}
