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

// StudentRepository handles student operations through gorm
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a student and sets its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	rec := studentRecord{Name: student.Name}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		logger.Error().Err(err).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	student.ID = rec.ID
	return nil
}

// FindAll retrieves all students with their enrolled courses
func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	var recs []studentRecord
	err := r.withCourses(ctx).Order("students.id ASC").Find(&recs).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}

	students := make([]*models.Student, 0, len(recs))
	for i := range recs {
		students = append(students, recs[i].toModel())
	}
	return students, nil
}

// FindByID retrieves a student by ID with its enrolled courses
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var rec studentRecord
	err := r.withCourses(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error getting student by ID")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return rec.toModel(), nil
}

// AddCourse inserts a row into student_courses
func (r *StudentRepository) AddCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	rec := enrollmentRecord{StudentID: studentID, CourseID: courseID}
	if err := r.db.WithContext(ctx).Omit("Student", "Course").Create(&rec).Error; err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error adding course to student")
		return nil, fmt.Errorf("error adding course to student: %w", err)
	}
	return &models.Enrollment{
		ID:        rec.ID,
		StudentID: rec.StudentID,
		CourseID:  rec.CourseID,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (r *StudentRepository) withCourses(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Enrollments", byEnrollmentOrder).
		Preload("Enrollments.Course")
}

func (rec *studentRecord) toModel() *models.Student {
	student := &models.Student{
		ID:      rec.ID,
		Name:    rec.Name,
		Courses: make([]*models.Course, 0, len(rec.Enrollments)),
	}
	for _, e := range rec.Enrollments {
		if e.Course == nil {
			continue
		}
		student.Courses = append(student.Courses, &models.Course{ID: e.Course.ID, Title: e.Course.Title})
	}
	return student
}
