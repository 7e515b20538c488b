package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/bearnet/internal/app/models"
)

// StudentStore is the persistence contract for students.
// Implemented by StudentRepository (pgx) and gormstore.StudentRepository.
type StudentStore interface {
	// Create stores the student as given and sets its ID
	Create(ctx context.Context, student *models.Student) error
	// FindAll returns every student in ascending ID order with Courses populated
	FindAll(ctx context.Context) ([]*models.Student, error)
	// FindByID returns apperrors.ErrStudentNotFound when no row matches
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	// AddCourse appends an association row. Duplicates are allowed.
	AddCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
}

// CourseStore is the persistence contract for courses
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	// FindAll returns every course in ascending ID order with Students populated
	FindAll(ctx context.Context) ([]*models.Course, error)
	// FindByID returns apperrors.ErrCourseNotFound when no row matches
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository StudentStore
	CourseRepository  CourseStore
}

// NewRepositories initializes the PostgreSQL backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		CourseRepository:  NewCourseRepository(db),
	}
}
