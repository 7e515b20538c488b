package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
	"github.com/yigit/bearnet/internal/pkg/dberrors"
	"github.com/yigit/bearnet/internal/pkg/logger"
)

// Foreign key constraint names from migrations/001_init.sql
const (
	enrollmentStudentFK = "student_courses_student_id_fkey"
	enrollmentCourseFK  = "student_courses_course_id_fkey"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a student and sets its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name").
		Values(student.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// FindAll retrieves all students with their enrolled courses
func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("students").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all students SQL")
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	byID := make(map[int64]*models.Student)
	for rows.Next() {
		student := &models.Student{Courses: []*models.Course{}}
		if err := rows.Scan(&student.ID, &student.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning student row during get all")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
		byID[student.ID] = student
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	if err := r.loadCourses(ctx, byID, nil); err != nil {
		return nil, err
	}

	return students, nil
}

// FindByID retrieves a student by ID with its enrolled courses
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{Courses: []*models.Course{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	if err := r.loadCourses(ctx, map[int64]*models.Student{student.ID: student}, &student.ID); err != nil {
		return nil, err
	}

	return student, nil
}

// AddCourse inserts a row into student_courses
func (r *StudentRepository) AddCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Insert("student_courses").
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add course SQL")
		return nil, fmt.Errorf("failed to build add course query: %w", err)
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		// Either row may have vanished between the service lookups and this insert
		switch {
		case dberrors.IsForeignKeyViolation(err, enrollmentStudentFK):
			return nil, apperrors.ErrStudentNotFound
		case dberrors.IsForeignKeyViolation(err, enrollmentCourseFK):
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error executing add course query")
		return nil, fmt.Errorf("error adding course to student: %w", err)
	}

	return enrollment, nil
}

// loadCourses fills Courses of the given students in enrollment order.
// A nil studentID loads the enrollments of every student.
func (r *StudentRepository) loadCourses(ctx context.Context, byID map[int64]*models.Student, studentID *int64) error {
	if len(byID) == 0 {
		return nil
	}

	q := r.sb.Select("e.student_id", "c.id", "c.title").
		From("student_courses e").
		Join("courses c ON c.id = e.course_id").
		OrderBy("e.id ASC")
	if studentID != nil {
		q = q.Where(squirrel.Eq{"e.student_id": *studentID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building student courses SQL")
		return fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student courses query")
		return fmt.Errorf("error querying student courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sid int64
		course := &models.Course{}
		if err := rows.Scan(&sid, &course.ID, &course.Title); err != nil {
			logger.Error().Err(err).Msg("Error scanning student course row")
			return fmt.Errorf("error scanning student course row: %w", err)
		}
		if student, ok := byID[sid]; ok {
			student.Courses = append(student.Courses, course)
		}
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student course rows")
		return fmt.Errorf("error iterating student course rows: %w", err)
	}

	return nil
}
