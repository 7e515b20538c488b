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
	"github.com/yigit/bearnet/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course and sets its generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title").
		Values(course.Title).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// FindAll retrieves all courses with their enrolled students
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "title").
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	byID := make(map[int64]*models.Course)
	for rows.Next() {
		course := &models.Course{Students: []*models.Student{}}
		if err := rows.Scan(&course.ID, &course.Title); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during get all")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
		byID[course.ID] = course
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	if err := r.loadStudents(ctx, byID, nil); err != nil {
		return nil, err
	}

	return courses, nil
}

// FindByID retrieves a course by ID with its enrolled students
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "title").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{Students: []*models.Student{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	if err := r.loadStudents(ctx, map[int64]*models.Course{course.ID: course}, &course.ID); err != nil {
		return nil, err
	}

	return course, nil
}

// Count returns the number of stored courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// loadStudents fills Students of the given courses in enrollment order.
// A nil courseID loads the enrollments of every course.
func (r *CourseRepository) loadStudents(ctx context.Context, byID map[int64]*models.Course, courseID *int64) error {
	if len(byID) == 0 {
		return nil
	}

	q := r.sb.Select("e.course_id", "s.id", "s.name").
		From("student_courses e").
		Join("students s ON s.id = e.student_id").
		OrderBy("e.id ASC")
	if courseID != nil {
		q = q.Where(squirrel.Eq{"e.course_id": *courseID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course students SQL")
		return fmt.Errorf("failed to build course students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course students query")
		return fmt.Errorf("error querying course students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int64
		student := &models.Student{}
		if err := rows.Scan(&cid, &student.ID, &student.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning course student row")
			return fmt.Errorf("error scanning course student row: %w", err)
		}
		if course, ok := byID[cid]; ok {
			course.Students = append(course.Students, student)
		}
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course student rows")
		return fmt.Errorf("error iterating course student rows: %w", err)
	}

	return nil
}
