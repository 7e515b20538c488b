package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/repositories"
	"github.com/yigit/bearnet/internal/app/repositories/gormstore"
	"github.com/yigit/bearnet/internal/db"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
	"github.com/yigit/bearnet/internal/pkg/metrics"
)

type fixture struct {
	repos    *repositories.Repositories
	metrics  *metrics.Metrics
	students StudentService
	courses  CourseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sdb, err := db.OpenSQLite(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(sdb.Close)
	require.NoError(t, gormstore.AutoMigrate(sdb.DB))

	repos := gormstore.NewRepositories(sdb.DB)
	m := metrics.New()
	return &fixture{
		repos:    repos,
		metrics:  m,
		students: NewStudentService(repos.StudentRepository, repos.CourseRepository, m, zerolog.Nop()),
		courses:  NewCourseService(repos.CourseRepository),
	}
}

func TestCreateThenList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	student, err := f.students.CreateStudent(ctx, &models.Student{Name: "Ada"})
	require.NoError(t, err)
	assert.NotZero(t, student.ID)

	course, err := f.courses.CreateCourse(ctx, &models.Course{Title: "Logic"})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].ID)
	assert.Equal(t, "Ada", students[0].Name)
	assert.Equal(t, []string{}, students[0].Courses)

	courses, err := f.courses.GetAllCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Logic", courses[0].Title)
	assert.Equal(t, []string{}, courses[0].StudentNames)
}

func TestListEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	courses, err := f.courses.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestEnrollStudentInCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	student, err := f.students.CreateStudent(ctx, &models.Student{Name: "Ada"})
	require.NoError(t, err)
	course, err := f.courses.CreateCourse(ctx, &models.Course{Title: "Logic"})
	require.NoError(t, err)

	got, err := f.students.EnrollStudentInCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)
	assert.Equal(t, []string{"Logic"}, got.Courses)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Enrollments))

	courses, err := f.courses.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, courses[0].StudentNames)

	// No idempotence check: a second enrollment is stored again
	got, err = f.students.EnrollStudentInCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logic", "Logic"}, got.Courses)

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logic", "Logic"}, students[0].Courses)
}

func TestEnrollStudentInCourse_UnknownIDsLeaveNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	student, err := f.students.CreateStudent(ctx, &models.Student{Name: "Ada"})
	require.NoError(t, err)
	course, err := f.courses.CreateCourse(ctx, &models.Course{Title: "Logic"})
	require.NoError(t, err)

	_, err = f.students.EnrollStudentInCourse(ctx, 999, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.students.EnrollStudentInCourse(ctx, student.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrBadRequest)

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students[0].Courses)

	courses, err := f.courses.GetAllCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses[0].StudentNames)
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.Enrollments))
}

// failingStore returns errStore from every call
type failingStore struct{}

var errStore = errors.New("connection reset")

func (failingStore) Create(context.Context, *models.Student) error { return errStore }
func (failingStore) FindAll(context.Context) ([]*models.Student, error) {
	return nil, errStore
}
func (failingStore) FindByID(context.Context, int64) (*models.Student, error) {
	return nil, errStore
}
func (failingStore) AddCourse(context.Context, int64, int64) (*models.Enrollment, error) {
	return nil, errStore
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewStudentService(failingStore{}, f.repos.CourseRepository, nil, zerolog.Nop())

	_, err := svc.CreateStudent(ctx, &models.Student{Name: "Ada"})
	assert.ErrorIs(t, err, errStore)

	_, err = svc.GetAllStudents(ctx)
	assert.ErrorIs(t, err, errStore)

	_, err = svc.EnrollStudentInCourse(ctx, 1, 1)
	assert.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, apperrors.ErrStudentNotFound)
}

// racingStudentStore stores an extra enrollment for the same student just
// before each AddCourse, like another request landing in between.
type racingStudentStore struct {
	repositories.StudentStore
	otherCourseID int64
}

func (r racingStudentStore) AddCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if _, err := r.StudentStore.AddCourse(ctx, studentID, r.otherCourseID); err != nil {
		return nil, err
	}
	return r.StudentStore.AddCourse(ctx, studentID, courseID)
}

func TestEnrollStudentInCourse_ResponseReflectsStoredEnrollments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	student, err := f.students.CreateStudent(ctx, &models.Student{Name: "Ada"})
	require.NoError(t, err)
	other, err := f.courses.CreateCourse(ctx, &models.Course{Title: "Logic"})
	require.NoError(t, err)
	course, err := f.courses.CreateCourse(ctx, &models.Course{Title: "Algebra"})
	require.NoError(t, err)

	store := racingStudentStore{StudentStore: f.repos.StudentRepository, otherCourseID: other.ID}
	svc := NewStudentService(store, f.repos.CourseRepository, nil, zerolog.Nop())

	got, err := svc.EnrollStudentInCourse(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logic", "Algebra"}, got.Courses)

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, students[0].Courses, got.Courses)
}
