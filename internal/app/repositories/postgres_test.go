package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/bearnet/internal/app/migrations"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
)

var (
	_ StudentStore = (*StudentRepository)(nil)
	_ CourseStore  = (*CourseRepository)(nil)
)

// newPostgresRepos connects to BEARNET_TEST_DATABASE_URL, applies the
// migrations and empties the tables. Tests are skipped when it is unset.
func newPostgresRepos(t *testing.T) *Repositories {
	t.Helper()
	dsn := os.Getenv("BEARNET_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BEARNET_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool).MigrateFromDirectory(ctx, "../../../migrations"))
	_, err = pool.Exec(ctx, "TRUNCATE student_courses, students, courses RESTART IDENTITY")
	require.NoError(t, err)

	return NewRepositories(pool)
}

func TestPostgres_EnrollmentRoundTrip(t *testing.T) {
	repos := newPostgresRepos(t)
	ctx := context.Background()

	students, err := repos.StudentRepository.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	ada := &models.Student{Name: "Ada"}
	require.NoError(t, repos.StudentRepository.Create(ctx, ada))
	logic := &models.Course{Title: "Logic"}
	require.NoError(t, repos.CourseRepository.Create(ctx, logic))

	for i := 0; i < 2; i++ {
		_, err := repos.StudentRepository.AddCourse(ctx, ada.ID, logic.ID)
		require.NoError(t, err)
	}

	got, err := repos.StudentRepository.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	require.Len(t, got.Courses, 2)
	assert.Equal(t, "Logic", got.Courses[0].Title)

	courses, err := repos.CourseRepository.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Len(t, courses[0].Students, 2)
	assert.Equal(t, "Ada", courses[0].Students[0].Name)

	count, err := repos.CourseRepository.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostgres_NotFoundAndForeignKeys(t *testing.T) {
	repos := newPostgresRepos(t)
	ctx := context.Background()

	_, err := repos.StudentRepository.FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = repos.CourseRepository.FindByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	ada := &models.Student{Name: "Ada"}
	require.NoError(t, repos.StudentRepository.Create(ctx, ada))

	_, err = repos.StudentRepository.AddCourse(ctx, ada.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = repos.StudentRepository.AddCourse(ctx, 999, 999)
	assert.Error(t, err)
}
