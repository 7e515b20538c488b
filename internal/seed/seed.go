package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/repositories"
)

// DefaultCourseTitles are created on an empty database when seeding is enabled
var DefaultCourseTitles = []string{
	"Introduction to Programming",
	"Data Structures",
	"Databases",
	"Computer Networks",
}

// CreateDefaultData creates the default courses if no course exists yet.
// A failed course does not stop the others; all errors are joined.
func CreateDefaultData(ctx context.Context, courseRepo repositories.CourseStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses)...")

	count, err := courseRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("courses", count).Msg("Courses already present, skipping default data")
		return nil
	}

	var finalErr error
	created := 0
	for _, title := range DefaultCourseTitles {
		if err := courseRepo.Create(ctx, &models.Course{Title: title}); err != nil {
			lgr.Error().Err(err).Str("title", title).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("created", created).Msg("Default data check/creation finished.")
	return finalErr
}
