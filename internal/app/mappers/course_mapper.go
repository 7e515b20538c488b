package mappers

import (
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/models/dto"
)

// ToCourseDTO projects a course, replacing its students by their names
func ToCourseDTO(course *models.Course) dto.CourseDTO {
	return dto.CourseDTO{
		ID:           course.ID,
		Title:        course.Title,
		StudentNames: StudentNames(course.Students),
	}
}

// ToCourseDTOList projects every course, keeping order
func ToCourseDTOList(courses []*models.Course) []dto.CourseDTO {
	out := make([]dto.CourseDTO, 0, len(courses))
	for _, c := range courses {
		out = append(out, ToCourseDTO(c))
	}
	return out
}

// StudentNames returns the names of students in order. Never nil.
func StudentNames(students []*models.Student) []string {
	names := make([]string, 0, len(students))
	for _, s := range students {
		names = append(names, s.Name)
	}
	return names
}
