package mappers

import (
	"github.com/yigit/bearnet/internal/app/models"
	"github.com/yigit/bearnet/internal/app/models/dto"
)

// ToStudentDTO projects a student, replacing its courses by their titles
func ToStudentDTO(student *models.Student) dto.StudentDTO {
	return dto.StudentDTO{
		ID:      student.ID,
		Name:    student.Name,
		Courses: CourseTitles(student.Courses),
	}
}

// ToStudentDTOList projects every student, keeping order
func ToStudentDTOList(students []*models.Student) []dto.StudentDTO {
	out := make([]dto.StudentDTO, 0, len(students))
	for _, s := range students {
		out = append(out, ToStudentDTO(s))
	}
	return out
}

// CourseTitles returns the titles of courses in order. Never nil.
func CourseTitles(courses []*models.Course) []string {
	titles := make([]string, 0, len(courses))
	for _, c := range courses {
		titles = append(titles, c.Title)
	}
	return titles
}
