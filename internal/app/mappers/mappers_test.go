package mappers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/bearnet/internal/app/models"
)

func TestToStudentDTO_ProjectsCourseTitles(t *testing.T) {
	algebra := &models.Course{ID: 1, Title: "Algebra"}
	logic := &models.Course{ID: 2, Title: "Logic"}
	student := &models.Student{ID: 7, Name: "Ada", Courses: []*models.Course{algebra, logic, algebra}}

	got := ToStudentDTO(student)

	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, []string{"Algebra", "Logic", "Algebra"}, got.Courses)
}

func TestToCourseDTO_ProjectsStudentNames(t *testing.T) {
	course := &models.Course{ID: 3, Title: "Logic", Students: []*models.Student{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Alan"}}}

	got := ToCourseDTO(course)

	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "Logic", got.Title)
	assert.Equal(t, []string{"Ada", "Alan"}, got.StudentNames)
}

func TestEmptyCollectionsEncodeAsEmptyArrays(t *testing.T) {
	students := ToStudentDTOList(nil)
	courses := ToCourseDTOList([]*models.Course{{ID: 1, Title: "Empty"}})

	raw, err := json.Marshal(students)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	raw, err = json.Marshal(courses)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Empty","studentNames":[]}]`, string(raw))
}

func TestToStudentDTOList_KeepsOrder(t *testing.T) {
	got := ToStudentDTOList([]*models.Student{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}})

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
	assert.Equal(t, []string{}, got[0].Courses)
}
