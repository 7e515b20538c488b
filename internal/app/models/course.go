package models

// Course is a course that students can enroll in.
type Course struct {
	ID    int64  `json:"id" db:"id" example:"1"`
	Title string `json:"title" db:"title" example:"Analytical Engines"`

	// Inverse side of Student.Courses, populated when needed
	Students []*Student `json:"students,omitempty"`
}
