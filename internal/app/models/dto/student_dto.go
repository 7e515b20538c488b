package dto

// CreateStudentRequest represents student creation data.
// Fields are stored as given; nothing is required.
type CreateStudentRequest struct {
	Name string `json:"name" example:"Ada Lovelace"`
}

// StudentDTO is the read view of a student with course titles instead of course objects
type StudentDTO struct {
	ID      int64    `json:"id" example:"1"`
	Name    string   `json:"name" example:"Ada Lovelace"`
	Courses []string `json:"courses" example:"Analytical Engines"`
}
