package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title string `json:"title" example:"Analytical Engines"`
}

// CourseDTO is the read view of a course with student names instead of student objects
type CourseDTO struct {
	ID           int64    `json:"id" example:"1"`
	Title        string   `json:"title" example:"Analytical Engines"`
	StudentNames []string `json:"studentNames" example:"Ada Lovelace"`
}
