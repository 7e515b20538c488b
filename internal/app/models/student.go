package models

// Student is a student record. Courses is the authoritative side of the
// student/course relation and holds the enrolled courses in enrollment order.
type Student struct {
	ID      int64     `json:"id" db:"id" example:"1"`
	Name    string    `json:"name" db:"name" example:"Ada Lovelace"`
	Courses []*Course `json:"courses,omitempty"`
}
