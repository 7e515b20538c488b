// Package gormstore implements the repository contracts on top of gorm.
// It backs the "sqlite" database driver and the test suites.
package gormstore

import (
	"github.com/yigit/bearnet/internal/app/repositories"
	"gorm.io/gorm"
)

var (
	_ repositories.StudentStore = (*StudentRepository)(nil)
	_ repositories.CourseStore  = (*CourseRepository)(nil)
)

// NewRepositories initializes the gorm backed repositories
func NewRepositories(db *gorm.DB) *repositories.Repositories {
	return &repositories.Repositories{
		StudentRepository: NewStudentRepository(db),
		CourseRepository:  NewCourseRepository(db),
	}
}
