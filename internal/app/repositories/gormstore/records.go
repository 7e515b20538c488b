package gormstore

import (
	"time"

	"gorm.io/gorm"
)

// Table rows as gorm sees them. They mirror migrations/001_init.sql so the
// SQLite and PostgreSQL backends share a schema.

type studentRecord struct {
	ID          int64              `gorm:"primaryKey;autoIncrement"`
	Name        string             `gorm:"size:255;not null;default:''"`
	Enrollments []enrollmentRecord `gorm:"foreignKey:StudentID"`
}

func (studentRecord) TableName() string { return "students" }

type courseRecord struct {
	ID          int64              `gorm:"primaryKey;autoIncrement"`
	Title       string             `gorm:"size:255;not null;default:''"`
	Enrollments []enrollmentRecord `gorm:"foreignKey:CourseID"`
}

func (courseRecord) TableName() string { return "courses" }

type enrollmentRecord struct {
	ID        int64          `gorm:"primaryKey;autoIncrement"`
	StudentID int64          `gorm:"not null;index"`
	CourseID  int64          `gorm:"not null;index"`
	CreatedAt time.Time      `gorm:"not null"`
	Student   *studentRecord `gorm:"foreignKey:StudentID"`
	Course    *courseRecord  `gorm:"foreignKey:CourseID"`
}

func (enrollmentRecord) TableName() string { return "student_courses" }

// AutoMigrate creates or updates the tables used by this package
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&studentRecord{}, &courseRecord{}, &enrollmentRecord{})
}

// byEnrollmentOrder keeps preloaded associations in insertion order
func byEnrollmentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("student_courses.id ASC")
}
