package services

// Services defined in this package:
// - StudentService: creates and lists students, enrolls them in courses
// - CourseService: creates and lists courses
