package domain

// Course represents one course offering from the "2 - Course" sheet.
// InstructorID is a soft reference to an Instructor row; it is not enforced.
type Course struct {
	CourseID      string `json:"courseID" validate:"required"`
	InstructorID  string `json:"instructorID" validate:"required"`
	Prefix        string `json:"prefix" validate:"required"`
	Number        string `json:"number" validate:"required"`
	Suffix        string `json:"suffix"`
	AcademicYear  int    `json:"academicYear" validate:"required"`
	YearInProgram int    `json:"yearInProgram" validate:"required"`
}
