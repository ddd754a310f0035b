package domain

// Instructor represents one course instructor from the "1 - Instructor" sheet.
type Instructor struct {
	InstructorID string `json:"instructorID" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
}
