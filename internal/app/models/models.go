package models

// CallerType identifies who a token was issued to. It is carried in the "type" claim.
type CallerType string

const (
	CallerStudent CallerType = "student"
	CallerAdmin   CallerType = "admin"
)

// Valid reports whether the caller type is one the API issues tokens for
func (c CallerType) Valid() bool {
	return c == CallerStudent || c == CallerAdmin
}

// Default values applied on registration when the request omits them
const (
	DefaultStudentLevel      = 1
	DefaultStudentAttendance = 0
)
