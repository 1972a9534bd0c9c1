package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Student identifier pattern, letters, digits, dash and underscore
	StudentIDPattern = `^[A-Za-z0-9_-]{1,32}$`

	// Password min length
	PasswordMinLength = 8

	// PasswordMaxBytes is the bcrypt input limit, counted in bytes not characters
	PasswordMaxBytes = 72

	// Name validation max length
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// Register installs the custom rules and reports JSON names instead of Go field names.
// It is safe to call more than once on the same validator.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)
	if err := v.RegisterValidation("studentid", validateStudentID); err != nil {
		return err
	}
	return v.RegisterValidation("passwordbytes", validatePasswordBytes)
}

// validateStudentID backs the `studentid` binding tag
func validateStudentID(fl validator.FieldLevel) bool {
	return IsValidStudentID(fl.Field().String())
}

// validatePasswordBytes backs the `passwordbytes` binding tag
func validatePasswordBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= PasswordMaxBytes
}

// IsValidStudentID reports whether s is an acceptable student identifier
func IsValidStudentID(s string) bool {
	return CompiledPatterns.StudentID.MatchString(s)
}

func jsonTagName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
