package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// letters and digits, optionally separated by single spaces or dashes
	courseCodePattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:[ -][A-Za-z0-9]+)*$`)
	// e.g. "Fall 2025", "Summer II 2026"
	semesterPattern = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)* \d{4}$`)
)

const maxCourseCodeLen = 32

// CourseCode validates a course code after trimming.
func CourseCode(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	return v != "" && len(v) <= maxCourseCodeLen && courseCodePattern.MatchString(v)
}

// Semester validates a semester label after trimming.
func Semester(fl validator.FieldLevel) bool {
	v := strings.TrimSpace(fl.Field().String())
	return len(v) <= 40 && semesterPattern.MatchString(v)
}

// Register installs the custom rules on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("coursecode", CourseCode); err != nil {
		return fmt.Errorf("register coursecode: %w", err)
	}
	if err := v.RegisterValidation("semester", Semester); err != nil {
		return fmt.Errorf("register semester: %w", err)
	}
	return nil
}

// RegisterGin installs the custom rules on gin's default binding validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin validator engine is %T, not *validator.Validate", binding.Validator.Engine())
	}
	return Register(v)
}
