package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// CourseCode is an immutable course identifier: department, number, section.
// Department and section are upper-cased on construction.
type CourseCode struct {
	Department string `json:"department"`
	Number     int    `json:"number"`
	Section    string `json:"section"`
}

// NewCourseCode validates and canonicalises a course code.
func NewCourseCode(department string, number int, section string) (CourseCode, error) {
	department = strings.ToUpper(strings.TrimSpace(department))
	section = strings.ToUpper(strings.TrimSpace(section))
	if department == "" {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, "department cannot be empty")
	}
	if number <= 0 {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, "course number must be positive")
	}
	if section == "" {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, "section cannot be empty")
	}
	return CourseCode{Department: department, Number: number, Section: section}, nil
}

// ParseCourseCode parses the textual form, e.g. "CS101-A" or "cs101-a".
func ParseCourseCode(raw string) (CourseCode, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	base, section, found := strings.Cut(raw, "-")
	if !found || section == "" {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid course code %q: expected DEPTNNN-SECTION", raw))
	}
	split := -1
	for i, r := range base {
		if unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split <= 0 {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid course code %q: missing department or number", raw))
	}
	number, err := strconv.Atoi(base[split:])
	if err != nil {
		return CourseCode{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid course number in %q", raw))
	}
	return NewCourseCode(base[:split], number, section)
}

// WithSection derives a new code for a different section.
func (c CourseCode) WithSection(section string) (CourseCode, error) {
	return NewCourseCode(c.Department, c.Number, section)
}

// String renders the full textual form, e.g. "CS101-A".
func (c CourseCode) String() string {
	return fmt.Sprintf("%s%d-%s", c.Department, c.Number, c.Section)
}
