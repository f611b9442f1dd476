package models

import (
	"fmt"
	"strings"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// Semester categorises when a course runs.
type Semester string

// Known semesters.
const (
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
	SemesterFall   Semester = "FALL"
	SemesterWinter Semester = "WINTER"
)

type semesterInfo struct {
	displayName string
	code        int
	duration    string
}

var semesterTable = map[Semester]semesterInfo{
	SemesterSpring: {"Spring", 1, "January - May"},
	SemesterSummer: {"Summer", 2, "June - August"},
	SemesterFall:   {"Fall", 3, "September - December"},
	SemesterWinter: {"Winter", 4, "December - January"},
}

// ParseSemester resolves a semester from its name (case-insensitive).
func ParseSemester(raw string) (Semester, error) {
	s := Semester(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := semesterTable[s]; !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid semester %q", raw))
	}
	return s, nil
}

// SemesterByCode resolves a semester from its numeric code.
func SemesterByCode(code int) (Semester, error) {
	for s, info := range semesterTable {
		if info.code == code {
			return s, nil
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid semester code %d", code))
}

// Valid reports whether the semester is known.
func (s Semester) Valid() bool {
	_, ok := semesterTable[s]
	return ok
}

// DisplayName returns the human-readable name.
func (s Semester) DisplayName() string {
	return semesterTable[s].displayName
}

// Code returns the numeric semester code.
func (s Semester) Code() int {
	return semesterTable[s].code
}

// Duration returns the duration description.
func (s Semester) Duration() string {
	return semesterTable[s].duration
}

func (s Semester) String() string {
	return fmt.Sprintf("%s (%s)", s.DisplayName(), s.Duration())
}
