package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// EnrollmentStatus tracks the lifecycle of a registrar enrollment record.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
	EnrollmentStatusFailed    EnrollmentStatus = "FAILED"
)

// unsetMarks marks an enrollment that has no marks recorded yet.
const unsetMarks = -1

// Enrollment is the registrar-side record linking a student and a course
// for one semester. Marks and the derived grade live here; the student's
// grade map mirrors the grade once recorded.
type Enrollment struct {
	ID             string
	StudentID      string
	CourseCode     string
	Semester       Semester
	Status         EnrollmentStatus
	Marks          float64
	Grade          LetterGrade
	EnrollmentDate time.Time
	CompletionDate time.Time
	Active         bool
}

// NewEnrollment creates an active ENROLLED record with a fresh uuid.
func NewEnrollment(studentID, courseCode string, semester Semester) (*Enrollment, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	code := normalizeCode(courseCode)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}
	if !semester.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester is required")
	}
	return &Enrollment{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		CourseCode:     code,
		Semester:       semester,
		Status:         EnrollmentStatusEnrolled,
		Marks:          unsetMarks,
		EnrollmentDate: time.Now(),
		Active:         true,
	}, nil
}

// RecordMarks stores marks in [0,100], derives the letter grade and moves
// the record to COMPLETED or FAILED. Re-recording on a completed or failed
// record is allowed and replaces the earlier result; a withdrawn record
// rejects marks.
func (e *Enrollment) RecordMarks(marks float64) error {
	if e.Status == EnrollmentStatusWithdrawn {
		return appErrors.Clone(appErrors.ErrConflict, "cannot record marks on a withdrawn enrollment")
	}
	if marks < 0 || marks > 100 {
		return appErrors.Clone(appErrors.ErrValidation, "marks must be between 0 and 100")
	}
	e.Marks = marks
	e.Grade = GradeFromMarks(marks)
	if e.Grade.Passing() {
		e.Status = EnrollmentStatusCompleted
	} else {
		e.Status = EnrollmentStatusFailed
	}
	e.CompletionDate = time.Now()
	return nil
}

// Withdraw moves an ENROLLED record to WITHDRAWN and deactivates it.
func (e *Enrollment) Withdraw() error {
	if e.Status != EnrollmentStatusEnrolled {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("cannot withdraw an enrollment in status %s", string(e.Status)))
	}
	e.Status = EnrollmentStatusWithdrawn
	e.Active = false
	e.CompletionDate = time.Now()
	return nil
}

// HasMarks reports whether marks have been recorded.
func (e *Enrollment) HasMarks() bool {
	return e.Marks >= 0
}

// IsCompleted reports whether the record reached COMPLETED.
func (e *Enrollment) IsCompleted() bool {
	return e.Status == EnrollmentStatusCompleted
}

// Passed reports a completed record with a passing grade.
func (e *Enrollment) Passed() bool {
	return e.IsCompleted() && e.Grade.Passing()
}

// DurationDays returns days between enrollment and completion, or days
// since enrollment while still open.
func (e *Enrollment) DurationDays() int {
	end := e.CompletionDate
	if end.IsZero() {
		end = time.Now()
	}
	return int(end.Sub(e.EnrollmentDate).Hours() / 24)
}

// GradePoints returns the credit-weighted grade points for this record.
func (e *Enrollment) GradePoints(credits int) float64 {
	if !e.HasMarks() {
		return 0.0
	}
	return e.Grade.GradePoints(credits)
}

// Report renders the formatted enrollment record text.
func (e *Enrollment) Report() string {
	var b strings.Builder
	line := strings.Repeat("=", 50) + "\n"

	b.WriteString(line)
	b.WriteString("ENROLLMENT RECORD\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Enrollment ID: %s\n", e.ID)
	fmt.Fprintf(&b, "Student ID: %s\n", e.StudentID)
	fmt.Fprintf(&b, "Course: %s\n", e.CourseCode)
	fmt.Fprintf(&b, "Semester: %s\n", e.Semester.DisplayName())
	fmt.Fprintf(&b, "Status: %s\n", string(e.Status))
	fmt.Fprintf(&b, "Enrolled: %s\n", e.EnrollmentDate.Format("02-01-2006"))
	if e.HasMarks() {
		fmt.Fprintf(&b, "Marks: %.1f\n", e.Marks)
		fmt.Fprintf(&b, "Grade: %s\n", e.Grade)
	} else {
		b.WriteString("Marks: not recorded\n")
	}
	if !e.CompletionDate.IsZero() {
		fmt.Fprintf(&b, "Closed: %s\n", e.CompletionDate.Format("02-01-2006"))
	}
	b.WriteString(line)
	return b.String()
}

// MarshalJSON exposes the read-only view of the enrollment.
func (e *Enrollment) MarshalJSON() ([]byte, error) {
	view := struct {
		ID             string           `json:"id"`
		StudentID      string           `json:"student_id"`
		CourseCode     string           `json:"course_code"`
		Semester       Semester         `json:"semester"`
		Status         EnrollmentStatus `json:"status"`
		Marks          *float64         `json:"marks,omitempty"`
		Grade          string           `json:"grade,omitempty"`
		EnrollmentDate time.Time        `json:"enrollment_date"`
		CompletionDate *time.Time       `json:"completion_date,omitempty"`
		Active         bool             `json:"active"`
	}{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseCode:     e.CourseCode,
		Semester:       e.Semester,
		Status:         e.Status,
		EnrollmentDate: e.EnrollmentDate,
		Active:         e.Active,
	}
	if e.HasMarks() {
		marks := e.Marks
		view.Marks = &marks
		view.Grade = string(e.Grade)
	}
	if !e.CompletionDate.IsZero() {
		completion := e.CompletionDate
		view.CompletionDate = &completion
	}
	return json.Marshal(view)
}
