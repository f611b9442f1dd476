package models

import (
	"encoding/json"
	"strings"
	"time"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// Enrollment percentage thresholds for course status classification.
const (
	popularThreshold       = 80.0
	underenrolledThreshold = 30.0
)

// Course is an academic course. Its identity is the CourseCode, fixed at
// construction; the roster is bounded by MaxCapacity.
type Course struct {
	Code         CourseCode
	Title        string
	Credits      int
	InstructorID string
	Semester     Semester
	Department   string
	Description  string
	MaxCapacity  int
	Active       bool
	CreatedAt    time.Time

	prerequisites []string
	prereqSet     map[string]struct{}
	roster        []string
	rosterSet     map[string]struct{}
}

// SetTitle replaces the title; it must stay non-empty.
func (c *Course) SetTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "title cannot be empty")
	}
	c.Title = title
	return nil
}

// SetCredits replaces the credit value (1..6).
func (c *Course) SetCredits(credits int) error {
	if credits < 1 || credits > 6 {
		return appErrors.Clone(appErrors.ErrValidation, "credits must be between 1 and 6")
	}
	c.Credits = credits
	return nil
}

// SetMaxCapacity replaces the roster bound; it must stay positive.
func (c *Course) SetMaxCapacity(capacity int) error {
	if capacity <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "max capacity must be positive")
	}
	c.MaxCapacity = capacity
	return nil
}

// Prerequisites returns the prerequisite course codes in insertion order.
func (c *Course) Prerequisites() []string {
	out := make([]string, len(c.prerequisites))
	copy(out, c.prerequisites)
	return out
}

// AddPrerequisite records a prerequisite course code; false on duplicates.
func (c *Course) AddPrerequisite(courseCode string) bool {
	code := normalizeCode(courseCode)
	if code == "" {
		return false
	}
	if _, ok := c.prereqSet[code]; ok {
		return false
	}
	c.prereqSet[code] = struct{}{}
	c.prerequisites = append(c.prerequisites, code)
	return true
}

// RemovePrerequisite drops a prerequisite.
func (c *Course) RemovePrerequisite(courseCode string) bool {
	code := normalizeCode(courseCode)
	if _, ok := c.prereqSet[code]; !ok {
		return false
	}
	delete(c.prereqSet, code)
	for i, p := range c.prerequisites {
		if p == code {
			c.prerequisites = append(c.prerequisites[:i], c.prerequisites[i+1:]...)
			break
		}
	}
	return true
}

// HasPrerequisites reports whether any prerequisites are recorded.
func (c *Course) HasPrerequisites() bool {
	return len(c.prerequisites) > 0
}

// Roster returns enrolled student ids in insertion order.
func (c *Course) Roster() []string {
	out := make([]string, len(c.roster))
	copy(out, c.roster)
	return out
}

// EnrollStudent adds a student to the roster. At capacity it fails with
// CapacityError and leaves the roster unmodified; enrolling an already
// present student returns false without error.
func (c *Course) EnrollStudent(studentID string) (bool, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return false, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if _, ok := c.rosterSet[studentID]; ok {
		return false, nil
	}
	if len(c.roster) >= c.MaxCapacity {
		return false, &appErrors.CapacityError{CourseCode: c.Code.String(), Capacity: c.MaxCapacity}
	}
	c.rosterSet[studentID] = struct{}{}
	c.roster = append(c.roster, studentID)
	return true, nil
}

// UnenrollStudent removes a student from the roster.
func (c *Course) UnenrollStudent(studentID string) bool {
	if _, ok := c.rosterSet[studentID]; !ok {
		return false
	}
	delete(c.rosterSet, studentID)
	for i, id := range c.roster {
		if id == studentID {
			c.roster = append(c.roster[:i], c.roster[i+1:]...)
			break
		}
	}
	return true
}

// IsStudentEnrolled reports roster membership.
func (c *Course) IsStudentEnrolled(studentID string) bool {
	_, ok := c.rosterSet[studentID]
	return ok
}

// CurrentEnrollment returns the roster size.
func (c *Course) CurrentEnrollment() int {
	return len(c.roster)
}

// Full reports whether the roster is at capacity.
func (c *Course) Full() bool {
	return c.CurrentEnrollment() >= c.MaxCapacity
}

// AvailableSpots returns remaining roster capacity, never negative.
func (c *Course) AvailableSpots() int {
	if spots := c.MaxCapacity - c.CurrentEnrollment(); spots > 0 {
		return spots
	}
	return 0
}

// EnrollmentPercentage returns roster fill as a percentage of capacity.
// A zero capacity yields 0 rather than dividing by zero.
func (c *Course) EnrollmentPercentage() float64 {
	if c.MaxCapacity == 0 {
		return 0.0
	}
	return float64(c.CurrentEnrollment()) / float64(c.MaxCapacity) * 100.0
}

// Popular reports enrollment above 80% of capacity.
func (c *Course) Popular() bool {
	return c.EnrollmentPercentage() > popularThreshold
}

// Underenrolled reports enrollment below 30% of capacity.
func (c *Course) Underenrolled() bool {
	return c.EnrollmentPercentage() < underenrolledThreshold
}

// StatusSummary buckets the course by enrollment percentage.
func (c *Course) StatusSummary() string {
	percentage := c.EnrollmentPercentage()
	switch {
	case percentage >= 90:
		return "FULL/WAITLIST"
	case percentage >= 80:
		return "HIGH_DEMAND"
	case percentage >= 50:
		return "MODERATE_ENROLLMENT"
	case percentage >= 30:
		return "LOW_ENROLLMENT"
	default:
		return "UNDERENROLLED"
	}
}

// MarshalJSON exposes the read-only view of the course.
func (c *Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code                 string   `json:"code"`
		Title                string   `json:"title"`
		Credits              int      `json:"credits"`
		InstructorID         string   `json:"instructor_id,omitempty"`
		Semester             Semester `json:"semester"`
		Department           string   `json:"department"`
		Description          string   `json:"description,omitempty"`
		MaxCapacity          int      `json:"max_capacity"`
		CurrentEnrollment    int      `json:"current_enrollment"`
		AvailableSpots       int      `json:"available_spots"`
		EnrollmentPercentage float64  `json:"enrollment_percentage"`
		Status               string   `json:"status"`
		Prerequisites        []string `json:"prerequisites"`
		Active               bool     `json:"active"`
	}{
		Code:                 c.Code.String(),
		Title:                c.Title,
		Credits:              c.Credits,
		InstructorID:         c.InstructorID,
		Semester:             c.Semester,
		Department:           c.Department,
		Description:          c.Description,
		MaxCapacity:          c.MaxCapacity,
		CurrentEnrollment:    c.CurrentEnrollment(),
		AvailableSpots:       c.AvailableSpots(),
		EnrollmentPercentage: c.EnrollmentPercentage(),
		Status:               c.StatusSummary(),
		Prerequisites:        c.Prerequisites(),
		Active:               c.Active,
	})
}

// CourseBuilder stages course construction; validation runs once at Build.
type CourseBuilder struct {
	code          CourseCode
	title         string
	credits       int
	instructorID  string
	semester      Semester
	department    string
	description   string
	maxCapacity   int
	prerequisites []string
}

// NewCourseBuilder starts a builder with the required identity fields.
func NewCourseBuilder(code CourseCode, title string) *CourseBuilder {
	return &CourseBuilder{code: code, title: title, maxCapacity: 30}
}

func (b *CourseBuilder) Credits(credits int) *CourseBuilder {
	b.credits = credits
	return b
}

func (b *CourseBuilder) Instructor(instructorID string) *CourseBuilder {
	b.instructorID = instructorID
	return b
}

func (b *CourseBuilder) Semester(semester Semester) *CourseBuilder {
	b.semester = semester
	return b
}

func (b *CourseBuilder) Department(department string) *CourseBuilder {
	b.department = department
	return b
}

func (b *CourseBuilder) Description(description string) *CourseBuilder {
	b.description = description
	return b
}

func (b *CourseBuilder) MaxCapacity(capacity int) *CourseBuilder {
	b.maxCapacity = capacity
	return b
}

func (b *CourseBuilder) Prerequisite(courseCode string) *CourseBuilder {
	if code := normalizeCode(courseCode); code != "" {
		b.prerequisites = append(b.prerequisites, code)
	}
	return b
}

// Build validates the staged fields and returns the course.
func (b *CourseBuilder) Build() (*Course, error) {
	if strings.TrimSpace(b.title) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if b.credits < 1 || b.credits > 6 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "credits must be between 1 and 6")
	}
	if !b.semester.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester is required")
	}
	if strings.TrimSpace(b.department) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	if b.maxCapacity <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "max capacity must be positive")
	}

	course := &Course{
		Code:         b.code,
		Title:        b.title,
		Credits:      b.credits,
		InstructorID: b.instructorID,
		Semester:     b.semester,
		Department:   b.department,
		Description:  b.description,
		MaxCapacity:  b.maxCapacity,
		Active:       true,
		CreatedAt:    time.Now(),
		prereqSet:    make(map[string]struct{}),
		rosterSet:    make(map[string]struct{}),
	}
	for _, prereq := range b.prerequisites {
		course.AddPrerequisite(prereq)
	}
	return course, nil
}
