package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// CreditWeight is the flat per-course credit weight used in GPA math and
// the enrollment credit-limit check. The real per-course credit values on
// Course are deliberately not consulted for GPA.
const CreditWeight = 3

// Student is a learner registered in the institution. Course membership and
// grades are owned by the student; all mutation goes through methods so the
// enrolled-set/grade-map invariants hold.
type Student struct {
	Person
	RegistrationNumber string
	Department         string
	CurrentSemester    int

	enrolledCourses []string
	enrolledSet     map[string]struct{}
	grades          map[string]LetterGrade
	auditTrail      []string

	CreatedAt    time.Time
	LastModified time.Time
}

// NewStudent constructs a validated student with an initial audit entry.
func NewStudent(id, registrationNumber string, name Name, email string, dateOfBirth time.Time, department string) (*Student, error) {
	person, err := newPerson(id, name, email, dateOfBirth)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(registrationNumber) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "registration number is required")
	}
	if strings.TrimSpace(department) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}

	now := time.Now()
	s := &Student{
		Person:             person,
		RegistrationNumber: registrationNumber,
		Department:         department,
		CurrentSemester:    1,
		enrolledSet:        make(map[string]struct{}),
		grades:             make(map[string]LetterGrade),
		CreatedAt:          now,
		LastModified:       now,
	}
	s.AddAuditEntry("Student created: " + name.Full())
	return s, nil
}

// SetDepartment replaces the department; it must stay non-empty.
func (s *Student) SetDepartment(department string) error {
	if strings.TrimSpace(department) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "department cannot be empty")
	}
	s.Department = department
	s.touch()
	return nil
}

// SetCurrentSemester moves the student to the given semester (1..8).
func (s *Student) SetCurrentSemester(semester int) error {
	if semester < 1 || semester > 8 {
		return appErrors.Clone(appErrors.ErrValidation, "semester must be between 1 and 8")
	}
	s.CurrentSemester = semester
	s.touch()
	return nil
}

// touch stamps LastModified with the current time.
func (s *Student) touch() {
	s.LastModified = time.Now()
}

// EnrolledCourses returns the enrolled course codes in insertion order.
func (s *Student) EnrolledCourses() []string {
	out := make([]string, len(s.enrolledCourses))
	copy(out, s.enrolledCourses)
	return out
}

// Grades returns a copy of the course code to grade mapping.
func (s *Student) Grades() map[string]LetterGrade {
	out := make(map[string]LetterGrade, len(s.grades))
	for code, grade := range s.grades {
		out[code] = grade
	}
	return out
}

// IsEnrolledIn reports whether the student holds the given course.
func (s *Student) IsEnrolledIn(courseCode string) bool {
	_, ok := s.enrolledSet[normalizeCode(courseCode)]
	return ok
}

// EnrollInCourse adds the course to the enrolled set. Returns false if the
// student already holds it.
func (s *Student) EnrollInCourse(courseCode string) bool {
	code := normalizeCode(courseCode)
	if code == "" {
		return false
	}
	if _, ok := s.enrolledSet[code]; ok {
		return false
	}
	s.enrolledSet[code] = struct{}{}
	s.enrolledCourses = append(s.enrolledCourses, code)
	s.AddAuditEntry("Enrolled in course: " + code)
	return true
}

// UnenrollFromCourse removes the course and any recorded grade for it.
func (s *Student) UnenrollFromCourse(courseCode string) bool {
	code := normalizeCode(courseCode)
	if _, ok := s.enrolledSet[code]; !ok {
		return false
	}
	delete(s.enrolledSet, code)
	delete(s.grades, code)
	for i, c := range s.enrolledCourses {
		if c == code {
			s.enrolledCourses = append(s.enrolledCourses[:i], s.enrolledCourses[i+1:]...)
			break
		}
	}
	s.AddAuditEntry("Unenrolled from course: " + code)
	return true
}

// RecordGrade stores a grade for a course the student is enrolled in.
func (s *Student) RecordGrade(courseCode string, grade LetterGrade) error {
	code := normalizeCode(courseCode)
	if !grade.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid grade %q", string(grade)))
	}
	if _, ok := s.enrolledSet[code]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, "student is not enrolled in course: "+code)
	}
	s.grades[code] = grade
	s.AddAuditEntry(fmt.Sprintf("Grade recorded for %s: %s", code, string(grade)))
	return nil
}

// GPA computes the grade point average over graded courses using the flat
// credit weight. Returns 0.0 when no grades are recorded.
func (s *Student) GPA() float64 {
	if len(s.grades) == 0 {
		return 0.0
	}
	var totalPoints float64
	for _, grade := range s.grades {
		totalPoints += grade.GradePoint() * CreditWeight
	}
	totalCredits := float64(len(s.grades) * CreditWeight)
	return totalPoints / totalCredits
}

// CompletedCourses returns the graded course codes.
func (s *Student) CompletedCourses() []string {
	out := make([]string, 0, len(s.grades))
	for _, code := range s.enrolledCourses {
		if _, ok := s.grades[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// PendingCourses returns enrolled courses without a grade yet.
func (s *Student) PendingCourses() []string {
	out := make([]string, 0, len(s.enrolledCourses)-len(s.grades))
	for _, code := range s.enrolledCourses {
		if _, ok := s.grades[code]; !ok {
			out = append(out, code)
		}
	}
	return out
}

// InGoodStanding reports whether every recorded grade is passing. A student
// with no grades is vacuously in good standing.
func (s *Student) InGoodStanding() bool {
	for _, grade := range s.grades {
		if !grade.Passing() {
			return false
		}
	}
	return true
}

// PersonType implements PersonInfo.
func (s *Student) PersonType() string {
	return "STUDENT"
}

// DisplayInfo implements PersonInfo.
func (s *Student) DisplayInfo() string {
	return fmt.Sprintf("Reg No: %s | Dept: %s | Sem: %d | GPA: %.2f | Courses: %d",
		s.RegistrationNumber, s.Department, s.CurrentSemester, s.GPA(), len(s.enrolledCourses))
}

// Summary returns the one-line person summary.
func (s *Student) Summary() string {
	return s.SummaryAs(s.PersonType())
}

// AddAuditEntry appends a timestamped entry to the audit trail.
func (s *Student) AddAuditEntry(entry string) {
	if strings.TrimSpace(entry) == "" {
		return
	}
	now := time.Now()
	s.auditTrail = append(s.auditTrail, fmt.Sprintf("[%s] %s", now.Format("2006-01-02 15:04:05"), entry))
	s.LastModified = now
}

// AuditTrail returns a copy of the audit entries in order.
func (s *Student) AuditTrail() []string {
	out := make([]string, len(s.auditTrail))
	copy(out, s.auditTrail)
	return out
}

// Valid reports whether the student satisfies the persistence contract.
func (s *Student) Valid() bool {
	return strings.TrimSpace(s.ID) != "" &&
		strings.TrimSpace(s.RegistrationNumber) != "" &&
		strings.Contains(s.Email, "@") &&
		strings.TrimSpace(s.Department) != ""
}

// Transcript renders the formatted transcript text.
func (s *Student) Transcript() string {
	var b strings.Builder
	line := strings.Repeat("=", 60) + "\n"
	thin := strings.Repeat("-", 60) + "\n"

	b.WriteString(line)
	b.WriteString("STUDENT TRANSCRIPT\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Student ID: %s\n", s.ID)
	fmt.Fprintf(&b, "Registration No: %s\n", s.RegistrationNumber)
	fmt.Fprintf(&b, "Name: %s\n", s.Name.Full())
	fmt.Fprintf(&b, "Department: %s\n", s.Department)
	fmt.Fprintf(&b, "Current Semester: %d\n", s.CurrentSemester)
	fmt.Fprintf(&b, "Registration Date: %s\n", s.RegisteredAt.Format("02-01-2006"))
	b.WriteString(thin)
	b.WriteString("COURSE GRADES:\n")
	b.WriteString(thin)

	if len(s.grades) == 0 {
		b.WriteString("No grades recorded yet.\n")
	} else {
		codes := make([]string, 0, len(s.grades))
		for code := range s.grades {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "%-15s | %s\n", code, s.grades[code])
		}
	}

	b.WriteString(thin)
	fmt.Fprintf(&b, "Current GPA: %.2f\n", s.GPA())
	standing := "Good Standing"
	if !s.InGoodStanding() {
		standing = "Academic Warning"
	}
	fmt.Fprintf(&b, "Academic Standing: %s\n", standing)
	b.WriteString(line)
	return b.String()
}

// MarshalJSON exposes the read-only view of the student.
func (s *Student) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                 string                 `json:"id"`
		RegistrationNumber string                 `json:"registration_number"`
		Name               Name                   `json:"name"`
		Email              string                 `json:"email"`
		Department         string                 `json:"department"`
		CurrentSemester    int                    `json:"current_semester"`
		EnrolledCourses    []string               `json:"enrolled_courses"`
		Grades             map[string]LetterGrade `json:"grades"`
		GPA                float64                `json:"gpa"`
		GoodStanding       bool                   `json:"good_standing"`
		Active             bool                   `json:"active"`
		RegisteredAt       time.Time              `json:"registered_at"`
	}{
		ID:                 s.ID,
		RegistrationNumber: s.RegistrationNumber,
		Name:               s.Name,
		Email:              s.Email,
		Department:         s.Department,
		CurrentSemester:    s.CurrentSemester,
		EnrolledCourses:    s.EnrolledCourses(),
		Grades:             s.Grades(),
		GPA:                s.GPA(),
		GoodStanding:       s.InGoodStanding(),
		Active:             s.Active,
		RegisteredAt:       s.RegisteredAt,
	})
}

func normalizeCode(courseCode string) string {
	return strings.ToUpper(strings.TrimSpace(courseCode))
}
