package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// maxComfortableLoad is the teaching load above which an instructor counts
// as overloaded.
const maxComfortableLoad = 4

// Instructor is a teaching staff member.
type Instructor struct {
	Person
	EmployeeID      string
	Department      string
	Designation     string
	Salary          float64
	JoiningDate     time.Time
	ExperienceYears int

	assignedCourses []string
	assignedSet     map[string]struct{}
	qualifications  []string
}

// NewInstructor constructs a validated instructor.
func NewInstructor(id, employeeID string, name Name, email string, dateOfBirth time.Time, department, designation string) (*Instructor, error) {
	person, err := newPerson(id, name, email, dateOfBirth)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(employeeID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "employee id is required")
	}
	if strings.TrimSpace(department) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department is required")
	}
	if strings.TrimSpace(designation) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "designation is required")
	}
	return &Instructor{
		Person:      person,
		EmployeeID:  employeeID,
		Department:  department,
		Designation: designation,
		JoiningDate: time.Now(),
		assignedSet: make(map[string]struct{}),
	}, nil
}

// SetSalary updates the salary; it cannot be negative.
func (i *Instructor) SetSalary(salary float64) error {
	if salary < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "salary cannot be negative")
	}
	i.Salary = salary
	return nil
}

// SetExperienceYears updates experience; it cannot be negative.
func (i *Instructor) SetExperienceYears(years int) error {
	if years < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "experience cannot be negative")
	}
	i.ExperienceYears = years
	return nil
}

// SetJoiningDate updates the joining date; it cannot be in the future.
func (i *Instructor) SetJoiningDate(date time.Time) error {
	if date.After(time.Now()) {
		return appErrors.Clone(appErrors.ErrValidation, "joining date cannot be in the future")
	}
	i.JoiningDate = date
	return nil
}

// AssignedCourses returns assigned course codes in insertion order.
func (i *Instructor) AssignedCourses() []string {
	out := make([]string, len(i.assignedCourses))
	copy(out, i.assignedCourses)
	return out
}

// Qualifications returns the qualification list in insertion order.
func (i *Instructor) Qualifications() []string {
	out := make([]string, len(i.qualifications))
	copy(out, i.qualifications)
	return out
}

// AssignCourse adds a course to the teaching set; false on duplicates.
func (i *Instructor) AssignCourse(courseCode string) bool {
	code := normalizeCode(courseCode)
	if code == "" {
		return false
	}
	if _, ok := i.assignedSet[code]; ok {
		return false
	}
	i.assignedSet[code] = struct{}{}
	i.assignedCourses = append(i.assignedCourses, code)
	return true
}

// UnassignCourse removes a course from the teaching set.
func (i *Instructor) UnassignCourse(courseCode string) bool {
	code := normalizeCode(courseCode)
	if _, ok := i.assignedSet[code]; !ok {
		return false
	}
	delete(i.assignedSet, code)
	for idx, c := range i.assignedCourses {
		if c == code {
			i.assignedCourses = append(i.assignedCourses[:idx], i.assignedCourses[idx+1:]...)
			break
		}
	}
	return true
}

// IsTeaching reports whether the instructor teaches the given course.
func (i *Instructor) IsTeaching(courseCode string) bool {
	_, ok := i.assignedSet[normalizeCode(courseCode)]
	return ok
}

// AddQualification records an academic qualification; false on duplicates.
func (i *Instructor) AddQualification(qualification string) bool {
	qualification = strings.TrimSpace(qualification)
	if qualification == "" {
		return false
	}
	for _, q := range i.qualifications {
		if q == qualification {
			return false
		}
	}
	i.qualifications = append(i.qualifications, qualification)
	return true
}

// TeachingLoad returns the number of assigned courses.
func (i *Instructor) TeachingLoad() int {
	return len(i.assignedCourses)
}

// Overloaded reports whether the teaching load exceeds the comfortable max.
func (i *Instructor) Overloaded() bool {
	return i.TeachingLoad() > maxComfortableLoad
}

// YearsOfService returns whole years since joining.
func (i *Instructor) YearsOfService() int {
	return time.Now().Year() - i.JoiningDate.Year()
}

// Senior reports whether experience or service exceeds five years.
func (i *Instructor) Senior() bool {
	return i.ExperienceYears > 5 || i.YearsOfService() > 5
}

// PersonType implements PersonInfo.
func (i *Instructor) PersonType() string {
	return "INSTRUCTOR"
}

// DisplayInfo implements PersonInfo.
func (i *Instructor) DisplayInfo() string {
	return fmt.Sprintf("Emp ID: %s | Dept: %s | %s | Courses: %d | Exp: %d years",
		i.EmployeeID, i.Department, i.Designation, i.TeachingLoad(), i.ExperienceYears)
}

// Summary returns the one-line person summary.
func (i *Instructor) Summary() string {
	return i.SummaryAs(i.PersonType())
}

// Profile renders the formatted instructor profile text.
func (i *Instructor) Profile() string {
	var b strings.Builder
	line := strings.Repeat("=", 60) + "\n"
	thin := strings.Repeat("-", 60) + "\n"

	b.WriteString(line)
	b.WriteString("INSTRUCTOR PROFILE\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Employee ID: %s\n", i.EmployeeID)
	fmt.Fprintf(&b, "Name: %s\n", i.Name.Full())
	fmt.Fprintf(&b, "Email: %s\n", i.Email)
	fmt.Fprintf(&b, "Department: %s\n", i.Department)
	fmt.Fprintf(&b, "Designation: %s\n", i.Designation)
	fmt.Fprintf(&b, "Experience: %d years\n", i.ExperienceYears)
	fmt.Fprintf(&b, "Service: %d years\n", i.YearsOfService())
	b.WriteString(thin)

	b.WriteString("QUALIFICATIONS:\n")
	if len(i.qualifications) == 0 {
		b.WriteString("No qualifications recorded.\n")
	} else {
		for _, q := range i.qualifications {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	b.WriteString(thin)
	b.WriteString("ASSIGNED COURSES:\n")
	if len(i.assignedCourses) == 0 {
		b.WriteString("No courses assigned.\n")
	} else {
		for _, c := range i.assignedCourses {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	b.WriteString(thin)
	fmt.Fprintf(&b, "Teaching Load: %d courses", i.TeachingLoad())
	if i.Overloaded() {
		b.WriteString(" (OVERLOADED)")
	}
	b.WriteString("\n")
	status := "Junior Instructor"
	if i.Senior() {
		status = "Senior Instructor"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	b.WriteString(line)
	return b.String()
}

// MarshalJSON exposes the read-only view of the instructor.
func (i *Instructor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              string    `json:"id"`
		EmployeeID      string    `json:"employee_id"`
		Name            Name      `json:"name"`
		Email           string    `json:"email"`
		Department      string    `json:"department"`
		Designation     string    `json:"designation"`
		Salary          float64   `json:"salary"`
		ExperienceYears int       `json:"experience_years"`
		AssignedCourses []string  `json:"assigned_courses"`
		Qualifications  []string  `json:"qualifications"`
		TeachingLoad    int       `json:"teaching_load"`
		Overloaded      bool      `json:"overloaded"`
		Senior          bool      `json:"senior"`
		Active          bool      `json:"active"`
		JoiningDate     time.Time `json:"joining_date"`
	}{
		ID:              i.ID,
		EmployeeID:      i.EmployeeID,
		Name:            i.Name,
		Email:           i.Email,
		Department:      i.Department,
		Designation:     i.Designation,
		Salary:          i.Salary,
		ExperienceYears: i.ExperienceYears,
		AssignedCourses: i.AssignedCourses(),
		Qualifications:  i.Qualifications(),
		TeachingLoad:    i.TeachingLoad(),
		Overloaded:      i.Overloaded(),
		Senior:          i.Senior(),
		Active:          i.Active,
		JoiningDate:     i.JoiningDate,
	})
}
