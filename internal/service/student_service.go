package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/models"
	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/pkg/config"
	appErrors "github.com/noah-isme/campus-records-api/pkg/errors"
)

// StudentService handles the student roster: registration, profile updates,
// student-side enrollment bookkeeping, grades and reporting queries.
type StudentService struct {
	students  *repository.StudentStore
	courses   *repository.CourseStore
	registrar config.RegistrarConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(students *repository.StudentStore, courses *repository.CourseStore, registrar config.RegistrarConfig, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		students:  students,
		courses:   courses,
		registrar: registrar,
		validator: validate,
		logger:    logger,
	}
}

// CreateStudentRequest describes the registration payload.
type CreateStudentRequest struct {
	ID                 string      `json:"id" validate:"required"`
	RegistrationNumber string      `json:"registration_number" validate:"required"`
	Name               models.Name `json:"name"`
	Email              string      `json:"email" validate:"required,email"`
	DateOfBirth        time.Time   `json:"date_of_birth" validate:"required"`
	Department         string      `json:"department" validate:"required"`
}

// UpdateStudentRequest describes the mutable profile fields.
type UpdateStudentRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Semester   *int    `json:"semester" validate:"omitempty,min=1,max=8"`
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	name, err := models.NewName(req.Name.First, req.Name.Middle, req.Name.Last)
	if err != nil {
		return nil, err
	}
	student, err := models.NewStudent(req.ID, req.RegistrationNumber, name, req.Email, req.DateOfBirth, req.Department)
	if err != nil {
		return nil, err
	}
	if err := s.students.Insert(student); err != nil {
		return nil, err
	}
	s.logger.Info("student registered",
		zap.String("student_id", student.ID),
		zap.String("registration_number", student.RegistrationNumber))
	return student, nil
}

// Update applies the provided profile changes.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	student, err := s.students.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		if err := student.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Department != nil {
		if err := student.SetDepartment(*req.Department); err != nil {
			return nil, err
		}
	}
	if req.Semester != nil {
		if err := student.SetCurrentSemester(*req.Semester); err != nil {
			return nil, err
		}
	}
	student.AddAuditEntry("Profile updated")
	return student, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.students.Get(id)
}

// List returns all students in registration order.
func (s *StudentService) List(ctx context.Context) []*models.Student {
	return s.students.List()
}

// Activate marks a student active; false when already active.
func (s *StudentService) Activate(ctx context.Context, id string) (bool, error) {
	student, err := s.students.Get(id)
	if err != nil {
		return false, err
	}
	if student.Active {
		return false, nil
	}
	student.Activate()
	student.AddAuditEntry("Student activated")
	return true, nil
}

// Deactivate marks a student inactive; false when already inactive.
func (s *StudentService) Deactivate(ctx context.Context, id string) (bool, error) {
	student, err := s.students.Get(id)
	if err != nil {
		return false, err
	}
	if !student.Active {
		return false, nil
	}
	student.Deactivate()
	student.AddAuditEntry("Student deactivated")
	return true, nil
}

// creditLimit is the total credits a student may carry, derived from the
// configured course cap at the flat per-course weight.
func (s *StudentService) creditLimit() int {
	return s.registrar.MaxCoursesPerStudent * models.CreditWeight
}

// Enroll adds a course to the student's set after checking the credit
// limit. Only the student side is touched; RegistrarService owns the
// two-sided operation.
func (s *StudentService) Enroll(ctx context.Context, studentID, courseCode string) error {
	student, err := s.students.Get(studentID)
	if err != nil {
		return err
	}
	course, err := s.courses.Get(courseCode)
	if err != nil {
		return err
	}
	code := course.Code.String()
	if student.IsEnrolledIn(code) {
		return &appErrors.DuplicateEnrollmentError{StudentID: studentID, CourseCode: code}
	}

	current := len(student.EnrolledCourses()) * models.CreditWeight
	limit := s.creditLimit()
	if current+course.Credits > limit {
		return &appErrors.CreditLimitError{
			StudentID: studentID,
			Current:   current,
			Max:       limit,
			Attempted: course.Credits,
		}
	}
	student.EnrollInCourse(code)
	s.logger.Info("student enrolled",
		zap.String("student_id", studentID),
		zap.String("course_code", code))
	return nil
}

// Unenroll removes a course from the student's set.
func (s *StudentService) Unenroll(ctx context.Context, studentID, courseCode string) error {
	student, err := s.students.Get(studentID)
	if err != nil {
		return err
	}
	if !student.UnenrollFromCourse(courseCode) {
		return appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("student %s is not enrolled in %s", studentID, strings.ToUpper(strings.TrimSpace(courseCode))))
	}
	return nil
}

// RecordGrade stores a grade for a course the student holds.
func (s *StudentService) RecordGrade(ctx context.Context, studentID, courseCode string, grade models.LetterGrade) error {
	student, err := s.students.Get(studentID)
	if err != nil {
		return err
	}
	if err := student.RecordGrade(courseCode, grade); err != nil {
		return err
	}
	s.logger.Info("grade recorded",
		zap.String("student_id", studentID),
		zap.String("course_code", courseCode),
		zap.String("grade", string(grade)))
	return nil
}

// Transcript renders the formatted transcript for a student.
func (s *StudentService) Transcript(ctx context.Context, studentID string) (string, error) {
	student, err := s.students.Get(studentID)
	if err != nil {
		return "", err
	}
	return student.Transcript(), nil
}

// ByDepartment returns students in the given department.
func (s *StudentService) ByDepartment(ctx context.Context, department string) []*models.Student {
	return s.students.Search(func(st *models.Student) bool {
		return strings.EqualFold(st.Department, department)
	})
}

// ByRegistrationPattern returns students whose registration number matches
// the regular expression.
func (s *StudentService) ByRegistrationPattern(ctx context.Context, pattern string) ([]*models.Student, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid pattern: %v", err))
	}
	return s.students.Search(func(st *models.Student) bool {
		return re.MatchString(st.RegistrationNumber)
	}), nil
}

// ByGPARange returns students whose GPA falls in [min, max].
func (s *StudentService) ByGPARange(ctx context.Context, min, max float64) []*models.Student {
	return s.students.Search(func(st *models.Student) bool {
		gpa := st.GPA()
		return gpa >= min && gpa <= max
	})
}

// InGoodStanding returns students with no failing grade.
func (s *StudentService) InGoodStanding(ctx context.Context) []*models.Student {
	return s.students.Search((*models.Student).InGoodStanding)
}

// ActiveStudents returns the active subset.
func (s *StudentService) ActiveStudents(ctx context.Context) []*models.Student {
	return s.students.Search(func(st *models.Student) bool { return st.Active })
}

// TopPerformers returns the n highest-GPA students, ties broken by
// registration order.
func (s *StudentService) TopPerformers(ctx context.Context, n int) []*models.Student {
	all := s.students.List()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].GPA() > all[j].GPA()
	})
	if n > len(all) {
		n = len(all)
	}
	if n < 0 {
		n = 0
	}
	return all[:n]
}

// EnrolledIn returns students holding the given course.
func (s *StudentService) EnrolledIn(ctx context.Context, courseCode string) []*models.Student {
	return s.students.Search(func(st *models.Student) bool {
		return st.IsEnrolledIn(courseCode)
	})
}

// DepartmentCounts returns the student count per department.
func (s *StudentService) DepartmentCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)
	for _, st := range s.students.List() {
		counts[st.Department]++
	}
	return counts
}

// GPADistribution buckets students by GPA band.
func (s *StudentService) GPADistribution(ctx context.Context) map[string]int {
	dist := map[string]int{
		"9.0+":      0,
		"8.0 - 8.9": 0,
		"7.0 - 7.9": 0,
		"6.0 - 6.9": 0,
		"5.0 - 5.9": 0,
		"<5.0":      0,
	}
	for _, st := range s.students.List() {
		gpa := st.GPA()
		switch {
		case gpa >= 9.0:
			dist["9.0+"]++
		case gpa >= 8.0:
			dist["8.0 - 8.9"]++
		case gpa >= 7.0:
			dist["7.0 - 7.9"]++
		case gpa >= 6.0:
			dist["6.0 - 6.9"]++
		case gpa >= 5.0:
			dist["5.0 - 5.9"]++
		default:
			dist["<5.0"]++
		}
	}
	return dist
}

// AverageGPA returns the mean GPA over all students, 0 when none exist.
func (s *StudentService) AverageGPA(ctx context.Context) float64 {
	all := s.students.List()
	if len(all) == 0 {
		return 0.0
	}
	var total float64
	for _, st := range all {
		total += st.GPA()
	}
	return total / float64(len(all))
}

// BulkSetActive applies the active flag to the given students and returns
// how many records changed.
func (s *StudentService) BulkSetActive(ctx context.Context, ids []string, active bool) (int, error) {
	changed := 0
	for _, id := range ids {
		student, err := s.students.Get(id)
		if err != nil {
			return changed, err
		}
		if student.Active == active {
			continue
		}
		if active {
			student.Activate()
			student.AddAuditEntry("Student activated")
		} else {
			student.Deactivate()
			student.AddAuditEntry("Student deactivated")
		}
		changed++
	}
	return changed, nil
}

// StatsSummary renders the student statistics report text.
func (s *StudentService) StatsSummary(ctx context.Context) string {
	var b strings.Builder
	line := strings.Repeat("=", 50) + "\n"

	b.WriteString(line)
	b.WriteString("STUDENT STATISTICS\n")
	b.WriteString(line)
	fmt.Fprintf(&b, "Total Students: %d\n", s.students.Count())
	fmt.Fprintf(&b, "Active Students: %d\n", len(s.ActiveStudents(ctx)))
	fmt.Fprintf(&b, "Average GPA: %.2f\n", s.AverageGPA(ctx))

	b.WriteString("\nStudents per Department:\n")
	counts := s.DepartmentCounts(ctx)
	departments := make([]string, 0, len(counts))
	for dept := range counts {
		departments = append(departments, dept)
	}
	sort.Strings(departments)
	for _, dept := range departments {
		fmt.Fprintf(&b, "  %-20s %d\n", dept, counts[dept])
	}

	b.WriteString("\nGPA Distribution:\n")
	dist := s.GPADistribution(ctx)
	for _, band := range []string{"9.0+", "8.0 - 8.9", "7.0 - 7.9", "6.0 - 6.9", "5.0 - 5.9", "<5.0"} {
		fmt.Fprintf(&b, "  %-10s %d\n", band, dist[band])
	}
	b.WriteString(line)
	return b.String()
}
